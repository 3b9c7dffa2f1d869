// internal/ui/render.go
package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"boardpulse/internal/agent"
	"boardpulse/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

// Render formats one answer for the terminal, in the fixed display order:
// boards, raw records, normalized records and quality reports, intent,
// calculation results, summary.
func Render(ans agent.Answer) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Board Intelligence Agent") + "\n")
	b.WriteString(labelStyle.Render("run "+ans.RunID) + "\n\n")

	renderBoards(&b, ans)
	renderBoardData(&b, "Deals", ans.Deals)
	renderBoardData(&b, "Work Orders", ans.WorkOrders)
	renderIntent(&b, ans.Intent)
	renderResult(&b, ans.Result)

	b.WriteString(sectionStyle.Render("Summary") + "\n")
	b.WriteString(summaryStyle.Render(ans.Summary) + "\n")

	return b.String()
}

func renderBoards(b *strings.Builder, ans agent.Answer) {
	b.WriteString(sectionStyle.Render("Boards") + "\n")
	if ans.BoardsError != "" {
		b.WriteString(errorStyle.Render("fetch failed: "+ans.BoardsError) + "\n\n")
		return
	}
	if len(ans.Boards) == 0 {
		b.WriteString(labelStyle.Render("no boards found") + "\n\n")
		return
	}
	for _, board := range ans.Boards {
		fmt.Fprintf(b, "  %s  %s\n", board.ID, board.Name)
	}
	b.WriteString("\n")
}

func renderBoardData(b *strings.Builder, name string, data agent.BoardData) {
	b.WriteString(sectionStyle.Render(name+" Board") + "\n")
	if data.FetchError != "" {
		b.WriteString(errorStyle.Render("fetch failed: "+data.FetchError) + "\n\n")
		return
	}

	fmt.Fprintf(b, "  %s %d\n", labelStyle.Render("raw records:"), len(data.Raw))
	for _, raw := range data.Raw {
		fmt.Fprintf(b, "    %s  %s  (%d columns)\n", raw.ID, raw.Name, len(raw.Columns))
	}

	fmt.Fprintf(b, "  %s %d\n", labelStyle.Render("normalized:"), len(data.Records))
	for _, rec := range data.Records {
		fmt.Fprintf(b, "    %s  %s  value=%s  probability=%s  date=%s\n",
			rec.ID, rec.Name,
			floatOrDash(rec.DealValue),
			floatOrDash(rec.Probability),
			dateOrDash(rec))
	}

	q := data.Quality
	fmt.Fprintf(b, "  %s missing_deal_values=%d missing_probability=%d rows_excluded_invalid_dates=%d rows_excluded_invalid_numeric=%d\n\n",
		labelStyle.Render("quality:"),
		q.MissingDealValues, q.MissingProbability,
		q.RowsExcludedInvalidDates, q.RowsExcludedInvalidNumeric)
}

func renderIntent(b *strings.Builder, in models.Intent) {
	b.WriteString(sectionStyle.Render("Intent") + "\n")
	switch in.Kind {
	case models.IntentStructured:
		fmt.Fprintf(b, "  board=%s sector=%s time_period=%s analysis_type=%s\n\n",
			strOrDash(in.Board), strOrDash(in.Sector), strOrDash(in.TimePeriod), strOrDash(in.AnalysisType))
	case models.IntentClarification:
		b.WriteString("  " + in.Message + "\n\n")
	case models.IntentLLMError:
		b.WriteString("  " + errorStyle.Render(in.Message) + "\n\n")
	case models.IntentError:
		b.WriteString("  " + errorStyle.Render(in.Err) + "\n\n")
	}
}

func renderResult(b *strings.Builder, result models.CalculationResult) {
	b.WriteString(sectionStyle.Render("Calculation") + "\n")
	if result.Error != "" {
		b.WriteString("  " + errorStyle.Render(result.Error) + "\n\n")
		return
	}
	if result.Empty() {
		b.WriteString(labelStyle.Render("  no board requested, nothing to compute") + "\n\n")
		return
	}

	if result.Deals != nil {
		d := result.Deals
		fmt.Fprintf(b, "  deals: total_pipeline_value=%.2f weighted_pipeline_value=%.2f count=%d\n",
			d.TotalPipelineValue, d.WeightedPipelineValue, d.CountOfDeals)
		fmt.Fprintf(b, "  stage_distribution: %s\n", formatBuckets(d.StageDistribution))
	}
	if result.WorkOrders != nil {
		w := result.WorkOrders
		fmt.Fprintf(b, "  work_orders: completion_rate=%.1f%%\n", w.CompletionRate)
		fmt.Fprintf(b, "  billing_status: %s\n", formatBuckets(w.BillingStatusBreakdown))
		fmt.Fprintf(b, "  collection_status: %s\n", formatBuckets(w.CollectionStatusBreakdown))
	}
	if result.Comparison != nil {
		c := result.Comparison
		fmt.Fprintf(b, "  comparison: closed_deals=%d executed_work_orders=%d potential_execution_lag=%d\n",
			c.ClosedDeals, c.ExecutedWorkOrders, c.PotentialExecutionLag)
	}
	b.WriteString("\n")
}

// RenderRawJSON pretty-prints a value, for the verbose raw-record view.
func RenderRawJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func formatBuckets(buckets map[string]int) string {
	if len(buckets) == 0 {
		return "(empty)"
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, buckets[k]))
	}
	return strings.Join(parts, " ")
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *f)
}

func dateOrDash(rec models.NormalizedRecord) string {
	if rec.Date == nil {
		return "-"
	}
	return rec.Date.Format("2006-01-02")
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
