// internal/ui/render_test.go
package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"boardpulse/internal/agent"
	"boardpulse/internal/boards"
	"boardpulse/internal/models"
)

func sampleAnswer() agent.Answer {
	board := models.BoardBoth
	value := 1500.0
	return agent.Answer{
		RunID:    "run-123",
		Question: "how is the pipeline?",
		Boards: []boards.Board{
			{ID: "111", Name: "Deals"},
			{ID: "222", Name: "Work Orders"},
		},
		Deals: agent.BoardData{
			BoardID: "111",
			Raw:     []models.RawRecord{{ID: "1", Name: "Acme"}},
			Records: []models.NormalizedRecord{{ID: "1", Name: "acme", DealValue: &value}},
			Quality: models.DataQualityReport{MissingProbability: 1},
		},
		WorkOrders: agent.BoardData{BoardID: "222"},
		Intent:     models.StructuredIntent(&board, nil, nil, nil),
		Result: models.CalculationResult{
			Deals: &models.DealsMetrics{
				TotalPipelineValue:    1500,
				WeightedPipelineValue: 1500,
				StageDistribution:     map[string]int{"Unknown": 1},
				CountOfDeals:          1,
			},
			WorkOrders: &models.WorkOrderMetrics{},
			Comparison: &models.ComparisonMetrics{ClosedDeals: 1, PotentialExecutionLag: 1},
		},
		Summary: "One deal worth $1,500.",
	}
}

func TestRenderDisplayOrder(t *testing.T) {
	out := Render(sampleAnswer())

	// Sections appear in the fixed order: boards, board data, intent,
	// calculation, summary.
	positions := []int{
		strings.Index(out, "Boards"),
		strings.Index(out, "Deals Board"),
		strings.Index(out, "Work Orders Board"),
		strings.Index(out, "Intent"),
		strings.Index(out, "Calculation"),
		strings.Index(out, "Summary"),
	}
	for i, pos := range positions {
		assert.GreaterOrEqual(t, pos, 0, "section %d missing", i)
		if i > 0 {
			assert.Greater(t, pos, positions[i-1], "section %d out of order", i)
		}
	}
}

func TestRenderContent(t *testing.T) {
	out := Render(sampleAnswer())

	assert.Contains(t, out, "run run-123")
	assert.Contains(t, out, "111  Deals")
	assert.Contains(t, out, "value=1500.00")
	assert.Contains(t, out, "missing_probability=1")
	assert.Contains(t, out, "board=both")
	assert.Contains(t, out, "total_pipeline_value=1500.00")
	assert.Contains(t, out, "potential_execution_lag=1")
	assert.Contains(t, out, "One deal worth $1,500.")
}

func TestRenderBoardsError(t *testing.T) {
	ans := sampleAnswer()
	ans.BoardsError = "monday down"

	out := Render(ans)

	assert.Contains(t, out, "fetch failed: monday down")
	assert.NotContains(t, out, "111  Deals")
}

func TestRenderFetchError(t *testing.T) {
	ans := sampleAnswer()
	ans.Deals = agent.BoardData{BoardID: "111", FetchError: "boom"}

	out := Render(ans)

	assert.Contains(t, out, "fetch failed: boom")
}

func TestRenderClarificationIntent(t *testing.T) {
	ans := sampleAnswer()
	ans.Intent = models.ClarificationIntent("Which board do you mean?")
	ans.Result = models.CalculationResult{Error: "Which board do you mean?"}

	out := Render(ans)

	assert.Contains(t, out, "Which board do you mean?")
}

func TestRenderEmptyResult(t *testing.T) {
	ans := sampleAnswer()
	ans.Result = models.CalculationResult{}

	out := Render(ans)

	assert.Contains(t, out, "nothing to compute")
}

func TestRenderRawJSON(t *testing.T) {
	out := RenderRawJSON(map[string]int{"a": 1})
	assert.Contains(t, out, `"a": 1`)
}
