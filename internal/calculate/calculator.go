// internal/calculate/calculator.go
package calculate

import (
	"fmt"

	"boardpulse/internal/models"
)

const unknownBucket = "Unknown"

// Business field column ids the calculator reads off normalized records.
const (
	fieldSector           = "sector"
	fieldStatus           = "status"
	fieldBillingStatus    = "billing_status"
	fieldCollectionStatus = "collection_status"
)

// Status values with board-specific meaning.
const (
	statusClosed    = "Closed"
	statusCompleted = "Completed"
)

// Calculate computes the aggregates the intent asked for over the two board
// collections. A non-actionable intent short-circuits to an error-marked
// result without touching either collection. An unrecognized or missing
// board yields an empty result, which is not an error.
//
// The sector filter applies to the per-board aggregates; the cross-board
// comparison for "both" deliberately runs over the unfiltered collections.
// The time_period field is accepted but not applied as a filter.
func Calculate(intent models.Intent, deals, workOrders []models.NormalizedRecord) models.CalculationResult {
	if !intent.Actionable() {
		return models.CalculationResult{Error: nonActionableMessage(intent)}
	}

	var result models.CalculationResult
	board := intent.BoardValue()

	if board == models.BoardDeals || board == models.BoardBoth {
		m := dealsMetrics(filterBySector(deals, intent.Sector))
		result.Deals = &m
	}

	if board == models.BoardWorkOrders || board == models.BoardBoth {
		m := workOrderMetrics(filterBySector(workOrders, intent.Sector))
		result.WorkOrders = &m
	}

	if board == models.BoardBoth {
		m := comparisonMetrics(deals, workOrders)
		result.Comparison = &m
	}

	return result
}

func nonActionableMessage(intent models.Intent) string {
	switch intent.Kind {
	case models.IntentClarification:
		return intent.Message
	case models.IntentLLMError:
		return intent.Message
	case models.IntentError:
		return intent.Err
	}
	return fmt.Sprintf("intent not actionable: %s", intent.Kind)
}

func filterBySector(records []models.NormalizedRecord, sector *string) []models.NormalizedRecord {
	if sector == nil {
		return records
	}
	filtered := make([]models.NormalizedRecord, 0, len(records))
	for _, r := range records {
		if r.Field(fieldSector, "") == *sector {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func dealsMetrics(deals []models.NormalizedRecord) models.DealsMetrics {
	m := models.DealsMetrics{
		StageDistribution: make(map[string]int),
		CountOfDeals:      len(deals),
	}
	for _, d := range deals {
		if d.DealValue != nil {
			m.TotalPipelineValue += *d.DealValue
		}
		m.StageDistribution[d.Field(fieldStatus, unknownBucket)]++
	}
	// No distinct weighting formula is specified yet; weighted tracks total.
	m.WeightedPipelineValue = m.TotalPipelineValue
	return m
}

func workOrderMetrics(orders []models.NormalizedRecord) models.WorkOrderMetrics {
	m := models.WorkOrderMetrics{
		BillingStatusBreakdown:    make(map[string]int),
		CollectionStatusBreakdown: make(map[string]int),
	}
	completed := 0
	for _, o := range orders {
		if o.Field(fieldStatus, "") == statusCompleted {
			completed++
		}
		m.BillingStatusBreakdown[o.Field(fieldBillingStatus, unknownBucket)]++
		m.CollectionStatusBreakdown[o.Field(fieldCollectionStatus, unknownBucket)]++
	}
	if len(orders) > 0 {
		m.CompletionRate = 100 * float64(completed) / float64(len(orders))
	}
	return m
}

func comparisonMetrics(deals, workOrders []models.NormalizedRecord) models.ComparisonMetrics {
	var m models.ComparisonMetrics
	for _, d := range deals {
		if d.Field(fieldStatus, "") == statusClosed {
			m.ClosedDeals++
		}
	}
	for _, o := range workOrders {
		if o.Field(fieldStatus, "") == statusCompleted {
			m.ExecutedWorkOrders++
		}
	}
	if lag := m.ClosedDeals - m.ExecutedWorkOrders; lag > 0 {
		m.PotentialExecutionLag = lag
	}
	return m
}
