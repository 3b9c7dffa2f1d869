// internal/models/result.go
package models

// DealsMetrics are the aggregates computed over the (sector-filtered) deals
// board. WeightedPipelineValue currently equals TotalPipelineValue: no
// probability weighting is applied yet, the field exists because downstream
// consumers already read it.
type DealsMetrics struct {
	TotalPipelineValue    float64        `json:"total_pipeline_value"`
	WeightedPipelineValue float64        `json:"weighted_pipeline_value"`
	StageDistribution     map[string]int `json:"stage_distribution"`
	CountOfDeals          int            `json:"count_of_deals"`
}

// WorkOrderMetrics are the aggregates computed over the (sector-filtered)
// work-orders board.
type WorkOrderMetrics struct {
	CompletionRate            float64        `json:"completion_rate"`
	BillingStatusBreakdown    map[string]int `json:"billing_status_breakdown"`
	CollectionStatusBreakdown map[string]int `json:"collection_status_breakdown"`
}

// ComparisonMetrics cross-references both boards. Computed over the full,
// unfiltered collections, not the sector-filtered subsets.
type ComparisonMetrics struct {
	ClosedDeals           int `json:"closed_deals"`
	ExecutedWorkOrders    int `json:"executed_work_orders"`
	PotentialExecutionLag int `json:"potential_execution_lag"`
}

// CalculationResult holds whichever per-board aggregates the intent asked
// for. Nil sections mean the board was not requested. Error is set instead
// of any section when the intent was not actionable.
type CalculationResult struct {
	Deals      *DealsMetrics      `json:"deals,omitempty"`
	WorkOrders *WorkOrderMetrics  `json:"work_orders,omitempty"`
	Comparison *ComparisonMetrics `json:"comparison,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Empty reports whether no board section was populated and no error was set.
func (r CalculationResult) Empty() bool {
	return r.Deals == nil && r.WorkOrders == nil && r.Comparison == nil && r.Error == ""
}
