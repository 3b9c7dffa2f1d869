// internal/models/record.go
package models

import "time"

// RawColumn is one loosely-typed column entry on a board item. Text is the
// human-readable rendering, Value the opaque JSON payload; either may be empty.
type RawColumn struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// RawRecord is one board item exactly as fetched. Immutable after fetch.
type RawRecord struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Columns []RawColumn `json:"column_values"`
}

// NormalizedRecord is the typed form of a RawRecord. A NormalizedRecord only
// exists when its deal value parsed successfully; rows that never yield a
// numeric deal value are dropped during normalization and show up solely in
// the DataQualityReport.
type NormalizedRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DealValue   *float64   `json:"dealValue"`
	Probability *float64   `json:"probability"`
	Date        *time.Time `json:"date"`
	// Fields carries every non-empty column text keyed by column id, so the
	// calculator can read business fields (sector, status, billing_status,
	// collection_status) without the record type hard-coding them.
	Fields map[string]string `json:"fields"`
}

// Field returns the named pass-through column text, or fallback when the
// column was absent or empty.
func (r NormalizedRecord) Field(key, fallback string) string {
	if v, ok := r.Fields[key]; ok && v != "" {
		return v
	}
	return fallback
}

// DataQualityReport counts normalization outcomes for one batch.
//
// MissingDealValues always equals RowsExcludedInvalidNumeric; the source
// system reported both and callers depend on seeing both. Rows counted in
// RowsExcludedInvalidDates are NOT excluded from the output: the counter
// name is inherited, the record is retained.
type DataQualityReport struct {
	MissingDealValues          int `json:"missing_deal_values"`
	MissingProbability         int `json:"missing_probability"`
	RowsExcludedInvalidDates   int `json:"rows_excluded_invalid_dates"`
	RowsExcludedInvalidNumeric int `json:"rows_excluded_invalid_numeric"`
}
