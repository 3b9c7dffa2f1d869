// internal/normalize/normalizer_test.go
package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardpulse/internal/models"
)

func record(id, name string, cols ...models.RawColumn) models.RawRecord {
	return models.RawRecord{ID: id, Name: name, Columns: cols}
}

func col(id, text, value string) models.RawColumn {
	return models.RawColumn{ID: id, Text: text, Value: value}
}

func TestNormalizeDropsRecordsWithoutDealValue(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "No Numbers",
			col("status", "Active", ""),
			col("notes", "call back tuesday", ""),
		),
		record("2", "Good Deal",
			col("deal_value", "$500", ""),
		),
	}

	records, report := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, 1, report.RowsExcludedInvalidNumeric)
	assert.Equal(t, report.RowsExcludedInvalidNumeric, report.MissingDealValues)
}

func TestNormalizeMissingDealValuesMirrorsExclusions(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "a", col("x", "nope", "")),
		record("2", "b", col("x", "also nope", "")),
		record("3", "c", col("deal_value", "100", "")),
	}

	_, report := Normalize(raw)

	assert.Equal(t, 2, report.RowsExcludedInvalidNumeric)
	assert.Equal(t, 2, report.MissingDealValues)
}

func TestNormalizeDroppedRecordSkipsOtherCounters(t *testing.T) {
	// The dropped record has no date and no probability, but those counters
	// must only be evaluated for retained records.
	raw := []models.RawRecord{
		record("1", "dropped", col("x", "not a number", "")),
	}

	records, report := Normalize(raw)

	assert.Empty(t, records)
	assert.Equal(t, 0, report.RowsExcludedInvalidDates)
	assert.Equal(t, 0, report.MissingProbability)
}

func TestNormalizePayloadAmountPreferredOverText(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "999", `{"amount": 1200.5}`),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	require.NotNil(t, records[0].DealValue)
	assert.Equal(t, 1200.5, *records[0].DealValue)
}

func TestNormalizeCurrencyText(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "$1,234.50", ""),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	require.NotNil(t, records[0].DealValue)
	assert.Equal(t, 1234.50, *records[0].DealValue)
}

func TestNormalizeInvalidDateCountedButRecordKept(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "250", ""),
			col("date", "next friday", ""),
		),
	}

	records, report := Normalize(raw)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].Date)
	assert.Equal(t, 1, report.RowsExcludedInvalidDates)
}

func TestNormalizeValidDate(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "250", ""),
			col("date", "2024-03-15", ""),
		),
	}

	records, report := Normalize(raw)

	require.Len(t, records, 1)
	require.NotNil(t, records[0].Date)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *records[0].Date)
	assert.Equal(t, 0, report.RowsExcludedInvalidDates)
}

func TestNormalizeProbabilityMapping(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"high", 0.8},
		{"High", 0.8},
		{"MEDIUM", 0.5},
		{"low", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			raw := []models.RawRecord{
				record("1", "Deal",
					col("deal_value", "100", ""),
					col("probability", tt.text, ""),
				),
			}
			records, report := Normalize(raw)
			require.Len(t, records, 1)
			require.NotNil(t, records[0].Probability)
			assert.Equal(t, tt.want, *records[0].Probability)
			assert.Equal(t, 0, report.MissingProbability)
		})
	}
}

func TestNormalizeMissingProbabilityCounted(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "100", ""),
			col("date", "2024-01-01", ""),
		),
	}

	records, report := Normalize(raw)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].Probability)
	assert.Equal(t, 1, report.MissingProbability)
}

func TestNormalizeLastPayloadWins(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("a", "", `{"amount": 100}`),
			col("b", "", `{"amount": 200}`),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, 200.0, *records[0].DealValue)
}

func TestNormalizeTextDoesNotOverwriteResolvedDealValue(t *testing.T) {
	// Text-derived numbers only fill in a still-unresolved deal value; a
	// later payload amount still overwrites.
	raw := []models.RawRecord{
		record("1", "Deal",
			col("a", "", `{"amount": 100}`),
			col("b", "777", ""),
			col("c", "", `{"amount": 300}`),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, 300.0, *records[0].DealValue)
}

func TestNormalizeMalformedPayloadIsSilentSkip(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("a", "", `{broken json`),
			col("b", "42", ""),
		),
	}

	records, report := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, 42.0, *records[0].DealValue)
	assert.Equal(t, 0, report.RowsExcludedInvalidNumeric)
}

func TestNormalizeNameLowercasedAndTrimmed(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "  Acme CORP  ", col("deal_value", "10", "")),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "acme corp", records[0].Name)
}

func TestNormalizePassThroughFields(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("deal_value", "10", ""),
			col("sector", "Healthcare", ""),
			col("status", "Closed", ""),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "Healthcare", records[0].Field("sector", "Unknown"))
	assert.Equal(t, "Closed", records[0].Field("status", "Unknown"))
	assert.Equal(t, "Unknown", records[0].Field("billing_status", "Unknown"))
}

func TestNormalizeSkipsEmptyColumns(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal",
			col("empty", "   ", ""),
			col("deal_value", "10", ""),
		),
	}

	records, _ := Normalize(raw)

	require.Len(t, records, 1)
	_, ok := records[0].Fields["empty"]
	assert.False(t, ok)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := []models.RawRecord{
		record("1", "Deal A",
			col("deal_value", "$1,000", ""),
			col("probability", "high", ""),
			col("date", "2024-06-01", ""),
			col("sector", "Tech", ""),
		),
		record("2", "Deal B", col("x", "junk", "")),
		record("3", "Deal C", col("deal_value", "", `{"amount": 5.5}`)),
	}

	first, firstReport := Normalize(raw)
	second, secondReport := Normalize(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, firstReport, secondReport)
}

func TestNormalizeEmptyBatch(t *testing.T) {
	records, report := Normalize(nil)

	assert.Empty(t, records)
	assert.Equal(t, models.DataQualityReport{}, report)
}
