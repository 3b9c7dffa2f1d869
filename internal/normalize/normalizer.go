// internal/normalize/normalizer.go
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"boardpulse/internal/models"
)

// probabilityMap translates the categorical probability column into the
// numeric weights the source system used.
var probabilityMap = map[string]float64{
	"high":   0.8,
	"medium": 0.5,
	"low":    0.2,
}

const dateLayout = "2006-01-02"

// Normalize converts one batch of raw board items into typed records and a
// per-batch quality report. Records whose deal value never parses are dropped
// and only counted; records with an unparseable date are counted but kept.
// The pass is pure: the same input always yields the same output.
func Normalize(raw []models.RawRecord) ([]models.NormalizedRecord, models.DataQualityReport) {
	out := make([]models.NormalizedRecord, 0, len(raw))
	var report models.DataQualityReport

	for _, item := range raw {
		rec, ok := normalizeOne(item)
		if !ok {
			report.RowsExcludedInvalidNumeric++
			continue
		}
		if rec.Date == nil {
			report.RowsExcludedInvalidDates++
		}
		if rec.Probability == nil {
			report.MissingProbability++
		}
		out = append(out, rec)
	}

	report.MissingDealValues = report.RowsExcludedInvalidNumeric
	return out, report
}

// normalizeOne scans every column of a record; when several columns yield the
// same derived field, the last successful parse wins. Returns ok=false when
// no column produced a deal value.
func normalizeOne(item models.RawRecord) (models.NormalizedRecord, bool) {
	rec := models.NormalizedRecord{
		ID:     item.ID,
		Name:   strings.ToLower(strings.TrimSpace(item.Name)),
		Fields: make(map[string]string, len(item.Columns)),
	}

	for _, col := range item.Columns {
		text := strings.TrimSpace(col.Text)
		value := col.Value
		if text == "" && value == "" {
			continue
		}

		if text != "" {
			rec.Fields[col.ID] = text
		}

		if p, ok := probabilityMap[strings.ToLower(text)]; ok {
			prob := p
			rec.Probability = &prob
		}

		// Payload amount beats everything; plain text is only consulted
		// while the deal value is still unresolved.
		if amount, ok := amountFromPayload(value); ok {
			rec.DealValue = &amount
		} else if rec.DealValue == nil {
			if amount, ok := amountFromText(text); ok {
				rec.DealValue = &amount
			}
		}

		if d, err := time.Parse(dateLayout, text); err == nil {
			date := d
			rec.Date = &date
		}
	}

	if rec.DealValue == nil {
		return models.NormalizedRecord{}, false
	}
	return rec, true
}

// amountFromPayload extracts a numeric "amount" field from the opaque JSON
// column payload. Malformed payloads are a silent skip, never an error.
func amountFromPayload(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		return 0, false
	}
	rawAmount, ok := payload["amount"]
	if !ok {
		return 0, false
	}
	var amount float64
	if err := json.Unmarshal(rawAmount, &amount); err != nil {
		return 0, false
	}
	return amount, true
}

// amountFromText parses a display string like "$1,234.50" as a decimal after
// stripping thousands separators and a leading currency symbol.
func amountFromText(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
