// internal/narrate/narrator.go
package narrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "boardpulse/internal/common/errors"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/llm"
	"boardpulse/internal/models"
)

const narrationPrompt = `You are a business analyst. Summarize the computed metrics for a leadership audience in plain language. Use at most 120 words. Mention concrete numbers. Do not invent figures that are not in the data.`

// PlaceholderSummary is what the caller displays when narration degrades.
const PlaceholderSummary = "Narrative summary unavailable; see the calculated metrics above."

// Narrator turns a calculation result and its intent into a short
// natural-language summary.
type Narrator struct {
	client *llm.Client
	logger logger.Logger
}

func NewNarrator(client *llm.Client, log logger.Logger) *Narrator {
	return &Narrator{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "narrate"}),
	}
}

// Narrate returns the model's summary, or a typed error: NARRATION_UNAVAILABLE
// when the service is rate-limited, unauthorized or unconfigured, and
// NARRATION_FAILED for anything else.
func (n *Narrator) Narrate(ctx context.Context, result models.CalculationResult, intent models.Intent) (string, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", apperrors.NewNarrationFailedError(err)
	}
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return "", apperrors.NewNarrationFailedError(err)
	}

	user := fmt.Sprintf("Question intent:\n%s\n\nComputed metrics:\n%s", intentJSON, resultJSON)

	content, err := n.client.Complete(ctx, "narrate", narrationPrompt, user)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) || errors.Is(err, llm.ErrNotConfigured) {
			n.logger.Warn("narrator unavailable", map[string]interface{}{"error": err.Error()})
			return "", apperrors.NewNarrationUnavailableError(err.Error())
		}
		n.logger.Error("narration failed", map[string]interface{}{"error": err.Error()})
		return "", apperrors.NewNarrationFailedError(err)
	}

	return content, nil
}
