// internal/intent/interpreter.go
package intent

import (
	"context"
	"encoding/json"
	"errors"

	"boardpulse/internal/common/logger"
	"boardpulse/internal/llm"
	"boardpulse/internal/models"
)

// systemPrompt is the interpretation contract: structure extraction only,
// no arithmetic on the model side.
const systemPrompt = `You are an AI assistant for a business intelligence system. Analyze the user's question and extract the intent as structured JSON.

Return ONLY valid JSON with the following structure:

{
  "board": "deals" | "work_orders" | "both" | null,
  "sector": string or null,
  "time_period": "this_quarter" | "last_quarter" | "all_time" | null,
  "analysis_type": "pipeline" | "revenue" | "execution" | "leadership_update" | null
}

If the question is unclear or missing key information, return:

{
  "clarification_needed": true,
  "message": "Please clarify your question, e.g., specify which board or time period."
}

Do not perform any calculations. Only extract intent.`

const unavailableMessage = "LLM service unavailable due to quota or rate limits."

// Interpreter maps a free-text question to one of the four Intent variants.
// Every failure mode is encoded in the returned Intent; Interpret never
// panics and never computes metrics itself.
type Interpreter struct {
	client *llm.Client
	logger logger.Logger
}

func NewInterpreter(client *llm.Client, log logger.Logger) *Interpreter {
	return &Interpreter{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "intent"}),
	}
}

// intentPayload is the wire shape the model is instructed to return.
type intentPayload struct {
	Board               *string `json:"board"`
	Sector              *string `json:"sector"`
	TimePeriod          *string `json:"time_period"`
	AnalysisType        *string `json:"analysis_type"`
	ClarificationNeeded bool    `json:"clarification_needed"`
	Message             string  `json:"message"`
}

func (i *Interpreter) Interpret(ctx context.Context, question string) models.Intent {
	content, err := i.client.Complete(ctx, "intent", systemPrompt, question)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) || errors.Is(err, llm.ErrNotConfigured) {
			i.logger.Warn("interpreter unavailable", map[string]interface{}{"error": err.Error()})
			return models.LLMErrorIntent(unavailableMessage)
		}
		i.logger.Error("intent extraction failed", map[string]interface{}{"error": err.Error()})
		return models.ErrorIntent(err.Error())
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		i.logger.Error("intent response was not valid JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return models.ErrorIntent(err.Error())
	}

	if payload.ClarificationNeeded {
		return models.ClarificationIntent(payload.Message)
	}

	out := models.StructuredIntent(payload.Board, payload.Sector, payload.TimePeriod, payload.AnalysisType)
	i.logger.Info("intent extracted", map[string]interface{}{
		"board":        out.BoardValue(),
		"hasSector":    out.Sector != nil,
		"analysisType": payload.AnalysisType,
	})
	return out
}
