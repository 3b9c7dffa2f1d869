// internal/agent/agent.go
package agent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"boardpulse/internal/boards"
	"boardpulse/internal/calculate"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/common/metrics"
	"boardpulse/internal/common/observability"
	"boardpulse/internal/models"
	"boardpulse/internal/normalize"
)

// BoardFetcher is the board-service contract the agent depends on.
type BoardFetcher interface {
	ListBoards(ctx context.Context) ([]boards.Board, error)
	Items(ctx context.Context, boardID string) ([]models.RawRecord, error)
}

// IntentInterpreter maps a question to an Intent variant.
type IntentInterpreter interface {
	Interpret(ctx context.Context, question string) models.Intent
}

// SummaryNarrator produces the natural-language summary.
type SummaryNarrator interface {
	Narrate(ctx context.Context, result models.CalculationResult, intent models.Intent) (string, error)
}

// BoardData carries everything one board contributed to a run. FetchError is
// the empty-with-error-flag shape: when set, the record slices are empty and
// the quality report is zeroed, but the run continues.
type BoardData struct {
	BoardID    string
	Raw        []models.RawRecord
	Records    []models.NormalizedRecord
	Quality    models.DataQualityReport
	FetchError string
}

// Answer is the full output of one question/answer cycle, in display order.
type Answer struct {
	RunID       string
	Question    string
	Boards      []boards.Board
	BoardsError string
	Deals       BoardData
	WorkOrders  BoardData
	Intent      models.Intent
	Result      models.CalculationResult
	Summary     string
}

// Agent runs the whole pipeline once per question: fetch, normalize,
// interpret, calculate, narrate. Nothing is cached between runs and no state
// survives a run.
type Agent struct {
	fetcher      BoardFetcher
	interpreter  IntentInterpreter
	narrator     SummaryNarrator
	dealsBoard   string
	ordersBoard  string
	logger       logger.Logger
	obs          *observability.Observability
	placeholders Placeholders
}

// Placeholders are the degraded-mode display strings.
type Placeholders struct {
	Summary string
}

func New(fetcher BoardFetcher, interpreter IntentInterpreter, narrator SummaryNarrator,
	dealsBoard, ordersBoard string, log logger.Logger, obs *observability.Observability,
	placeholders Placeholders) *Agent {
	return &Agent{
		fetcher:      fetcher,
		interpreter:  interpreter,
		narrator:     narrator,
		dealsBoard:   dealsBoard,
		ordersBoard:  ordersBoard,
		logger:       log.WithFields(map[string]interface{}{"component": "agent"}),
		obs:          obs,
		placeholders: placeholders,
	}
}

// Ask answers one free-text question. It always returns a complete Answer;
// collaborator failures degrade individual sections rather than aborting.
func (a *Agent) Ask(ctx context.Context, question string) Answer {
	start := time.Now()
	answer := Answer{
		RunID:    uuid.NewString(),
		Question: question,
	}
	log := a.logger.WithFields(map[string]interface{}{"runId": answer.RunID})
	log.Info("question received", map[string]interface{}{"question": question})

	boardList, err := a.fetcher.ListBoards(ctx)
	if err != nil {
		log.WithError(err).Error("board listing failed", nil)
		answer.BoardsError = err.Error()
	} else {
		answer.Boards = boardList
	}

	answer.Deals = a.fetchBoard(ctx, log, "deals", a.dealsBoard)
	answer.WorkOrders = a.fetchBoard(ctx, log, "work_orders", a.ordersBoard)

	answer.Intent = a.interpreter.Interpret(ctx, question)
	answer.Result = calculate.Calculate(answer.Intent, answer.Deals.Records, answer.WorkOrders.Records)

	summary, err := a.narrator.Narrate(ctx, answer.Result, answer.Intent)
	if err != nil {
		log.WithError(err).Warn("narration degraded", nil)
		answer.Summary = a.placeholders.Summary
	} else {
		answer.Summary = summary
	}

	status := "ok"
	if answer.Result.Error != "" || answer.Deals.FetchError != "" || answer.WorkOrders.FetchError != "" {
		status = "degraded"
	}
	metrics.QuestionsTotal.WithLabelValues(status).Inc()
	metrics.QuestionDuration.Observe(time.Since(start).Seconds())
	if a.obs != nil {
		a.obs.RecordQuestion(ctx, status)
		a.obs.RecordQuestionDuration(ctx, time.Since(start), status)
	}

	log.Info("question answered", map[string]interface{}{
		"status":   status,
		"duration": time.Since(start).String(),
	})
	return answer
}

func (a *Agent) fetchBoard(ctx context.Context, log logger.Logger, name, boardID string) BoardData {
	data := BoardData{BoardID: boardID}

	raw, err := a.fetcher.Items(ctx, boardID)
	if err != nil {
		log.WithError(err).Error("board fetch failed", map[string]interface{}{
			"board":   name,
			"boardId": boardID,
		})
		data.FetchError = err.Error()
		return data
	}

	data.Raw = raw
	data.Records, data.Quality = normalize.Normalize(raw)

	metrics.RecordsNormalizedTotal.WithLabelValues(name).Add(float64(len(data.Records)))
	metrics.RecordsExcludedTotal.WithLabelValues(name).Add(float64(data.Quality.RowsExcludedInvalidNumeric))

	log.Info("board normalized", map[string]interface{}{
		"board":    name,
		"fetched":  len(raw),
		"retained": len(data.Records),
		"excluded": data.Quality.RowsExcludedInvalidNumeric,
	})
	return data
}
