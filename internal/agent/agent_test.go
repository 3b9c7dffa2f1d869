// internal/agent/agent_test.go
package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardpulse/internal/boards"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/models"
)

const (
	testDealsBoard  = "111"
	testOrdersBoard = "222"
)

type fakeFetcher struct {
	boards     []boards.Board
	boardsErr  error
	items      map[string][]models.RawRecord
	itemsErr   map[string]error
	itemsCalls []string
}

func (f *fakeFetcher) ListBoards(ctx context.Context) ([]boards.Board, error) {
	return f.boards, f.boardsErr
}

func (f *fakeFetcher) Items(ctx context.Context, boardID string) ([]models.RawRecord, error) {
	f.itemsCalls = append(f.itemsCalls, boardID)
	if err, ok := f.itemsErr[boardID]; ok {
		return nil, err
	}
	return f.items[boardID], nil
}

type fakeInterpreter struct {
	intent models.Intent
}

func (f *fakeInterpreter) Interpret(ctx context.Context, question string) models.Intent {
	return f.intent
}

type fakeNarrator struct {
	summary string
	err     error
}

func (f *fakeNarrator) Narrate(ctx context.Context, result models.CalculationResult, intent models.Intent) (string, error) {
	return f.summary, f.err
}

func structuredBoth() models.Intent {
	board := models.BoardBoth
	return models.StructuredIntent(&board, nil, nil, nil)
}

func dealRaw(id, amount string) models.RawRecord {
	return models.RawRecord{
		ID:   id,
		Name: "Deal " + id,
		Columns: []models.RawColumn{
			{ID: "deal_value", Text: amount},
			{ID: "status", Text: "Closed"},
		},
	}
}

func newTestAgent(fetcher *fakeFetcher, interp *fakeInterpreter, narr *fakeNarrator) *Agent {
	return New(fetcher, interp, narr, testDealsBoard, testOrdersBoard,
		logger.NewNoOpLogger(), nil, Placeholders{Summary: "summary unavailable"})
}

func TestAskHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{
		boards: []boards.Board{{ID: testDealsBoard, Name: "Deals"}, {ID: testOrdersBoard, Name: "Work Orders"}},
		items: map[string][]models.RawRecord{
			testDealsBoard: {dealRaw("1", "$1,000"), dealRaw("2", "$500")},
			testOrdersBoard: {{
				ID:   "9",
				Name: "WO 9",
				Columns: []models.RawColumn{
					{ID: "deal_value", Text: "0"},
					{ID: "status", Text: "Completed"},
				},
			}},
		},
	}
	interp := &fakeInterpreter{intent: structuredBoth()}
	narr := &fakeNarrator{summary: "Two deals worth $1,500 total."}

	answer := newTestAgent(fetcher, interp, narr).Ask(context.Background(), "how is the pipeline?")

	assert.NotEmpty(t, answer.RunID)
	assert.Equal(t, "how is the pipeline?", answer.Question)
	assert.Len(t, answer.Boards, 2)
	assert.Empty(t, answer.BoardsError)
	assert.Equal(t, []string{testDealsBoard, testOrdersBoard}, fetcher.itemsCalls)

	assert.Len(t, answer.Deals.Records, 2)
	assert.Empty(t, answer.Deals.FetchError)
	assert.Len(t, answer.WorkOrders.Records, 1)

	require.NotNil(t, answer.Result.Deals)
	assert.Equal(t, 1500.0, answer.Result.Deals.TotalPipelineValue)
	require.NotNil(t, answer.Result.Comparison)
	assert.Equal(t, 2, answer.Result.Comparison.ClosedDeals)
	assert.Equal(t, 1, answer.Result.Comparison.ExecutedWorkOrders)
	assert.Equal(t, 1, answer.Result.Comparison.PotentialExecutionLag)

	assert.Equal(t, "Two deals worth $1,500 total.", answer.Summary)
}

func TestAskUniqueRunIDs(t *testing.T) {
	agent := newTestAgent(&fakeFetcher{}, &fakeInterpreter{intent: structuredBoth()}, &fakeNarrator{summary: "s"})

	first := agent.Ask(context.Background(), "q")
	second := agent.Ask(context.Background(), "q")

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestAskBoardListingFailureDoesNotAbort(t *testing.T) {
	fetcher := &fakeFetcher{
		boardsErr: errors.New("monday down"),
		items: map[string][]models.RawRecord{
			testDealsBoard: {dealRaw("1", "100")},
		},
	}
	answer := newTestAgent(fetcher, &fakeInterpreter{intent: structuredBoth()}, &fakeNarrator{summary: "s"}).
		Ask(context.Background(), "q")

	assert.Contains(t, answer.BoardsError, "monday down")
	assert.Empty(t, answer.Boards)
	// Item fetching and calculation still ran.
	assert.Len(t, answer.Deals.Records, 1)
	require.NotNil(t, answer.Result.Deals)
}

func TestAskBoardFetchFailureDegradesToEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		itemsErr: map[string]error{testDealsBoard: errors.New("boom")},
		items: map[string][]models.RawRecord{
			testOrdersBoard: {{
				ID:      "9",
				Columns: []models.RawColumn{{ID: "deal_value", Text: "1"}, {ID: "status", Text: "Completed"}},
			}},
		},
	}
	answer := newTestAgent(fetcher, &fakeInterpreter{intent: structuredBoth()}, &fakeNarrator{summary: "s"}).
		Ask(context.Background(), "q")

	assert.Contains(t, answer.Deals.FetchError, "boom")
	assert.Empty(t, answer.Deals.Records)
	assert.Empty(t, answer.WorkOrders.FetchError)

	// The failed board participates as an empty collection.
	require.NotNil(t, answer.Result.Deals)
	assert.Equal(t, 0, answer.Result.Deals.CountOfDeals)
	require.NotNil(t, answer.Result.WorkOrders)
	assert.Equal(t, 100.0, answer.Result.WorkOrders.CompletionRate)
}

func TestAskNonActionableIntentSkipsMetrics(t *testing.T) {
	fetcher := &fakeFetcher{}
	interp := &fakeInterpreter{intent: models.ClarificationIntent("which board?")}

	answer := newTestAgent(fetcher, interp, &fakeNarrator{summary: "s"}).Ask(context.Background(), "q")

	assert.Equal(t, "which board?", answer.Result.Error)
	assert.Nil(t, answer.Result.Deals)
	assert.Nil(t, answer.Result.WorkOrders)
}

func TestAskNarrationFailureUsesPlaceholder(t *testing.T) {
	narr := &fakeNarrator{err: errors.New("llm down")}

	answer := newTestAgent(&fakeFetcher{}, &fakeInterpreter{intent: structuredBoth()}, narr).
		Ask(context.Background(), "q")

	assert.Equal(t, "summary unavailable", answer.Summary)
}

func TestAskQualityReportSurfaced(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]models.RawRecord{
			testDealsBoard: {
				dealRaw("1", "100"),
				{ID: "2", Name: "junk", Columns: []models.RawColumn{{ID: "notes", Text: "no numbers here"}}},
			},
		},
	}
	answer := newTestAgent(fetcher, &fakeInterpreter{intent: structuredBoth()}, &fakeNarrator{summary: "s"}).
		Ask(context.Background(), "q")

	assert.Len(t, answer.Deals.Raw, 2)
	assert.Len(t, answer.Deals.Records, 1)
	assert.Equal(t, 1, answer.Deals.Quality.RowsExcludedInvalidNumeric)
	assert.Equal(t, 1, answer.Deals.Quality.MissingDealValues)
}
