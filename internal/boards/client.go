// internal/boards/client.go
package boards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"boardpulse/internal/common/config"
	apperrors "boardpulse/internal/common/errors"
	"boardpulse/internal/common/httpclient"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/common/metrics"
	"boardpulse/internal/models"
)

// Client talks to the monday.com GraphQL API. Every call is a single
// synchronous attempt; failures are typed so the caller can distinguish
// "fetch failed" from "zero records".
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.MondayConfig, log logger.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		httpClient: httpclient.New(config.GetDuration(cfg.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"component": "boards"}),
	}
}

const listBoardsQuery = `query {
	boards {
		id
		name
	}
}`

// itemsQueryTemplate fetches the first items page of one board. Pagination
// past the first page is out of scope.
const itemsQueryTemplate = `query {
	boards(ids: [%s]) {
		items_page {
			items {
				id
				name
				column_values {
					id
					text
					value
				}
			}
		}
	}
}`

// ListBoards returns every board visible to the credential.
func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	body, err := c.post(ctx, listBoardsQuery)
	if err != nil {
		metrics.BoardFetchesTotal.WithLabelValues("all", "error").Inc()
		return nil, err
	}

	if details := validateShape(boardsSchema, body); details != "" {
		metrics.BoardFetchesTotal.WithLabelValues("all", "error").Inc()
		return nil, apperrors.NewUpstreamSchemaError(details)
	}

	var resp boardsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.BoardFetchesTotal.WithLabelValues("all", "error").Inc()
		return nil, apperrors.NewUpstreamSchemaError(err.Error())
	}
	if len(resp.Errors) > 0 {
		metrics.BoardFetchesTotal.WithLabelValues("all", "error").Inc()
		return nil, apperrors.NewBoardQueryError(joinGraphQLErrors(resp.Errors))
	}

	metrics.BoardFetchesTotal.WithLabelValues("all", "ok").Inc()
	return resp.Data.Boards, nil
}

// Items returns the raw records of one board. An empty board is a success.
func (c *Client) Items(ctx context.Context, boardID string) ([]models.RawRecord, error) {
	body, err := c.post(ctx, fmt.Sprintf(itemsQueryTemplate, boardID))
	if err != nil {
		metrics.BoardFetchesTotal.WithLabelValues(boardID, "error").Inc()
		return nil, err
	}

	if details := validateShape(itemsSchema, body); details != "" {
		metrics.BoardFetchesTotal.WithLabelValues(boardID, "error").Inc()
		return nil, apperrors.NewUpstreamSchemaError(details)
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.BoardFetchesTotal.WithLabelValues(boardID, "error").Inc()
		return nil, apperrors.NewUpstreamSchemaError(err.Error())
	}
	if len(resp.Errors) > 0 {
		metrics.BoardFetchesTotal.WithLabelValues(boardID, "error").Inc()
		return nil, apperrors.NewBoardQueryError(joinGraphQLErrors(resp.Errors))
	}

	if len(resp.Data.Boards) == 0 {
		metrics.BoardFetchesTotal.WithLabelValues(boardID, "ok").Inc()
		return nil, nil
	}

	items := resp.Data.Boards[0].ItemsPage.Items
	records := make([]models.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, item.toRecord())
	}

	c.logger.Info("fetched board items", map[string]interface{}{
		"boardId": boardID,
		"count":   len(records),
	})
	metrics.BoardFetchesTotal.WithLabelValues(boardID, "ok").Inc()
	return records, nil
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("board service request failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("board service returned non-OK status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, apperrors.NewTransportError(fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	return body, nil
}

func joinGraphQLErrors(errs []graphQLError) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Message
	}
	return msg
}
