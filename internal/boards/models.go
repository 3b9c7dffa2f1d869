// internal/boards/models.go
package boards

import "boardpulse/internal/models"

// Board is one named board in the project-management workspace.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// graphQLError is one entry of the "errors" array a 200 response may carry.
type graphQLError struct {
	Message string `json:"message"`
}

// boardsResponse decodes the ListBoards query payload.
type boardsResponse struct {
	Data struct {
		Boards []Board `json:"boards"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// itemsResponse decodes the Items query payload. Column text and value are
// nullable on the wire; rawColumn keeps them as pointers until conversion.
type itemsResponse struct {
	Data struct {
		Boards []struct {
			ItemsPage struct {
				Items []rawItem `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type rawItem struct {
	ID           string      `json:"id"`
	Name         *string     `json:"name"`
	ColumnValues []rawColumn `json:"column_values"`
}

type rawColumn struct {
	ID    string  `json:"id"`
	Text  *string `json:"text"`
	Value *string `json:"value"`
}

func (i rawItem) toRecord() models.RawRecord {
	rec := models.RawRecord{ID: i.ID}
	if i.Name != nil {
		rec.Name = *i.Name
	}
	rec.Columns = make([]models.RawColumn, 0, len(i.ColumnValues))
	for _, cv := range i.ColumnValues {
		col := models.RawColumn{ID: cv.ID}
		if cv.Text != nil {
			col.Text = *cv.Text
		}
		if cv.Value != nil {
			col.Value = *cv.Value
		}
		rec.Columns = append(rec.Columns, col)
	}
	return rec
}
