// internal/models/intent.go
package models

// IntentKind discriminates the four mutually exclusive Intent variants.
type IntentKind string

const (
	IntentStructured    IntentKind = "structured"
	IntentClarification IntentKind = "clarification"
	IntentLLMError      IntentKind = "llm_error"
	IntentError         IntentKind = "error"
)

// Board identifiers the interpreter may emit.
const (
	BoardDeals      = "deals"
	BoardWorkOrders = "work_orders"
	BoardBoth       = "both"
)

// Intent is the structured interpretation of a free-text question, or one of
// the three failure shapes the interpreter can produce instead.
type Intent struct {
	Kind IntentKind `json:"kind"`

	// Structured fields; each nullable, only meaningful when Kind is
	// IntentStructured.
	Board        *string `json:"board,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	TimePeriod   *string `json:"time_period,omitempty"`
	AnalysisType *string `json:"analysis_type,omitempty"`

	// Message carries the clarification prompt or the llm_error explanation.
	Message string `json:"message,omitempty"`

	// Err carries the raw error string for the error variant.
	Err string `json:"error,omitempty"`
}

// Actionable reports whether the calculator may act on this intent.
func (i Intent) Actionable() bool {
	return i.Kind == IntentStructured
}

// BoardValue returns the requested board, or "" when unset.
func (i Intent) BoardValue() string {
	if i.Board == nil {
		return ""
	}
	return *i.Board
}

// StructuredIntent builds the structured variant; nil pointers mean "not
// specified by the question".
func StructuredIntent(board, sector, timePeriod, analysisType *string) Intent {
	return Intent{
		Kind:         IntentStructured,
		Board:        board,
		Sector:       sector,
		TimePeriod:   timePeriod,
		AnalysisType: analysisType,
	}
}

// ClarificationIntent builds the clarification-request variant.
func ClarificationIntent(message string) Intent {
	return Intent{Kind: IntentClarification, Message: message}
}

// LLMErrorIntent builds the interpreter-unavailable variant.
func LLMErrorIntent(message string) Intent {
	return Intent{Kind: IntentLLMError, Message: message}
}

// ErrorIntent builds the interpreter-error variant.
func ErrorIntent(err string) Intent {
	return Intent{Kind: IntentError, Err: err}
}
