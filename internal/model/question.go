package model

// QuestionKind is the canonical question type exposed to callers.
// The remote service reports lowercase snake-case tags; normalization
// happens in the service layer before a Question leaves this module.
type QuestionKind string

const (
	MultipleChoice QuestionKind = "MULTIPLE_CHOICE"
	TrueFalse      QuestionKind = "TRUE_FALSE"
	ShortAnswer    QuestionKind = "SHORT_ANSWER"
)

// TrueFalseOptions is the fixed option pair every TRUE_FALSE question
// exposes, regardless of what the server stored. The remote service
// grades by literal option text, so this pair must stay stable.
var TrueFalseOptions = []string{"True", "False"}

type Question struct {
	ID      string       `json:"_id"`
	Content string       `json:"content"`
	Kind    QuestionKind `json:"type"`
	Options []string     `json:"options,omitempty"`
}
