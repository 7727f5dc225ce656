package models

// QuestionCategory classifies why a clarification question was raised.
type QuestionCategory string

const (
	CategoryMissing    QuestionCategory = "missing"
	CategoryAmbiguous  QuestionCategory = "ambiguous"
	CategoryAssumption QuestionCategory = "assumption"
)

// GapQuestion is one clarification question raised by the analysis step.
// Answer and Skipped are mutually exclusive: setting an answer clears the
// skip flag, skipping clears the answer.
type GapQuestion struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Category QuestionCategory `json:"category"`
	Answer   string           `json:"answer"`
	Skipped  bool             `json:"skipped"`
}
