package models

// FormatRecommendation is the advisory doc-type suggestion computed in the
// background while the user is still assembling source material.
type FormatRecommendation struct {
	Type       DocType `json:"type"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}
