package models

import "time"

// DocSession captures one completed generation run for later restoration.
// Rows are immutable once created; the store keeps the ten most recent and
// evicts strictly by timestamp.
type DocSession struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Timestamp          time.Time `gorm:"index;not null" json:"timestamp"`
	DocType            DocType   `gorm:"size:32;not null" json:"docType"`
	Audience           Audience  `gorm:"size:32;not null" json:"audience"`
	Tone               Tone      `gorm:"size:32;not null" json:"tone"`
	CustomInstructions string    `gorm:"type:text" json:"customInstructions"`
	InputSummary       string    `gorm:"size:255" json:"inputSummary"`
	GeneratedDoc       string    `gorm:"type:text;not null" json:"generatedDoc"`
}

// Config reassembles the DocConfig stored on the session row.
func (s *DocSession) Config() DocConfig {
	return DocConfig{
		DocType:            s.DocType,
		Audience:           s.Audience,
		Tone:               s.Tone,
		CustomInstructions: s.CustomInstructions,
	}
}
