package models

import "strings"

// DocType selects which documentation template drives analysis and synthesis.
type DocType string

const (
	DocTypeUserGuide       DocType = "user-guide"
	DocTypeQuickStart      DocType = "quick-start"
	DocTypeAPIReference    DocType = "api-reference"
	DocTypeTroubleshooting DocType = "troubleshooting"
	DocTypeReleaseNotes    DocType = "release-notes"
)

type Audience string

const (
	AudienceNonTechnical Audience = "non-technical"
	AudienceTechnical    Audience = "technical"
	AudienceMixed        Audience = "mixed"
)

type Tone string

const (
	ToneFormal         Tone = "formal"
	ToneConversational Tone = "conversational"
	ToneInstructional  Tone = "instructional"
)

// DocConfig describes how the generated document should be written.
// It is owned by the workflow for the duration of a run and copied into
// the session record on a successful generation.
type DocConfig struct {
	DocType            DocType  `json:"docType"`
	Audience           Audience `json:"audience"`
	Tone               Tone     `json:"tone"`
	CustomInstructions string   `json:"customInstructions"`
}

// DefaultDocConfig mirrors the initial configuration a new run starts with.
func DefaultDocConfig() DocConfig {
	return DocConfig{
		DocType:  DocTypeUserGuide,
		Audience: AudienceNonTechnical,
		Tone:     ToneConversational,
	}
}

func ValidDocType(t DocType) bool {
	switch t {
	case DocTypeUserGuide, DocTypeQuickStart, DocTypeAPIReference, DocTypeTroubleshooting, DocTypeReleaseNotes:
		return true
	}
	return false
}

func ValidAudience(a Audience) bool {
	switch a {
	case AudienceNonTechnical, AudienceTechnical, AudienceMixed:
		return true
	}
	return false
}

func ValidTone(t Tone) bool {
	switch t {
	case ToneFormal, ToneConversational, ToneInstructional:
		return true
	}
	return false
}

// Normalize trims free-text fields and falls back to defaults for
// unrecognized enum values.
func (c DocConfig) Normalize() DocConfig {
	out := c
	out.CustomInstructions = strings.TrimSpace(c.CustomInstructions)
	if !ValidDocType(out.DocType) {
		out.DocType = DocTypeUserGuide
	}
	if !ValidAudience(out.Audience) {
		out.Audience = AudienceNonTechnical
	}
	if !ValidTone(out.Tone) {
		out.Tone = ToneConversational
	}
	return out
}
