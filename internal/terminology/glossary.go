package terminology

import (
	"encoding/json"

	"doccraft/internal/models"
)

// rawGlossary accepts the loose shape users upload before validation.
type rawGlossary struct {
	ApprovedTerms  []string          `json:"approved_terms"`
	ForbiddenTerms []string          `json:"forbidden_terms"`
	PreferredTerms map[string]string `json:"preferred_terms"`
}

// ParseGlossary validates that data is a glossary document and returns it as
// GlossaryData. A JSON object qualifies when it carries a forbidden_terms
// array or a preferred_terms object; anything else (including non-JSON) is
// reported as not-a-glossary rather than an error, since uploads are sniffed
// opportunistically.
func ParseGlossary(data []byte) (*models.GlossaryData, bool) {
	var raw rawGlossary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	if raw.ForbiddenTerms == nil && raw.PreferredTerms == nil {
		return nil, false
	}
	return &models.GlossaryData{
		ApprovedTerms:  raw.ApprovedTerms,
		ForbiddenTerms: raw.ForbiddenTerms,
		PreferredTerms: raw.PreferredTerms,
	}, true
}
