package models

// GlossaryData is a user-supplied terminology rule set. It is merged with the
// built-in baseline before evaluation and never mutated, only replaced.
type GlossaryData struct {
	ApprovedTerms  []string          `json:"approved_terms,omitempty"`
	ForbiddenTerms []string          `json:"forbidden_terms,omitempty"`
	PreferredTerms map[string]string `json:"preferred_terms,omitempty"`
}

// Clone returns a deep copy so callers can hold a glossary without sharing
// the underlying slices and map.
func (g *GlossaryData) Clone() *GlossaryData {
	if g == nil {
		return nil
	}
	out := &GlossaryData{
		ApprovedTerms:  append([]string(nil), g.ApprovedTerms...),
		ForbiddenTerms: append([]string(nil), g.ForbiddenTerms...),
	}
	if g.PreferredTerms != nil {
		out.PreferredTerms = make(map[string]string, len(g.PreferredTerms))
		for k, v := range g.PreferredTerms {
			out.PreferredTerms[k] = v
		}
	}
	return out
}
