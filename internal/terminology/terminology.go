package terminology

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"doccraft/internal/models"
)

// IssueType distinguishes a bare "avoid this word" flag from a finding that
// carries a concrete replacement.
type IssueType string

const (
	IssueForbidden IssueType = "forbidden"
	IssuePreferred IssueType = "preferred"
)

// Issue is one terminology finding against a document.
type Issue struct {
	Term       string    `json:"term"`
	IssueType  IssueType `json:"issue_type"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Built-in Microsoft Style Guide baseline. Always active; a user glossary
// extends it and wins on preferred-term key collisions.
var mstpForbidden = []string{
	"please",
	"simply",
	"easy",
	"easily",
	"straightforward",
	"as mentioned",
	"as noted above",
	"it should be noted",
}

type preferredRule struct {
	term        string
	replacement string
}

// Ordered pair list rather than a map: evaluation order is part of the
// contract (Evaluate must be deterministic).
var mstpPreferred = []preferredRule{
	{"utilize", "use"},
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"note that", "**Note:**"},
	{"sign in", "log in"},
	{"login", "log in"},
}

// containsTerm reports a whole-word, case-insensitive match of term in text.
// Boundaries are non-word-character transitions, so suffixed forms
// ("logins", "capitalized") do not match.
func containsTerm(text, term string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// Evaluate checks a document against the MSTP baseline plus an optional user
// glossary. It is deterministic, has no side effects, and always returns
// (possibly an empty slice).
//
// Preferred terms are evaluated first: they carry an actionable rewrite, so
// when a term appears in both rule sets only the preferred issue fires. Each
// distinct term yields at most one issue regardless of occurrence count.
func Evaluate(document string, glossary *models.GlossaryData) []Issue {
	issues := []Issue{}
	claimed := map[string]bool{}

	forbidden := append([]string(nil), mstpForbidden...)
	preferred := append([]preferredRule(nil), mstpPreferred...)

	if glossary != nil {
		forbidden = append(forbidden, glossary.ForbiddenTerms...)
		overlay := map[string]string{}
		for _, rule := range preferred {
			overlay[strings.ToLower(rule.term)] = rule.term
		}
		for _, key := range sortedKeys(glossary.PreferredTerms) {
			lower := strings.ToLower(key)
			if existing, ok := overlay[lower]; ok {
				// Glossary wins on collision: replace the baseline entry in place.
				for i := range preferred {
					if preferred[i].term == existing {
						preferred[i] = preferredRule{key, glossary.PreferredTerms[key]}
						break
					}
				}
				continue
			}
			preferred = append(preferred, preferredRule{key, glossary.PreferredTerms[key]})
		}
	}

	for _, rule := range preferred {
		if !containsTerm(document, rule.term) {
			continue
		}
		claimed[strings.ToLower(rule.term)] = true
		issues = append(issues, Issue{
			Term:       rule.term,
			IssueType:  IssuePreferred,
			Message:    fmt.Sprintf("Replace %q with %q.", rule.term, rule.replacement),
			Suggestion: rule.replacement,
		})
	}

	for _, term := range forbidden {
		key := strings.ToLower(term)
		if claimed[key] {
			continue
		}
		if !containsTerm(document, term) {
			continue
		}
		claimed[key] = true
		issues = append(issues, Issue{
			Term:      term,
			IssueType: IssueForbidden,
			Message:   fmt.Sprintf("Avoid %q - Microsoft Style Guide flags this word.", term),
		})
	}

	return issues
}

// sortedKeys orders glossary preferred terms so map iteration cannot make
// Evaluate's output order vary between runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
