package terminology

import (
	"testing"

	"doccraft/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_PreferredTermCarriesSuggestion(t *testing.T) {
	issues := Evaluate("We utilized the tool", nil)

	require.Len(t, issues, 1)
	assert.Equal(t, "utilize", issues[0].Term)
	assert.Equal(t, IssuePreferred, issues[0].IssueType)
	assert.Equal(t, "use", issues[0].Suggestion)
}

func TestEvaluate_NoSubstringLeakage(t *testing.T) {
	issues := Evaluate("Everything was capitalized correctly.", nil)
	assert.Empty(t, issues)

	// Plural/suffixed forms are deliberately out of scope.
	issues = Evaluate("All the logins failed.", nil)
	assert.Empty(t, issues)
}

func TestEvaluate_OneIssuePerDistinctTerm(t *testing.T) {
	doc := "Simply do it. Simply wait. simply retry."
	issues := Evaluate(doc, nil)

	require.Len(t, issues, 1)
	assert.Equal(t, "simply", issues[0].Term)
	assert.Equal(t, IssueForbidden, issues[0].IssueType)
}

func TestEvaluate_PreferredClaimsTermBeforeForbidden(t *testing.T) {
	glossary := &models.GlossaryData{
		ForbiddenTerms: []string{"login"},
	}
	issues := Evaluate("Use your login here.", glossary)

	// "login" is in the baseline preferred map; the forbidden entry from the
	// glossary must not fire a second issue for the same term.
	require.Len(t, issues, 1)
	assert.Equal(t, IssuePreferred, issues[0].IssueType)
	assert.Equal(t, "log in", issues[0].Suggestion)
}

func TestEvaluate_GlossaryOverridesBaselineReplacement(t *testing.T) {
	glossary := &models.GlossaryData{
		PreferredTerms: map[string]string{"login": "sign-on"},
	}
	issues := Evaluate("Step one, login to the portal.", glossary)

	require.Len(t, issues, 1)
	assert.Equal(t, "sign-on", issues[0].Suggestion)
}

func TestEvaluate_GlossaryForbiddenTerms(t *testing.T) {
	glossary := &models.GlossaryData{
		ForbiddenTerms: []string{"whitelist"},
	}
	issues := Evaluate("Add the host to the whitelist.", glossary)

	require.Len(t, issues, 1)
	assert.Equal(t, "whitelist", issues[0].Term)
	assert.Equal(t, IssueForbidden, issues[0].IssueType)
}

func TestEvaluate_MultiWordPhrases(t *testing.T) {
	doc := "In order to proceed, note that the cache must be warm."
	issues := Evaluate(doc, nil)

	require.Len(t, issues, 2)
	assert.Equal(t, "in order to", issues[0].Term)
	assert.Equal(t, "note that", issues[1].Term)
}

func TestEvaluate_Deterministic(t *testing.T) {
	doc := "Please simply login in order to utilize the easy workflow."
	glossary := &models.GlossaryData{
		ForbiddenTerms: []string{"workflow", "cache"},
		PreferredTerms: map[string]string{"zz-last": "first", "aa-first": "second"},
	}

	first := Evaluate(doc, glossary)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Evaluate(doc, glossary))
	}
}

func TestEvaluate_EmptyDocument(t *testing.T) {
	issues := Evaluate("", nil)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestEvaluate_EndToEndExample(t *testing.T) {
	glossary := &models.GlossaryData{
		PreferredTerms: map[string]string{"login": "log in"},
	}
	issues := Evaluate("Step one, login to the portal.", glossary)

	require.Len(t, issues, 1)
	assert.Equal(t, "login", issues[0].Term)
	assert.Equal(t, IssuePreferred, issues[0].IssueType)
	assert.Equal(t, "log in", issues[0].Suggestion)
}

func TestParseGlossary(t *testing.T) {
	data, ok := ParseGlossary([]byte(`{"forbidden_terms":["foo"],"preferred_terms":{"bar":"baz"}}`))
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, data.ForbiddenTerms)
	assert.Equal(t, "baz", data.PreferredTerms["bar"])

	_, ok = ParseGlossary([]byte(`{"title":"not a glossary"}`))
	assert.False(t, ok)

	_, ok = ParseGlossary([]byte(`not json at all`))
	assert.False(t, ok)

	_, ok = ParseGlossary([]byte(`["a","b"]`))
	assert.False(t, ok)
}
