package client

import (
	"fmt"
	"strings"
	"testing"

	"doccraft/internal/models"
	"doccraft/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestions(t *testing.T) {
	raw := `[{"id":"q1","question":"What OS versions are supported?","category":"missing"},
{"id":"q2","question":"Does 'the service' mean the daemon?","category":"ambiguous"}]`

	questions := parseQuestions(raw)

	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, models.CategoryAmbiguous, questions[1].Category)
}

func TestParseQuestionsStripsFences(t *testing.T) {
	raw := "```json\n[{\"id\":\"q1\",\"question\":\"x?\",\"category\":\"missing\"}]\n```"

	questions := parseQuestions(raw)

	require.Len(t, questions, 1)
	assert.Equal(t, "x?", questions[0].Question)
}

func TestParseQuestionsFallback(t *testing.T) {
	for _, raw := range []string{"not json at all", "[]", ""} {
		questions := parseQuestions(raw)
		require.Len(t, questions, 1, "input %q", raw)
		assert.Equal(t, fallbackQuestion, questions[0])
	}
}

func TestParseComplianceIssues(t *testing.T) {
	raw := `[{"id":"ai-1","category":"voice","severity":"warning","rule":"Passive voice","problematic_text":"is configured by","suggestion":"Use active voice."}]`

	issues := parseComplianceIssues(raw)

	require.Len(t, issues, 1)
	assert.Equal(t, "ai-1", issues[0].ID)
	assert.Equal(t, models.IssueVoice, issues[0].Category)
}

func TestParseComplianceIssuesCapsAndTruncates(t *testing.T) {
	var entries []string
	for i := 0; i < 20; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"id":"ai-%d","category":"style","severity":"suggestion","rule":"r","problematic_text":"%s","suggestion":"s"}`,
			i, strings.Repeat("é", 200)))
	}
	raw := "[" + strings.Join(entries, ",") + "]"

	issues := parseComplianceIssues(raw)

	require.Len(t, issues, maxAdvisoryIssues)
	for _, issue := range issues {
		assert.Equal(t, maxExcerptRunes, len([]rune(issue.ProblematicText)))
	}
}

func TestParseComplianceIssuesMalformed(t *testing.T) {
	assert.Nil(t, parseComplianceIssues("the model rambled instead of returning JSON"))
}

func TestParseRecommendation(t *testing.T) {
	rec, err := parseRecommendation(`{"type":"api-reference","reason":"Endpoint tables dominate.","confidence":0.92}`)

	require.NoError(t, err)
	assert.Equal(t, models.DocTypeAPIReference, rec.Type)
	assert.InDelta(t, 0.92, rec.Confidence, 1e-9)
}

func TestParseRecommendationSanitizes(t *testing.T) {
	rec, err := parseRecommendation(`{"type":"novel","reason":" x ","confidence":3.5}`)
	require.NoError(t, err)
	assert.Equal(t, models.DocTypeUserGuide, rec.Type, "unknown type falls back")
	assert.Equal(t, 1.0, rec.Confidence, "confidence clamps to [0,1]")
	assert.Equal(t, "x", rec.Reason)

	rec, err = parseRecommendation(`{"type":"quick-start","reason":"short"}`)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, rec.Confidence, 1e-9, "missing confidence defaults")

	_, err = parseRecommendation("no json here")
	assert.Error(t, err)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1,2]`, cleanJSONResponse("  [1,2]  "))
}

func TestRuneCap(t *testing.T) {
	assert.Equal(t, "héllo", runeCap("héllo", 10))
	assert.Equal(t, "hél", runeCap("héllo", 3))
	assert.Equal(t, "", runeCap("x", 0))
}

func TestAnalyzeSystemPrompt(t *testing.T) {
	cfg := models.DocConfig{
		DocType:            models.DocTypeQuickStart,
		Audience:           models.AudienceTechnical,
		CustomInstructions: "Mention the CLI flags.",
	}

	prompt, err := analyzeSystemPrompt(cfg)

	require.NoError(t, err)
	assert.Contains(t, prompt, "Target document type: quick-start")
	assert.Contains(t, prompt, "What You'll Build")
	assert.Contains(t, prompt, audienceInstructions[models.AudienceTechnical])
	assert.Contains(t, prompt, "Additional instructions: Mention the CLI flags.")
}

func TestSynthesizeSystemPromptUnknownTypeFallsBack(t *testing.T) {
	cfg := models.DocConfig{DocType: models.DocType("zine")}

	prompt, err := synthesizeSystemPrompt(cfg)

	require.NoError(t, err)
	assert.Contains(t, prompt, "Core Features (step-by-step)", "unknown doc type uses the user-guide template")
	assert.NotContains(t, prompt, "ADDITIONAL INSTRUCTIONS")
}

func TestSynthesizeUserMessageSections(t *testing.T) {
	req := workflow.SynthesizeRequest{
		Content: "raw notes",
		Answers: []models.GapQuestion{
			{Question: "Which DB?", Answer: "Postgres 16"},
			{Question: "Auth flow?", Skipped: true},
			{Question: "Left blank?"},
		},
	}

	msg := synthesizeUserMessage(req)

	assert.Contains(t, msg, "SOURCE MATERIAL:\nraw notes")
	assert.Contains(t, msg, "Q: Which DB?\nA: Postgres 16")
	assert.Contains(t, msg, "- Auth flow? [SKIPPED")
	assert.NotContains(t, msg, "Left blank?")
	assert.True(t, strings.HasSuffix(msg, "Please generate the complete documentation now."))
}

func TestRefineSystemPromptUnknownActionFallsBack(t *testing.T) {
	cfg := models.DocConfig{Audience: models.AudienceMixed, Tone: models.ToneFormal}

	prompt, err := refineSystemPrompt(cfg, workflow.RefineAction("rewrite"))

	require.NoError(t, err)
	assert.Contains(t, prompt, refineInstructions[workflow.ActionSimplify])
	assert.Contains(t, prompt, "Audience: mixed")
}
