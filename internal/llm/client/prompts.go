package client

import (
	"fmt"
	"strings"

	"doccraft/internal/models"
	"doccraft/internal/workflow"
)

// Content caps keep prompts inside the model context window. Counted in
// runes so multi-byte input is never cut mid-character.
const (
	sourceContentCap     = 12000
	complianceContentCap = 14000
	recommendContentCap  = 3000
	contextDocumentsCap  = 6000
)

var docTemplates = map[models.DocType]string{
	models.DocTypeUserGuide: `Structure:
1. Overview / Introduction
2. Prerequisites
3. Getting Started
4. Core Features (step-by-step)
5. Advanced Usage
6. Troubleshooting / FAQ
7. Glossary (if needed)`,
	models.DocTypeQuickStart: `Structure:
1. What You'll Build / Achieve
2. Before You Begin (prerequisites, 2-3 bullet max)
3. Steps (numbered, concise, action-oriented)
4. Verify It Works
5. Next Steps`,
	models.DocTypeAPIReference: `Structure:
1. Overview
2. Authentication
3. Base URL & Endpoints
4. Request/Response Format
5. Endpoints (grouped by resource)
6. Error Codes
7. Rate Limits
8. Examples`,
	models.DocTypeTroubleshooting: `Structure:
1. Common Issues (symptom → cause → fix)
2. Error Messages Reference
3. Diagnostic Steps
4. Escalation / Contact Support`,
	models.DocTypeReleaseNotes: `Structure:
1. Version & Date
2. Highlights
3. New Features
4. Improvements
5. Bug Fixes
6. Known Issues
7. Migration Notes (if applicable)`,
}

var audienceInstructions = map[models.Audience]string{
	models.AudienceNonTechnical: "Write for end-users with no technical background. Avoid jargon. Use simple language, analogies, and screenshots/visual descriptions. Every step should be explicit.",
	models.AudienceTechnical:    "Write for developers or technical staff. You can use technical terminology, code snippets, and assume familiarity with common tools.",
	models.AudienceMixed:        "Write for a mixed audience. Lead with simple explanations, then provide technical details in collapsible/optional sections or notes.",
}

var toneInstructions = map[models.Tone]string{
	models.ToneFormal:         "Use formal, professional language. Third person. No contractions. Suitable for enterprise documentation.",
	models.ToneConversational: "Use friendly, approachable language. Second person (you/your). Contractions are fine. Guide the reader like a helpful colleague.",
	models.ToneInstructional:  "Use direct, imperative language. Focus on clear commands and actions. Minimal fluff. Every sentence should drive the user forward.",
}

var refineInstructions = map[workflow.RefineAction]string{
	workflow.ActionSimplify:     "Rewrite this section in simpler language. Remove jargon. Use shorter sentences. Make it understandable by someone with no technical background. Keep the same meaning and structure.",
	workflow.ActionExpand:       "Expand this section with more detail, examples, and explanation. Add context that would help the reader understand WHY, not just WHAT. Keep the same tone.",
	workflow.ActionExample:      "Add a practical, real-world example to illustrate this section. The example should be concrete and relatable to the target audience.",
	workflow.ActionTroubleshoot: "Add troubleshooting content for this section. Include common issues, their causes, and step-by-step fixes. Format as: Problem → Cause → Solution.",
	workflow.ActionFormal:       "Rewrite this section in a more formal, professional tone. Use third person. Remove contractions. Suitable for enterprise documentation.",
	workflow.ActionConcise:      "Make this section more concise. Remove redundant words and phrases. Keep only essential information. Every sentence should earn its place.",
}

func docTemplate(t models.DocType) string {
	if tpl, ok := docTemplates[t]; ok {
		return tpl
	}
	return docTemplates[models.DocTypeUserGuide]
}

func loadPrompt(name string) (string, error) {
	data, err := embeddedPrompts.ReadFile("prompts/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to load prompt %s: %w", name, err)
	}
	return string(data), nil
}

func analyzeSystemPrompt(cfg models.DocConfig) (string, error) {
	base, err := loadPrompt("analyze_system.txt")
	if err != nil {
		return "", err
	}
	custom := ""
	if strings.TrimSpace(cfg.CustomInstructions) != "" {
		custom = fmt.Sprintf("\nAdditional instructions: %s\n", cfg.CustomInstructions)
	}
	return fmt.Sprintf(base,
		cfg.DocType,
		docTemplate(cfg.DocType),
		cfg.Audience,
		audienceInstructions[cfg.Audience],
		custom,
	), nil
}

func analyzeUserMessage(content, contextText string) string {
	var b strings.Builder
	b.WriteString("Here is the raw source material:\n\n")
	b.WriteString(runeCap(content, sourceContentCap))
	if strings.TrimSpace(contextText) != "" {
		b.WriteString("\n\nSUPPORTING CONTEXT DOCUMENTS:\n\n")
		b.WriteString(runeCap(contextText, contextDocumentsCap))
	}
	return b.String()
}

func synthesizeSystemPrompt(cfg models.DocConfig) (string, error) {
	base, err := loadPrompt("generate_system.txt")
	if err != nil {
		return "", err
	}
	custom := ""
	if strings.TrimSpace(cfg.CustomInstructions) != "" {
		custom = fmt.Sprintf("\nADDITIONAL INSTRUCTIONS: %s", cfg.CustomInstructions)
	}
	return fmt.Sprintf(base,
		cfg.DocType,
		docTemplate(cfg.DocType),
		cfg.Audience,
		audienceInstructions[cfg.Audience],
		cfg.Tone,
		toneInstructions[cfg.Tone],
		custom,
	), nil
}

func synthesizeUserMessage(req workflow.SynthesizeRequest) string {
	var answered []string
	var skipped []string
	for _, q := range req.Answers {
		if q.Skipped {
			skipped = append(skipped, fmt.Sprintf("- %s [SKIPPED — make reasonable assumption and mark with ⚠️]", q.Question))
			continue
		}
		if strings.TrimSpace(q.Answer) != "" {
			answered = append(answered, fmt.Sprintf("Q: %s\nA: %s", q.Question, q.Answer))
		}
	}

	var b strings.Builder
	b.WriteString("SOURCE MATERIAL:\n")
	b.WriteString(runeCap(req.Content, sourceContentCap))
	if strings.TrimSpace(req.ContextText) != "" {
		b.WriteString("\n\nSUPPORTING CONTEXT DOCUMENTS:\n")
		b.WriteString(runeCap(req.ContextText, contextDocumentsCap))
	}
	if len(answered) > 0 {
		b.WriteString("\n\nCLARIFICATIONS FROM SME:\n")
		b.WriteString(strings.Join(answered, "\n\n"))
	}
	if len(skipped) > 0 {
		b.WriteString("\n\nUNANSWERED QUESTIONS (make reasonable assumptions):\n")
		b.WriteString(strings.Join(skipped, "\n"))
	}
	b.WriteString("\n\nPlease generate the complete documentation now.")
	return b.String()
}

func refineSystemPrompt(cfg models.DocConfig, action workflow.RefineAction) (string, error) {
	base, err := loadPrompt("refine_system.txt")
	if err != nil {
		return "", err
	}
	instruction, ok := refineInstructions[action]
	if !ok {
		instruction = refineInstructions[workflow.ActionSimplify]
	}
	return fmt.Sprintf(base, cfg.Audience, cfg.Tone, instruction), nil
}

// cleanJSONResponse strips markdown code fences models wrap JSON in despite
// instructions not to.
func cleanJSONResponse(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func runeCap(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
