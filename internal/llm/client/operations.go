package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"doccraft/internal/models"
	"doccraft/internal/workflow"

	"github.com/cloudwego/eino/components/model"
)

const (
	maxAdvisoryIssues = 15
	maxExcerptRunes   = 120
)

// fallbackQuestion stands in when the analysis response cannot be parsed;
// the workflow still moves forward with something the user can answer.
var fallbackQuestion = models.GapQuestion{
	ID:       "q1",
	Question: "Could you provide more context about the primary users of this documentation?",
	Category: models.CategoryMissing,
}

// Analyze asks the model for gap questions about the source material.
func (c *LLMClient) Analyze(ctx context.Context, req workflow.AnalyzeRequest) (*workflow.AnalyzeResponse, error) {
	system, err := analyzeSystemPrompt(req.Config)
	if err != nil {
		return nil, err
	}

	text, err := c.complete(ctx, system, analyzeUserMessage(req.Content, req.ContextText),
		model.WithTemperature(0.3), model.WithMaxTokens(2000))
	if err != nil {
		return nil, fmt.Errorf("gap analysis failed: %w", err)
	}

	return &workflow.AnalyzeResponse{Questions: parseQuestions(text)}, nil
}

func parseQuestions(raw string) []models.GapQuestion {
	var questions []models.GapQuestion
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &questions); err != nil || len(questions) == 0 {
		return []models.GapQuestion{fallbackQuestion}
	}
	return questions
}

// Synthesize produces the working document from the source material and the
// answered question set.
func (c *LLMClient) Synthesize(ctx context.Context, req workflow.SynthesizeRequest) (*workflow.SynthesizeResponse, error) {
	system, err := synthesizeSystemPrompt(req.Config)
	if err != nil {
		return nil, err
	}

	document, err := c.complete(ctx, system, synthesizeUserMessage(req),
		model.WithTemperature(0.4), model.WithMaxTokens(maxSynthesisTokens))
	if err != nil {
		return nil, fmt.Errorf("document generation failed: %w", err)
	}

	return &workflow.SynthesizeResponse{Document: document}, nil
}

// Refine rewrites one selected span according to the requested action.
func (c *LLMClient) Refine(ctx context.Context, req workflow.RefineRequest) (*workflow.RefineResponse, error) {
	system, err := refineSystemPrompt(req.Config, req.Action)
	if err != nil {
		return nil, err
	}

	refined, err := c.complete(ctx, system, "Section to refine:\n\n"+req.SelectedText,
		model.WithTemperature(0.3), model.WithMaxTokens(1500))
	if err != nil {
		return nil, fmt.Errorf("refinement failed: %w", err)
	}

	return &workflow.RefineResponse{Refined: refined}, nil
}

// CheckCompliance runs the advisory voice/structure/style pass. A response
// that cannot be parsed yields zero issues rather than an error so the rule
// engine results still reach the user.
func (c *LLMClient) CheckCompliance(ctx context.Context, document string) ([]models.ComplianceIssue, error) {
	system, err := loadPrompt("compliance_system.txt")
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, system, runeCap(document, complianceContentCap),
		model.WithTemperature(0.2), model.WithMaxTokens(2000))
	if err != nil {
		return nil, fmt.Errorf("compliance check failed: %w", err)
	}

	return parseComplianceIssues(raw), nil
}

func parseComplianceIssues(raw string) []models.ComplianceIssue {
	var issues []models.ComplianceIssue
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &issues); err != nil {
		return nil
	}
	if len(issues) > maxAdvisoryIssues {
		issues = issues[:maxAdvisoryIssues]
	}
	for i := range issues {
		issues[i].ProblematicText = runeCap(issues[i].ProblematicText, maxExcerptRunes)
	}
	return issues
}

// RecommendFormat suggests the doc type best matching the pasted content.
func (c *LLMClient) RecommendFormat(ctx context.Context, content string) (*models.FormatRecommendation, error) {
	system, err := loadPrompt("recommend_system.txt")
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, system,
		"Analyze this content and recommend a doc type:\n\n"+runeCap(content, recommendContentCap),
		model.WithTemperature(0.2), model.WithMaxTokens(120))
	if err != nil {
		return nil, fmt.Errorf("format recommendation failed: %w", err)
	}

	rec, err := parseRecommendation(raw)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func parseRecommendation(raw string) (*models.FormatRecommendation, error) {
	var rec models.FormatRecommendation
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}
	if !models.ValidDocType(rec.Type) {
		rec.Type = models.DocTypeUserGuide
	}
	if rec.Confidence == 0 || math.IsNaN(rec.Confidence) {
		rec.Confidence = 0.7
	}
	rec.Confidence = math.Min(1, math.Max(0, rec.Confidence))
	rec.Reason = strings.TrimSpace(rec.Reason)
	return &rec, nil
}
