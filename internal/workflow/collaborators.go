package workflow

import (
	"context"

	"doccraft/internal/models"
)

// The generative service is consumed through these contracts only. The core
// never constructs prompts or parses model output itself; it hands over
// request structs and takes back plain data.

type AnalyzeRequest struct {
	Content     string
	Config      models.DocConfig
	ContextText string
}

type AnalyzeResponse struct {
	Questions []models.GapQuestion
}

type SynthesizeRequest struct {
	Content     string
	Config      models.DocConfig
	Answers     []models.GapQuestion
	ContextText string
}

type SynthesizeResponse struct {
	Document string
}

// RefineAction is the fixed vocabulary of span-level rewrite operations.
type RefineAction string

const (
	ActionSimplify     RefineAction = "simplify"
	ActionExpand       RefineAction = "expand"
	ActionExample      RefineAction = "example"
	ActionTroubleshoot RefineAction = "troubleshoot"
	ActionFormal       RefineAction = "formal"
	ActionConcise      RefineAction = "concise"
)

func ValidRefineAction(a RefineAction) bool {
	switch a {
	case ActionSimplify, ActionExpand, ActionExample, ActionTroubleshoot, ActionFormal, ActionConcise:
		return true
	}
	return false
}

type RefineRequest struct {
	SelectedText string
	Action       RefineAction
	FullDocument string
	Config       models.DocConfig
}

type RefineResponse struct {
	Refined string
}

// Analyzer turns raw source material into clarification questions.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}

// Synthesizer produces the working document from content plus answers.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResponse, error)
}

// Refiner rewrites a selected span without a stage transition.
type Refiner interface {
	Refine(ctx context.Context, req RefineRequest) (*RefineResponse, error)
}

// ComplianceChecker is the advisory issue source merged with the rule engine.
// Failures are swallowed by the orchestrator.
type ComplianceChecker interface {
	CheckCompliance(ctx context.Context, document string) ([]models.ComplianceIssue, error)
}

// FormatRecommender suggests a doc type for pasted content. Advisory only.
type FormatRecommender interface {
	RecommendFormat(ctx context.Context, content string) (*models.FormatRecommendation, error)
}

// HistoryStore is the persistence boundary for completed runs. Injected so
// the orchestrator can be tested against an in-memory fake.
type HistoryStore interface {
	Save(ctx context.Context, config models.DocConfig, inputSummary, document string) (*models.DocSession, error)
	Get(ctx context.Context, id string) (*models.DocSession, error)
}
