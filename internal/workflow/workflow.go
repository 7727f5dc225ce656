package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"doccraft/internal/compliance"
	"doccraft/internal/events"
	"doccraft/internal/gaps"
	"doccraft/internal/models"
	"doccraft/internal/terminology"
	"doccraft/internal/utils"
)

const (
	defaultCallTimeout = 90 * time.Second
	inputSummaryLength = 100
)

// Dependencies carries the collaborators a workflow talks to. Analyzer and
// Synthesizer are required; the advisory collaborators and the history store
// may be nil, in which case the corresponding features degrade silently.
type Dependencies struct {
	Analyzer    Analyzer
	Synthesizer Synthesizer
	Refiner     Refiner
	Compliance  ComplianceChecker
	Recommender FormatRecommender
	History     HistoryStore

	// CallTimeout bounds every collaborator call; zero means the default.
	CallTimeout time.Duration
	// RecommendDebounce is the quiet window before the format advisory runs.
	RecommendDebounce time.Duration
}

// Workflow is the document workflow orchestrator: a stage machine that owns
// the run-scoped state (config, source content, question set, working
// document) and sequences the collaborator calls between stages. All
// mutation goes through its methods; a mutex serializes them so there is a
// single logical thread of control per run.
type Workflow struct {
	mu sync.Mutex

	stage       Stage
	config      models.DocConfig
	content     string
	contextText string
	glossary    *models.GlossaryData
	questions   *gaps.QuestionSet
	document    string
	lastError   string

	// contentVersion fingerprints the source content for the debounced
	// advisory; a completed lookup whose version no longer matches is stale.
	contentVersion uint64
	recommendation *models.FormatRecommendation
	advTimer       *time.Timer

	deps Dependencies
}

// New builds a workflow in the Upload stage with the default configuration.
func New(deps Dependencies) *Workflow {
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = defaultCallTimeout
	}
	if deps.RecommendDebounce <= 0 {
		deps.RecommendDebounce = recommendDebounce
	}
	return &Workflow{
		stage:  StageUpload,
		config: models.DefaultDocConfig(),
		deps:   deps,
	}
}

func (w *Workflow) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *Workflow) Document() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.document
}

func (w *Workflow) Config() models.DocConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.config
}

// LastError returns the most recent user-facing failure message, cleared on
// the next successful trigger.
func (w *Workflow) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// SetContent replaces the source material. Only meaningful while assembling
// input; it restarts the debounced format advisory and invalidates any
// pending or surfaced recommendation.
func (w *Workflow) SetContent(content string) error {
	w.mu.Lock()
	if w.stage != StageUpload {
		w.mu.Unlock()
		return fmt.Errorf("source content can only change in the %s stage", StageUpload)
	}
	w.content = content
	w.contentVersion++
	w.recommendation = nil
	w.lastError = ""
	version := w.contentVersion
	w.mu.Unlock()

	w.scheduleRecommendation(version)
	return nil
}

// SetConfig applies an explicit user edit to the run configuration.
func (w *Workflow) SetConfig(config models.DocConfig) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageUpload {
		return fmt.Errorf("configuration can only change in the %s stage", StageUpload)
	}
	w.config = config.Normalize()
	return nil
}

// SetContext replaces the supporting context documents and glossary.
func (w *Workflow) SetContext(contextText string, glossary *models.GlossaryData) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageUpload {
		return fmt.Errorf("context can only change in the %s stage", StageUpload)
	}
	w.contextText = contextText
	w.glossary = glossary.Clone()
	return nil
}

// StartAnalysis runs Upload -> Analyzing -> Questions. Empty content is an
// input validation error: no transition happens and the analyzer is never
// called. A trigger while already analyzing is a no-op. On collaborator
// failure the workflow returns to Upload with the error surfaced; the
// content, context, and configuration survive.
func (w *Workflow) StartAnalysis(ctx context.Context) error {
	w.mu.Lock()
	if w.stage == StageAnalyzing {
		w.mu.Unlock()
		return nil
	}
	if w.stage != StageUpload {
		w.mu.Unlock()
		return fmt.Errorf("cannot start analysis from the %s stage", w.stage)
	}
	if strings.TrimSpace(w.content) == "" {
		w.lastError = "source content is required"
		w.mu.Unlock()
		return fmt.Errorf("source content is required")
	}
	w.stage = StageAnalyzing
	w.lastError = ""
	req := AnalyzeRequest{Content: w.content, Config: w.config, ContextText: w.contextText}
	w.mu.Unlock()

	events.Emit(ctx, events.WorkflowStage, events.NewInfo("analysis started"))

	callCtx, cancel := context.WithTimeout(ctx, w.deps.CallTimeout)
	defer cancel()
	resp, err := w.deps.Analyzer.Analyze(callCtx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil || resp == nil {
		if err == nil {
			err = fmt.Errorf("analysis returned no questions")
		}
		w.stage = StageUpload
		w.lastError = fmt.Sprintf("Analysis failed: %v", err)
		events.Emit(ctx, events.WorkflowError, events.NewError(w.lastError))
		return fmt.Errorf("analysis failed: %w", err)
	}

	w.questions = gaps.New(resp.Questions)
	w.stage = StageQuestions
	events.Emit(ctx, events.WorkflowStage, events.NewSuccess(
		fmt.Sprintf("analysis complete: %d questions", w.questions.Len())))
	return nil
}

// AnswerQuestion records an answer on the active question set.
func (w *Workflow) AnswerQuestion(id, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageQuestions || w.questions == nil {
		return fmt.Errorf("no active question set")
	}
	if !w.questions.SetAnswer(id, text) {
		return fmt.Errorf("question %s not found", id)
	}
	return nil
}

// SkipQuestion toggles the skip flag on the active question set.
func (w *Workflow) SkipQuestion(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageQuestions || w.questions == nil {
		return fmt.Errorf("no active question set")
	}
	if !w.questions.ToggleSkip(id) {
		return fmt.Errorf("question %s not found", id)
	}
	return nil
}

// Questions returns a copy of the active question set, or nil outside the
// Questions stage.
func (w *Workflow) Questions() []models.GapQuestion {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.questions == nil {
		return nil
	}
	return w.questions.Questions()
}

// Completion reports the answered/total progress of the active question set.
func (w *Workflow) Completion() (answered, total int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.questions == nil {
		return 0, 0
	}
	return w.questions.Completion()
}

// SubmitAnswers runs Questions -> Generating -> Editing. The full question
// set, skipped entries included, is handed to the synthesis call. On success
// the working document is the response verbatim, the question set is
// discarded, and exactly one session is appended to history; a persistence
// failure degrades to "history not saved". On collaborator failure the
// workflow returns to Questions with the answers intact.
func (w *Workflow) SubmitAnswers(ctx context.Context) error {
	w.mu.Lock()
	if w.stage != StageQuestions || w.questions == nil {
		w.mu.Unlock()
		return fmt.Errorf("cannot generate from the %s stage", w.stage)
	}
	w.stage = StageGenerating
	w.lastError = ""
	req := SynthesizeRequest{
		Content:     w.content,
		Config:      w.config,
		Answers:     w.questions.Questions(),
		ContextText: w.contextText,
	}
	w.mu.Unlock()

	events.Emit(ctx, events.WorkflowStage, events.NewInfo("generation started"))

	callCtx, cancel := context.WithTimeout(ctx, w.deps.CallTimeout)
	defer cancel()
	resp, err := w.deps.Synthesizer.Synthesize(callCtx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil || resp == nil {
		if err == nil {
			err = fmt.Errorf("synthesis returned no document")
		}
		w.stage = StageQuestions
		w.lastError = fmt.Sprintf("Generation failed: %v", err)
		events.Emit(ctx, events.WorkflowError, events.NewError(w.lastError))
		return fmt.Errorf("generation failed: %w", err)
	}

	w.document = resp.Document
	w.questions = nil
	w.stage = StageEditing
	events.Emit(ctx, events.WorkflowStage, events.NewSuccess("document generated"))

	// One session per successful generation, appended on entering Editing.
	if w.deps.History != nil {
		summary := utils.TruncateRunes(w.content, inputSummaryLength)
		if _, saveErr := w.deps.History.Save(ctx, w.config, summary, w.document); saveErr != nil {
			events.Emit(ctx, events.HistoryEvent, events.NewWarn(
				fmt.Sprintf("history not saved: %v", saveErr)))
		}
	}
	return nil
}

// UpdateDocument applies a direct user edit to the working document.
func (w *Workflow) UpdateDocument(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageEditing {
		return fmt.Errorf("document can only be edited in the %s stage", StageEditing)
	}
	w.document = text
	return nil
}

// RefineSelection rewrites a selected span of the working document through
// the refinement collaborator and splices the result back in place. No stage
// transition happens either way.
func (w *Workflow) RefineSelection(ctx context.Context, selectedText string, action RefineAction) (string, error) {
	w.mu.Lock()
	if w.stage != StageEditing {
		w.mu.Unlock()
		return "", fmt.Errorf("refinement is only available in the %s stage", StageEditing)
	}
	if strings.TrimSpace(selectedText) == "" {
		w.mu.Unlock()
		return "", fmt.Errorf("selected text is required")
	}
	if !ValidRefineAction(action) {
		w.mu.Unlock()
		return "", fmt.Errorf("unknown refine action %q", action)
	}
	if !strings.Contains(w.document, selectedText) {
		w.mu.Unlock()
		return "", fmt.Errorf("selected text is not part of the document")
	}
	req := RefineRequest{
		SelectedText: selectedText,
		Action:       action,
		FullDocument: w.document,
		Config:       w.config,
	}
	w.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, w.deps.CallTimeout)
	defer cancel()
	resp, err := w.deps.Refiner.Refine(callCtx, req)
	if err != nil || resp == nil {
		if err == nil {
			err = fmt.Errorf("refinement returned no text")
		}
		events.Emit(ctx, events.WorkflowError, events.NewError(fmt.Sprintf("Refinement failed: %v", err)))
		return "", fmt.Errorf("refinement failed: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageEditing {
		return "", fmt.Errorf("refinement result discarded: stage changed")
	}
	w.document = strings.Replace(w.document, selectedText, resp.Refined, 1)
	return resp.Refined, nil
}

// CheckCompliance evaluates the working document. The rule engine always
// contributes; the advisory collaborator is best-effort and any failure
// (including a malformed response) degrades to rule-engine issues alone.
func (w *Workflow) CheckCompliance(ctx context.Context) (*compliance.IssueList, error) {
	w.mu.Lock()
	document := w.document
	glossary := w.glossary
	w.mu.Unlock()

	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("no document to check")
	}

	ruleIssues := compliance.FromTerminology(terminology.Evaluate(document, glossary))

	var advisory []models.ComplianceIssue
	if w.deps.Compliance != nil {
		callCtx, cancel := context.WithTimeout(ctx, w.deps.CallTimeout)
		defer cancel()
		issues, err := w.deps.Compliance.CheckCompliance(callCtx, document)
		if err != nil {
			events.Emit(ctx, events.WorkflowAdvisory, events.NewWarn(
				fmt.Sprintf("advisory compliance check skipped: %v", err)))
		} else {
			advisory = issues
		}
	}

	return compliance.NewIssueList(ruleIssues, advisory), nil
}

// Reset starts a new run: back to Upload with all run-scoped state cleared.
// The configuration survives, matching an explicit user edit model.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stage = StageUpload
	w.content = ""
	w.contextText = ""
	w.glossary = nil
	w.questions = nil
	w.document = ""
	w.lastError = ""
	w.recommendation = nil
	w.contentVersion++
	if w.advTimer != nil {
		w.advTimer.Stop()
		w.advTimer = nil
	}
}

// RestoreSession installs a stored session's config and document and jumps
// straight to Editing, bypassing analysis and generation. Rejected while a
// collaborator call is in flight.
func (w *Workflow) RestoreSession(ctx context.Context, id string) error {
	if w.deps.History == nil {
		return fmt.Errorf("session history is not available")
	}

	w.mu.Lock()
	if w.stage == StageAnalyzing || w.stage == StageGenerating {
		w.mu.Unlock()
		return fmt.Errorf("cannot restore a session while a run is in flight")
	}
	w.mu.Unlock()

	session, err := w.deps.History.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("restore session %s: %w", id, err)
	}
	if session == nil {
		return fmt.Errorf("session %s not found", id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.config = session.Config().Normalize()
	w.document = session.GeneratedDoc
	w.questions = nil
	w.content = ""
	w.lastError = ""
	w.recommendation = nil
	w.stage = StageEditing
	events.Emit(ctx, events.WorkflowStage, events.NewSuccess(
		fmt.Sprintf("restored session %s", session.ID)))
	return nil
}
