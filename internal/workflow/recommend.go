package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"doccraft/internal/events"
	"doccraft/internal/models"
)

const (
	recommendDebounce   = 800 * time.Millisecond
	recommendMinContent = 150
	recommendThreshold  = 0.7
)

// scheduleRecommendation (re)arms the debounced format advisory for the given
// content version. Each content change restarts the window; it never queues.
func (w *Workflow) scheduleRecommendation(version uint64) {
	if w.deps.Recommender == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.advTimer != nil {
		w.advTimer.Stop()
	}
	if len(strings.TrimSpace(w.content)) < recommendMinContent {
		w.advTimer = nil
		return
	}
	w.advTimer = time.AfterFunc(w.deps.RecommendDebounce, func() {
		w.runRecommendation(version)
	})
}

// runRecommendation performs the advisory lookup for one content version.
// The result is applied only if the version still matches and the stage is
// still Upload; a late answer must never overwrite state the user moved past.
func (w *Workflow) runRecommendation(version uint64) {
	w.mu.Lock()
	if w.stage != StageUpload || w.contentVersion != version {
		w.mu.Unlock()
		return
	}
	content := w.content
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.deps.CallTimeout)
	defer cancel()
	rec, err := w.deps.Recommender.RecommendFormat(ctx, content)
	if err != nil || rec == nil {
		// Advisory only: failures never surface.
		if err != nil {
			events.Emit(ctx, events.WorkflowAdvisory, events.NewWarn(
				fmt.Sprintf("format recommendation skipped: %v", err)))
		}
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageUpload || w.contentVersion != version {
		return
	}
	if rec.Confidence < recommendThreshold || rec.Type == w.config.DocType {
		return
	}
	w.recommendation = rec
	events.Emit(context.Background(), events.WorkflowAdvisory, events.NewInfo(
		fmt.Sprintf("suggested doc type: %s (%s)", rec.Type, rec.Reason)))
}

// Recommendation returns the surfaced format suggestion, if any.
func (w *Workflow) Recommendation() *models.FormatRecommendation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recommendation
}
