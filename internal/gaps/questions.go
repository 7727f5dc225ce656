package gaps

import (
	"fmt"
	"strings"

	"doccraft/internal/models"
)

// QuestionSet holds the clarification questions for one workflow run.
// Its lifetime is scoped to the run: a new analysis replaces it, a successful
// generation discards it. Answering and skipping a question are mutually
// exclusive.
type QuestionSet struct {
	questions []models.GapQuestion
}

// New builds a question set from freshly analyzed questions. Every entry is
// normalized to an empty answer and not skipped regardless of what the
// analysis response carried. Entries without an id get the next free "qN";
// an assigned id never collides with one the response already carried.
func New(questions []models.GapQuestion) *QuestionSet {
	used := make(map[string]bool, len(questions))
	for _, q := range questions {
		if id := strings.TrimSpace(q.ID); id != "" {
			used[id] = true
		}
	}

	normalized := make([]models.GapQuestion, len(questions))
	next := 1
	for i, q := range questions {
		q.Answer = ""
		q.Skipped = false
		if strings.TrimSpace(q.ID) == "" {
			for used[fmt.Sprintf("q%d", next)] {
				next++
			}
			q.ID = fmt.Sprintf("q%d", next)
			used[q.ID] = true
		}
		normalized[i] = q
	}
	return &QuestionSet{questions: normalized}
}

// SetAnswer records an answer and clears the skip flag.
func (s *QuestionSet) SetAnswer(id, text string) bool {
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Answer = text
			s.questions[i].Skipped = false
			return true
		}
	}
	return false
}

// ToggleSkip flips the skip flag. Skipping clears the answer, and unskipping
// does not restore it.
func (s *QuestionSet) ToggleSkip(id string) bool {
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Skipped = !s.questions[i].Skipped
			s.questions[i].Answer = ""
			return true
		}
	}
	return false
}

// Completion reports how many questions are resolved (non-empty trimmed
// answer or skipped) out of the fixed total for this run.
func (s *QuestionSet) Completion() (answered, total int) {
	for _, q := range s.questions {
		if strings.TrimSpace(q.Answer) != "" || q.Skipped {
			answered++
		}
	}
	return answered, len(s.questions)
}

// Questions returns a copy of the full set, skipped entries included, in
// analysis order. This is the payload handed to the synthesis step; skipped
// entries stay flagged so generated assumptions can be marked.
func (s *QuestionSet) Questions() []models.GapQuestion {
	return append([]models.GapQuestion(nil), s.questions...)
}

// Get looks up a single question by id.
func (s *QuestionSet) Get(id string) (models.GapQuestion, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.GapQuestion{}, false
}

func (s *QuestionSet) Len() int {
	return len(s.questions)
}
