package compliance

import (
	"sort"

	"doccraft/internal/models"

	"github.com/google/uuid"
)

// IssueList merges rule-engine and advisory findings into one ordered set and
// tracks view-only state (dismissed, expanded). The underlying issues are
// never removed or reordered; dismissal only filters the visible sequence.
type IssueList struct {
	issues    []models.ComplianceIssue
	dismissed map[string]bool
	expanded  map[string]bool
}

// NewIssueList concatenates rule issues first, then advisory issues, each in
// its source's own order. Issues arriving without an id get one assigned so
// dismissal and expansion stay addressable.
func NewIssueList(ruleIssues, advisoryIssues []models.ComplianceIssue) *IssueList {
	merged := make([]models.ComplianceIssue, 0, len(ruleIssues)+len(advisoryIssues))
	merged = append(merged, ruleIssues...)
	merged = append(merged, advisoryIssues...)
	for i := range merged {
		if merged[i].ID == "" {
			merged[i].ID = uuid.NewString()
		}
	}
	return &IssueList{
		issues:    merged,
		dismissed: make(map[string]bool),
		expanded:  make(map[string]bool),
	}
}

// All returns the full underlying set in storage order, dismissed included.
func (l *IssueList) All() []models.ComplianceIssue {
	return append([]models.ComplianceIssue(nil), l.issues...)
}

// Visible returns the presentation sequence: dismissed issues filtered out,
// remaining issues stably sorted by severity rank so equal-severity findings
// keep their relative input order.
func (l *IssueList) Visible() []models.ComplianceIssue {
	visible := make([]models.ComplianceIssue, 0, len(l.issues))
	for _, issue := range l.issues {
		if !l.dismissed[issue.ID] {
			visible = append(visible, issue)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return models.SeverityRank(visible[i].Severity) < models.SeverityRank(visible[j].Severity)
	})
	return visible
}

// Dismiss hides an issue from the visible sequence. There is no undismiss.
func (l *IssueList) Dismiss(id string) {
	if l.has(id) {
		l.dismissed[id] = true
	}
}

// DismissAll hides every issue currently in the set.
func (l *IssueList) DismissAll() {
	for _, issue := range l.issues {
		l.dismissed[issue.ID] = true
	}
}

// ToggleExpand flips the excerpt visibility for an issue. Only issues with a
// non-empty excerpt are expandable; everything starts collapsed.
func (l *IssueList) ToggleExpand(id string) {
	for _, issue := range l.issues {
		if issue.ID == id {
			if issue.ProblematicText == "" {
				return
			}
			l.expanded[id] = !l.expanded[id]
			return
		}
	}
}

func (l *IssueList) IsExpanded(id string) bool {
	return l.expanded[id]
}

// Counts tallies the visible issues by severity for summary display.
func (l *IssueList) Counts() (errors, warnings, suggestions int) {
	for _, issue := range l.Visible() {
		switch issue.Severity {
		case models.SeverityError:
			errors++
		case models.SeverityWarning:
			warnings++
		case models.SeveritySuggestion:
			suggestions++
		}
	}
	return errors, warnings, suggestions
}

func (l *IssueList) has(id string) bool {
	for _, issue := range l.issues {
		if issue.ID == id {
			return true
		}
	}
	return false
}
