package models

// IssueCategory groups compliance findings by the kind of rule they break.
type IssueCategory string

const (
	IssueTerminology IssueCategory = "terminology"
	IssueVoice       IssueCategory = "voice"
	IssueStructure   IssueCategory = "structure"
	IssueStyle       IssueCategory = "style"
)

// IssueSeverity ranks a finding. Lower rank sorts first in the visible list.
type IssueSeverity string

const (
	SeverityError      IssueSeverity = "error"
	SeverityWarning    IssueSeverity = "warning"
	SeveritySuggestion IssueSeverity = "suggestion"
)

// SeverityRank returns the presentation order for a severity:
// error(0) < warning(1) < suggestion(2). Unknown severities sort last.
func SeverityRank(s IssueSeverity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeveritySuggestion:
		return 2
	}
	return 3
}

// ComplianceIssue is one finding against the document, produced either by
// the deterministic rule engine or by the advisory compliance service.
// Identity is by ID only; findings from the two sources are never
// content-deduplicated.
type ComplianceIssue struct {
	ID              string        `json:"id"`
	Category        IssueCategory `json:"category"`
	Severity        IssueSeverity `json:"severity"`
	Rule            string        `json:"rule"`
	ProblematicText string        `json:"problematic_text,omitempty"`
	Suggestion      string        `json:"suggestion"`
}
