package compliance

import (
	"fmt"

	"doccraft/internal/models"
	"doccraft/internal/terminology"
)

const (
	ruleForbidden = "MSTP: Avoid discouraged words"
	rulePreferred = "MSTP: Use preferred terminology"
)

// FromTerminology lifts rule-engine findings into the shared issue shape used
// by the merged compliance view. Forbidden terms surface as errors, preferred
// terms as suggestions since they already carry a rewrite.
func FromTerminology(issues []terminology.Issue) []models.ComplianceIssue {
	out := make([]models.ComplianceIssue, 0, len(issues))
	for i, issue := range issues {
		converted := models.ComplianceIssue{
			ID:              fmt.Sprintf("term-%d", i),
			Category:        models.IssueTerminology,
			ProblematicText: issue.Term,
		}
		if issue.IssueType == terminology.IssueForbidden {
			converted.Severity = models.SeverityError
			converted.Rule = ruleForbidden
			converted.Suggestion = fmt.Sprintf("Remove or rephrase %q.", issue.Term)
		} else {
			converted.Severity = models.SeveritySuggestion
			converted.Rule = rulePreferred
			converted.Suggestion = fmt.Sprintf("Replace %q with %q.", issue.Term, issue.Suggestion)
		}
		out = append(out, converted)
	}
	return out
}
