package workflow

// Stage is one state of the document workflow. Exactly one stage is active
// per run; it is process state and is never persisted.
type Stage string

const (
	StageUpload     Stage = "upload"
	StageAnalyzing  Stage = "analyzing"
	StageQuestions  Stage = "questions"
	StageGenerating Stage = "generating"
	StageEditing    Stage = "editing"
)

func (s Stage) String() string {
	return string(s)
}

// validTransitions is the full edge set of the stage machine, failure edges
// included. Restore (any idle stage -> editing) and reset (-> upload) are
// modeled explicitly by the orchestrator on top of this table.
var validTransitions = map[Stage][]Stage{
	StageUpload:     {StageAnalyzing},
	StageAnalyzing:  {StageQuestions, StageUpload},
	StageQuestions:  {StageGenerating},
	StageGenerating: {StageEditing, StageQuestions},
	StageEditing:    {StageUpload},
}

// CanTransition reports whether from -> to is an edge of the stage machine.
func CanTransition(from, to Stage) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
