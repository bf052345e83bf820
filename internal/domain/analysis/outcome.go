package analysis

// Stage identifies one step of the fixed six-step pipeline.
type Stage string

const (
	StageClassify   Stage = "classify"
	StageAnalyze    Stage = "analyze"
	StageAssessRisk Stage = "assess-risk"
	StageSearchWeb  Stage = "search-web"
	StageScore      Stage = "score"
	StageReport     Stage = "report"
)

// ErrorKind classifies why a stage fell back to a degraded payload.
type ErrorKind string

const (
	ErrKindNone    ErrorKind = ""
	ErrKindLLM     ErrorKind = "llm_failure"
	ErrKindParse   ErrorKind = "parse_failure"
	ErrKindSearch  ErrorKind = "search_failure"
	ErrKindSkipped ErrorKind = "skipped"
)

// Outcome reports how one stage concluded. A degraded outcome means the stage
// wrote a structurally valid fallback payload; the pipeline never aborts on
// it. Skipped (web search without credentials) is not degraded.
type Outcome struct {
	Stage    Stage     `json:"stage"`
	Degraded bool      `json:"degraded"`
	Kind     ErrorKind `json:"kind,omitempty"`
	Err      error     `json:"-"`
	Message  string    `json:"message,omitempty"`
}

// Ok reports a fully successful stage.
func Ok(stage Stage) Outcome {
	return Outcome{Stage: stage}
}

// Degraded reports a stage that substituted its fallback payload.
func Degraded(stage Stage, kind ErrorKind, err error) Outcome {
	o := Outcome{Stage: stage, Degraded: true, Kind: kind, Err: err}
	if err != nil {
		o.Message = err.Error()
	}
	return o
}

// Skipped reports a stage short-circuited by missing optional configuration.
func Skipped(stage Stage, reason string) Outcome {
	return Outcome{Stage: stage, Kind: ErrKindSkipped, Message: reason}
}

// AnyDegraded reports whether any outcome in the run fell back.
func AnyDegraded(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Degraded {
			return true
		}
	}
	return false
}
