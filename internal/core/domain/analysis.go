package domain

// Prediction is one normalized classification outcome. Labels produced by the
// generic sentiment tier carry IsFallback=true and a "General Analysis:"
// prefix; their label space is not comparable to the specialist tiers.
type Prediction struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	IsFallback bool    `json:"isFallback,omitempty"`
}

// ChunkResult is the per-chunk outcome of document analysis. A chunk whose
// entire fallback chain failed has Failed=true and a nil Prediction; it never
// aborts the document.
type ChunkResult struct {
	Text       string       `json:"text"`
	Prediction []Prediction `json:"prediction"`
	Failed     bool         `json:"error,omitempty"`
}

// DocumentAnalysis aggregates one ChunkResult per chunk, the overall top
// classification and a best-effort summary. It lives for a single request.
type DocumentAnalysis struct {
	Chunks  []ChunkResult `json:"data"`
	Top     *Prediction   `json:"top,omitempty"`
	Summary string        `json:"summary,omitempty"`
}

// WorkflowStage names one step of the four-stage legal workflow.
type WorkflowStage string

const (
	StageResearch  WorkflowStage = "Research"
	StageFaultFind WorkflowStage = "FaultFind"
	StageValidate  WorkflowStage = "Validate"
	StageDraft     WorkflowStage = "Draft"
)

// User is an account in the mock auth store.
type User struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}
