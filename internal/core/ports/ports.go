package ports

import (
	"context"

	"github.com/clauseguard/backend/internal/core/domain"
)

// TextExtractor converts an uploaded binary into plain text. It is a pure
// transform; decoder failures surface as domain.ErrExtractionFailed and
// unknown media types as domain.ErrUnsupportedFormat.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (string, error)
}

// Chunker splits raw text into bounded-length segments.
type Chunker interface {
	Split(text string) []string
}

// Classifier is one inference tier. A (nil, nil) return means the backend
// answered but no recognized result shape was present; callers treat that as
// a miss, not a failure.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.Prediction, error)
}

// Summarizer produces a whole-document summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// WorkflowAgent is the external multi-agent chat API. One session correlates
// all stages of a workflow invocation.
type WorkflowAgent interface {
	CreateSession(ctx context.Context, agentID string) (string, error)
	Query(ctx context.Context, sessionID, agentID, prompt string) (string, error)
}

// UserStore is the injected account store backing the mock auth endpoints.
type UserStore interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password string) (*domain.User, error)
}

// DocumentAnalyzer runs the full upload-to-analysis pipeline.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, data []byte, mediaType string) (*domain.DocumentAnalysis, error)
}

// TextPredictor classifies a single text and composes a natural-language
// analysis response.
type TextPredictor interface {
	Predict(ctx context.Context, text string) (string, error)
}

// SummaryService is a best-effort summary provider; it never fails.
type SummaryService interface {
	Summarize(ctx context.Context, text string) string
}

// WorkflowRunner executes the four-stage legal workflow.
type WorkflowRunner interface {
	Run(ctx context.Context, clause, summary string) (string, error)
}
