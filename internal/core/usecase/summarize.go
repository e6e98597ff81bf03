package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/clauseguard/backend/internal/core/ports"
)

// SummaryNotAvailable is returned whenever the summarization backend cannot
// deliver; summarization is best-effort and never fails a request.
const SummaryNotAvailable = "Summary not available"

type SummarizeUseCase struct {
	summarizer ports.Summarizer
}

func NewSummarizeUseCase(summarizer ports.Summarizer) *SummarizeUseCase {
	return &SummarizeUseCase{summarizer: summarizer}
}

func (uc *SummarizeUseCase) Summarize(ctx context.Context, text string) string {
	if uc.summarizer == nil || strings.TrimSpace(text) == "" {
		return SummaryNotAvailable
	}

	summary, err := uc.summarizer.Summarize(ctx, text)
	if err != nil {
		slog.Warn("summary_failed", "error", err)
		return SummaryNotAvailable
	}
	if strings.TrimSpace(summary) == "" {
		return SummaryNotAvailable
	}
	return summary
}
