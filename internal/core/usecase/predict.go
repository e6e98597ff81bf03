package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/core/ports"
)

// summaryMinChars gates summarization for the single-text path: short chat
// inputs gain nothing from a summary call.
const summaryMinChars = 200

// PredictUseCase classifies a single text and composes the natural-language
// analysis response: one classification sentence, plus a summary paragraph
// for long inputs.
type PredictUseCase struct {
	chain   ChunkClassifier
	summary ports.SummaryService
}

func NewPredictUseCase(chain ChunkClassifier, summary ports.SummaryService) *PredictUseCase {
	return &PredictUseCase{chain: chain, summary: summary}
}

func (uc *PredictUseCase) Predict(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "predict", errors.New("text is required"))
	}

	preds := uc.chain.Classify(ctx, text)

	var sb strings.Builder
	if len(preds) == 0 {
		sb.WriteString("I was unable to classify this text. The analysis services may be temporarily unavailable, please try again.")
	} else {
		top := preds[0]
		fmt.Fprintf(&sb, "This input appears to be classified as **%s** with %.2f%% confidence.", top.Label, top.Score*100)
	}

	if uc.summary != nil && len(text) >= summaryMinChars {
		if summary := uc.summary.Summarize(ctx, text); summary != SummaryNotAvailable {
			sb.WriteString("\n\nSummary: ")
			sb.WriteString(summary)
		}
	}
	return sb.String(), nil
}
