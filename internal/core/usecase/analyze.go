package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/core/ports"
)

// ChunkClassifier is the chain contract the pipeline fans out over. A nil
// result means "unable to classify"; failures never surface as errors.
type ChunkClassifier interface {
	Classify(ctx context.Context, text string) []domain.Prediction
}

// AnalyzeDocumentUseCase runs the document pipeline: extract, chunk,
// classify every chunk concurrently, aggregate. All state is request-scoped.
type AnalyzeDocumentUseCase struct {
	extractor ports.TextExtractor
	chunker   ports.Chunker
	chain     ChunkClassifier
	summary   ports.SummaryService
}

func NewAnalyzeDocumentUseCase(
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	chain ChunkClassifier,
	summary ports.SummaryService,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		extractor: extractor,
		chunker:   chunker,
		chain:     chain,
		summary:   summary,
	}
}

func (uc *AnalyzeDocumentUseCase) AnalyzeDocument(ctx context.Context, data []byte, mediaType string) (*domain.DocumentAnalysis, error) {
	text, err := uc.extractor.Extract(ctx, data, mediaType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrEmptyDocument, "analyze document",
			errors.New("no text extracted"))
	}

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyDocument, "analyze document",
			errors.New("chunking produced zero chunks"))
	}

	analysis := &domain.DocumentAnalysis{
		Chunks: uc.classifyChunks(ctx, chunks),
	}
	analysis.Top = pickTop(analysis.Chunks)

	if uc.summary != nil {
		analysis.Summary = uc.summary.Summarize(ctx, text)
	}
	return analysis, nil
}

// classifyChunks dispatches every chunk concurrently and reassembles results
// in original order. This is a join-all: a failed or slow chunk never
// cancels its siblings.
func (uc *AnalyzeDocumentUseCase) classifyChunks(ctx context.Context, chunks []string) []domain.ChunkResult {
	results := make([]domain.ChunkResult, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			preds := uc.chain.Classify(ctx, chunk)
			results[i] = domain.ChunkResult{
				Text:       chunk,
				Prediction: preds,
				Failed:     preds == nil,
			}
		}(i, chunk)
	}
	wg.Wait()

	return results
}

// pickTop selects the highest-confidence non-fallback prediction across all
// chunks, falling back to the highest-confidence fallback prediction.
// Fallback-tier scores are not calibrated against the specialist tiers, so
// they only win when no specialist result exists at all.
func pickTop(chunks []domain.ChunkResult) *domain.Prediction {
	var bestSpecialist, bestFallback *domain.Prediction
	for i := range chunks {
		for j := range chunks[i].Prediction {
			p := &chunks[i].Prediction[j]
			if p.IsFallback {
				if bestFallback == nil || p.Score > bestFallback.Score {
					bestFallback = p
				}
				continue
			}
			if bestSpecialist == nil || p.Score > bestSpecialist.Score {
				bestSpecialist = p
			}
		}
	}

	chosen := bestSpecialist
	if chosen == nil {
		chosen = bestFallback
	}
	if chosen == nil {
		return nil
	}
	top := *chosen
	return &top
}
