package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/clauseguard/backend/internal/core/domain"
)

var errHTTP500 = errors.New("status: 500 Internal Server Error")

type classifierFake struct {
	preds []domain.Prediction
	err   error
	calls int
}

func (f *classifierFake) Classify(context.Context, string) ([]domain.Prediction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.preds, nil
}

type observerFake struct {
	attempts []string
}

func (o *observerFake) RecordTierAttempt(tier, outcome string) {
	o.attempts = append(o.attempts, tier+":"+outcome)
}

func TestClassifyPrimarySuccessStopsChain(t *testing.T) {
	primary := &classifierFake{preds: []domain.Prediction{{Label: "Indemnification", Score: 0.9}}}
	secondary := &classifierFake{preds: []domain.Prediction{{Label: "unused", Score: 0.5}}}
	tertiary := &classifierFake{}

	chain := NewFallbackChain(primary, secondary, tertiary, nil)
	preds := chain.Classify(context.Background(), "clause")

	if len(preds) != 1 || preds[0].Label != "Indemnification" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
	if preds[0].IsFallback {
		t.Fatalf("primary result must not be tagged as fallback")
	}
	if secondary.calls != 0 || tertiary.calls != 0 {
		t.Fatalf("later tiers must not be called after a hit")
	}
}

func TestClassifySecondaryResultNotTaggedFallback(t *testing.T) {
	primary := &classifierFake{err: domain.WrapError(domain.ErrBackendUnavailable, "inference", errHTTP500)}
	secondary := &classifierFake{preds: []domain.Prediction{{Label: "Termination", Score: 0.6}}}
	tertiary := &classifierFake{}

	chain := NewFallbackChain(primary, secondary, tertiary, nil)
	preds := chain.Classify(context.Background(), "clause")

	if len(preds) != 1 || preds[0].Label != "Termination" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
	if preds[0].IsFallback {
		t.Fatalf("secondary tier result must not carry the fallback tag")
	}
}

func TestClassifyTertiaryTaggedAndPrefixed(t *testing.T) {
	primary := &classifierFake{err: domain.WrapError(domain.ErrBackendUnavailable, "inference", errHTTP500)}
	secondary := &classifierFake{err: domain.WrapError(domain.ErrBackendUnavailable, "space", errHTTP500)}
	tertiary := &classifierFake{preds: []domain.Prediction{{Label: "LABEL_1", Score: 0.8}}}

	chain := NewFallbackChain(primary, secondary, tertiary, nil)
	preds := chain.Classify(context.Background(), "clause")

	if len(preds) != 1 {
		t.Fatalf("unexpected predictions: %v", preds)
	}
	got := preds[0]
	if got.Label != "General Analysis: LABEL_1" || got.Score != 0.8 || !got.IsFallback {
		t.Fatalf("unexpected tertiary result: %+v", got)
	}
}

func TestClassifyAllTiersFailReturnsNil(t *testing.T) {
	failing := domain.WrapError(domain.ErrBackendTimeout, "inference", context.DeadlineExceeded)
	chain := NewFallbackChain(
		&classifierFake{err: failing},
		&classifierFake{err: failing},
		&classifierFake{err: failing},
		nil,
	)
	if preds := chain.Classify(context.Background(), "clause"); preds != nil {
		t.Fatalf("expected nil after all tiers failed, got %v", preds)
	}
}

func TestClassifyNormalizationMissAdvancesChain(t *testing.T) {
	primary := &classifierFake{}
	secondary := &classifierFake{preds: []domain.Prediction{{Label: "Liability", Score: 0.7}}}

	observer := &observerFake{}
	chain := NewFallbackChain(primary, secondary, nil, observer)
	preds := chain.Classify(context.Background(), "clause")

	if len(preds) != 1 || preds[0].Label != "Liability" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
	if len(observer.attempts) != 2 || observer.attempts[0] != "primary:miss" || observer.attempts[1] != "secondary:hit" {
		t.Fatalf("unexpected attempt record: %v", observer.attempts)
	}
}

func TestClassifySortsByScore(t *testing.T) {
	primary := &classifierFake{preds: []domain.Prediction{
		{Label: "Low", Score: 0.1},
		{Label: "High", Score: 0.9},
	}}
	chain := NewFallbackChain(primary, nil, nil, nil)
	preds := chain.Classify(context.Background(), "clause")
	if preds[0].Label != "High" {
		t.Fatalf("predictions not sorted by score: %v", preds)
	}
}
