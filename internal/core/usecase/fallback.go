package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/core/ports"
)

// TierObserver receives per-tier attempt outcomes for metrics.
type TierObserver interface {
	RecordTierAttempt(tier, outcome string)
}

// tierStrategy is one ranked attempt level of the chain. The fallback tier
// tags its results and prefixes labels so generic sentiment output is never
// mistaken for the specialist label vocabulary.
type tierStrategy struct {
	Name        string
	Classifier  ports.Classifier
	Fallback    bool
	LabelPrefix string
}

// FallbackChain tries an explicit ordered list of inference tiers until one
// yields a non-empty normalized result. Backend failures are swallowed and
// logged; they advance the chain, they never propagate.
type FallbackChain struct {
	tiers    []tierStrategy
	observer TierObserver
}

func NewFallbackChain(primary, secondary, tertiary ports.Classifier, observer TierObserver) *FallbackChain {
	tiers := make([]tierStrategy, 0, 3)
	if primary != nil {
		tiers = append(tiers, tierStrategy{Name: "primary", Classifier: primary})
	}
	if secondary != nil {
		tiers = append(tiers, tierStrategy{Name: "secondary", Classifier: secondary})
	}
	if tertiary != nil {
		tiers = append(tiers, tierStrategy{
			Name:        "tertiary",
			Classifier:  tertiary,
			Fallback:    true,
			LabelPrefix: "General Analysis: ",
		})
	}
	return &FallbackChain{tiers: tiers, observer: observer}
}

// Classify returns normalized predictions sorted by descending score, or nil
// when every tier failed or missed.
func (c *FallbackChain) Classify(ctx context.Context, text string) []domain.Prediction {
	for _, tier := range c.tiers {
		if err := ctx.Err(); err != nil {
			return nil
		}

		preds, err := tier.Classifier.Classify(ctx, text)
		if err != nil {
			slog.Warn("tier_attempt_failed", "tier", tier.Name, "error", err)
			c.observe(tier.Name, "error")
			continue
		}
		if len(preds) == 0 {
			c.observe(tier.Name, "miss")
			continue
		}

		c.observe(tier.Name, "hit")
		return tier.decorate(preds)
	}
	return nil
}

func (t tierStrategy) decorate(preds []domain.Prediction) []domain.Prediction {
	out := make([]domain.Prediction, len(preds))
	copy(out, preds)
	for i := range out {
		out[i].IsFallback = t.Fallback
		if t.LabelPrefix != "" {
			out[i].Label = t.LabelPrefix + out[i].Label
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (c *FallbackChain) observe(tier, outcome string) {
	if c.observer != nil {
		c.observer.RecordTierAttempt(tier, outcome)
	}
}
