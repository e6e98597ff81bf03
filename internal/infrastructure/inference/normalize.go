package inference

import (
	"encoding/json"
	"strings"

	"github.com/clauseguard/backend/internal/core/domain"
)

// Normalize maps a raw backend body onto the canonical prediction list. The
// backends disagree on shape, so decoding walks a closed set of variants in
// preference order: structured {label,score} objects, then tuple arrays, then
// bare strings. An unrecognized body yields nil — a miss, never an error.
func Normalize(raw []byte) []domain.Prediction {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return nil
	}

	if !json.Valid([]byte(body)) {
		// Non-JSON text bodies count as a single bare-string label.
		return []domain.Prediction{{Label: body, Score: 1.0}}
	}
	return normalizeValue(json.RawMessage(body))
}

func normalizeValue(raw json.RawMessage) []domain.Prediction {
	if preds := decodeObjectList(raw); preds != nil {
		return preds
	}
	if preds := decodeNestedObjectList(raw); preds != nil {
		return preds
	}
	if preds := decodePredictionWrapper(raw); preds != nil {
		return preds
	}
	if preds := decodeTupleList(raw); preds != nil {
		return preds
	}
	if preds := decodeStringList(raw); preds != nil {
		return preds
	}
	if preds := decodeBareString(raw); preds != nil {
		return preds
	}
	return nil
}

// [{"label": "...", "score": 0.9}, ...]
func decodeObjectList(raw json.RawMessage) []domain.Prediction {
	var items []struct {
		Label string   `json:"label"`
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	preds := make([]domain.Prediction, 0, len(items))
	for _, item := range items {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			continue
		}
		score := 1.0
		if item.Score != nil {
			score = clampScore(*item.Score)
		}
		preds = append(preds, domain.Prediction{Label: label, Score: score})
	}
	if len(preds) == 0 {
		return nil
	}
	return preds
}

// [[{"label": "...", "score": 0.9}, ...]] — one inner list per input.
func decodeNestedObjectList(raw json.RawMessage) []domain.Prediction {
	var outer []json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil
	}

	var preds []domain.Prediction
	for _, inner := range outer {
		preds = append(preds, decodeObjectList(inner)...)
	}
	if len(preds) == 0 {
		return nil
	}
	return preds
}

// {"prediction": <any recognized shape>}
func decodePredictionWrapper(raw json.RawMessage) []domain.Prediction {
	var wrapper struct {
		Prediction json.RawMessage `json:"prediction"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil || len(wrapper.Prediction) == 0 {
		return nil
	}
	return normalizeValue(wrapper.Prediction)
}

// [["label", 0.9], ...]
func decodeTupleList(raw json.RawMessage) []domain.Prediction {
	var items [][]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	preds := make([]domain.Prediction, 0, len(items))
	for _, tuple := range items {
		if len(tuple) != 2 {
			return nil
		}
		var label string
		var score float64
		if err := json.Unmarshal(tuple[0], &label); err != nil {
			return nil
		}
		if err := json.Unmarshal(tuple[1], &score); err != nil {
			return nil
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		preds = append(preds, domain.Prediction{Label: label, Score: clampScore(score)})
	}
	if len(preds) == 0 {
		return nil
	}
	return preds
}

// ["label a", "label b"]
func decodeStringList(raw json.RawMessage) []domain.Prediction {
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	preds := make([]domain.Prediction, 0, len(items))
	for _, item := range items {
		label := strings.TrimSpace(item)
		if label == "" {
			continue
		}
		preds = append(preds, domain.Prediction{Label: label, Score: 1.0})
	}
	if len(preds) == 0 {
		return nil
	}
	return preds
}

// "label"
func decodeBareString(raw json.RawMessage) []domain.Prediction {
	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return nil
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	return []domain.Prediction{{Label: label, Score: 1.0}}
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
