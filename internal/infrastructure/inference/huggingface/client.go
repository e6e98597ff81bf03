package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/infrastructure/inference"
	"github.com/clauseguard/backend/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Client calls one hosted-model inference endpoint. It performs a single
// network call per Invoke with a per-call timeout enforced through context
// cancellation; it never interprets the response body.
type Client struct {
	baseURL    string
	model      string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	guard      *resilience.Guard
}

func New(baseURL, model, token string, timeout time.Duration, guard *resilience.Guard) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		token:      token,
		timeout:    timeout,
		httpClient: &http.Client{},
		guard:      guard,
	}
}

// Invoke sends the text to the model and returns the raw response body.
func (c *Client) Invoke(ctx context.Context, text string, params map[string]any) ([]byte, error) {
	operation := "inference " + c.model

	var raw []byte
	call := func() error {
		var err error
		raw, err = c.post(ctx, operation, text, params)
		return err
	}
	if c.guard != nil {
		if err := c.guard.Execute(operation, call, inference.ClassifyBackendError); err != nil {
			if resilience.IsCircuitOpen(err) {
				return nil, domain.WrapError(domain.ErrBackendUnavailable, operation, err)
			}
			return nil, err
		}
		return raw, nil
	}
	if err := call(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, operation, text string, params map[string]any) ([]byte, error) {
	payload := map[string]any{"inputs": text}
	if len(params) > 0 {
		payload["parameters"] = params
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", operation, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, inference.TranslateTransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.WrapError(domain.ErrBackendUnavailable, operation, inference.NewStatusError(operation, resp))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, inference.TranslateTransportError(operation, err)
	}
	return raw, nil
}

// Classifier adapts a model client to the classification port.
type Classifier struct {
	client *Client
	params map[string]any
}

func NewClassifier(client *Client, params map[string]any) *Classifier {
	return &Classifier{client: client, params: params}
}

func (c *Classifier) Classify(ctx context.Context, text string) ([]domain.Prediction, error) {
	raw, err := c.client.Invoke(ctx, text, c.params)
	if err != nil {
		return nil, err
	}
	return inference.Normalize(raw), nil
}

// Summarizer adapts a summarization model client.
type Summarizer struct {
	client *Client
}

func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	raw, err := s.client.Invoke(ctx, text, nil)
	if err != nil {
		return "", err
	}

	var results []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(raw, &results); err == nil && len(results) > 0 {
		if summary := strings.TrimSpace(results[0].SummaryText); summary != "" {
			return summary, nil
		}
	}

	// Some summarization spaces reply with a bare string.
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && strings.TrimSpace(bare) != "" {
		return strings.TrimSpace(bare), nil
	}
	return "", fmt.Errorf("summarize: unrecognized response shape")
}
