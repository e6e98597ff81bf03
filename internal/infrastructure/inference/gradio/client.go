package gradio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/infrastructure/inference"
	"github.com/clauseguard/backend/internal/infrastructure/resilience"
)

// Client calls a hosted-space prediction endpoint. Spaces expose a two-step
// API: POST the inputs to /gradio_api/call/<fn> for an event id, then read
// the event stream for that id until the complete event delivers the output
// payload.
type Client struct {
	baseURL    string
	fn         string
	timeout    time.Duration
	httpClient *http.Client
	guard      *resilience.Guard
}

func New(baseURL, fn string, timeout time.Duration, guard *resilience.Guard) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		fn:         fn,
		timeout:    timeout,
		httpClient: &http.Client{},
		guard:      guard,
	}
}

// Invoke runs one prediction and returns the raw output payload.
func (c *Client) Invoke(ctx context.Context, text string) ([]byte, error) {
	operation := "space " + c.fn

	var raw []byte
	call := func() error {
		var err error
		raw, err = c.predict(ctx, operation, text)
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

func (c *Client) predict(ctx context.Context, operation, text string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	eventID, err := c.submit(callCtx, operation, text)
	if err != nil {
		return nil, err
	}
	return c.collect(callCtx, operation, eventID)
}

func (c *Client) submit(ctx context.Context, operation, text string) (string, error) {
	body, err := json.Marshal(map[string]any{"data": []string{text}})
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callURL(""), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", inference.TranslateTransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.WrapError(domain.ErrBackendUnavailable, operation, inference.NewStatusError(operation, resp))
	}

	var submitted struct {
		EventID string `json:"event_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", inference.TranslateTransportError(operation, err)
	}
	if submitted.EventID == "" {
		return "", domain.WrapError(domain.ErrBackendUnavailable, operation,
			fmt.Errorf("space did not return an event id"))
	}
	return submitted.EventID, nil
}

// collect reads the event stream until the complete (or error) event.
func (c *Client) collect(ctx context.Context, operation, eventID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.callURL(eventID), nil)
	if err != nil {
		return nil, fmt.Errorf("create %s result request: %w", operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, inference.TranslateTransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.WrapError(domain.ErrBackendUnavailable, operation, inference.NewStatusError(operation, resp))
	}

	var event string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			switch event {
			case "complete":
				return []byte(data), nil
			case "error":
				return nil, domain.WrapError(domain.ErrBackendUnavailable, operation,
					fmt.Errorf("space error event: %s", data))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, inference.TranslateTransportError(operation, err)
	}
	return nil, domain.WrapError(domain.ErrBackendUnavailable, operation,
		fmt.Errorf("event stream ended without a complete event"))
}

func (c *Client) callURL(eventID string) string {
	url := c.baseURL + "/gradio_api/call/" + c.fn
	if eventID != "" {
		url += "/" + eventID
	}
	return url
}

// Classifier adapts a space client to the classification port.
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, text string) ([]domain.Prediction, error) {
	raw, err := c.client.Invoke(ctx, text)
	if err != nil {
		return nil, err
	}
	return inference.Normalize(raw), nil
}
