package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/infrastructure/inference"
)

// Client talks to the external multi-agent chat API. Each workflow
// invocation creates one session; every stage queries that session with a
// different agent identity.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (c *Client) CreateSession(ctx context.Context, agentID string) (string, error) {
	payload := map[string]any{
		"agentIds":       []string{agentID},
		"externalUserId": uuid.NewString(),
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/chat/v1/sessions", payload, &created, "create session"); err != nil {
		return "", err
	}
	if created.Data.ID == "" {
		return "", domain.WrapError(domain.ErrBackendUnavailable, "create session",
			fmt.Errorf("agent api did not return a session id"))
	}
	return created.Data.ID, nil
}

func (c *Client) Query(ctx context.Context, sessionID, agentID, prompt string) (string, error) {
	payload := map[string]any{
		"endpointId":   agentID,
		"agentIds":     []string{agentID},
		"query":        prompt,
		"responseMode": "sync",
	}

	var answered struct {
		Data struct {
			Answer string `json:"answer"`
		} `json:"data"`
	}
	operation := "query session"
	if err := c.postJSON(ctx, "/chat/v1/sessions/"+sessionID+"/query", payload, &answered, operation); err != nil {
		return "", err
	}
	if strings.TrimSpace(answered.Data.Answer) == "" {
		return "", domain.WrapError(domain.ErrBackendUnavailable, operation,
			fmt.Errorf("agent api returned an empty answer"))
	}
	return answered.Data.Answer, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return inference.TranslateTransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.WrapError(domain.ErrBackendUnavailable, operation, inference.NewStatusError(operation, resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return inference.TranslateTransportError(operation, err)
	}
	return nil
}
