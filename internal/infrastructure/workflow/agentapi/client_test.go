package agentapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clauseguard/backend/internal/core/domain"
)

func TestCreateSessionReturnsID(t *testing.T) {
	var capturedKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/v1/sessions" {
			http.NotFound(w, r)
			return
		}
		capturedKey = r.Header.Get("apikey")

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["externalUserId"] == "" {
			t.Fatalf("missing externalUserId in payload: %v", payload)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"session-42"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "agent-key", time.Second)
	sessionID, err := client.CreateSession(context.Background(), "agent-research")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if sessionID != "session-42" {
		t.Fatalf("unexpected session id: %q", sessionID)
	}
	if capturedKey != "agent-key" {
		t.Fatalf("unexpected api key header: %q", capturedKey)
	}
}

func TestQueryReturnsAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/v1/sessions/session-42/query" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["query"] != "analyze this clause" {
			t.Fatalf("unexpected query: %v", payload["query"])
		}
		_, _ = w.Write([]byte(`{"data":{"answer":"stage output"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	answer, err := client.Query(context.Background(), "session-42", "agent-research", "analyze this clause")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if answer != "stage output" {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestQueryEmptyAnswerFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"answer":""}}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	_, err := client.Query(context.Background(), "s", "a", "q")
	if !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestCreateSessionHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, "bad-key", time.Second)
	_, err := client.CreateSession(context.Background(), "agent-research")
	if !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
