package gradio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clauseguard/backend/internal/core/domain"
)

func newSpaceServer(t *testing.T, streamBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /gradio_api/call/analyze_clause", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Data []string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Data) != 1 {
			t.Fatalf("unexpected submit payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"event_id":"ev-123"}`))
	})
	mux.HandleFunc("GET /gradio_api/call/analyze_clause/ev-123", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(streamBody))
	})
	return httptest.NewServer(mux)
}

func TestInvokeReturnsCompleteEventData(t *testing.T) {
	server := newSpaceServer(t, "event: complete\ndata: [[{\"label\":\"Indemnification\",\"score\":0.81}]]\n\n")
	defer server.Close()

	client := New(server.URL, "analyze_clause", time.Second, nil)
	raw, err := client.Invoke(context.Background(), "clause text")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	classifier := NewClassifier(client)
	preds, err := classifier.Classify(context.Background(), "clause text")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(preds) != 1 || preds[0].Label != "Indemnification" {
		t.Fatalf("unexpected predictions: %v (raw %s)", preds, raw)
	}
}

func TestInvokeErrorEvent(t *testing.T) {
	server := newSpaceServer(t, "event: error\ndata: \"queue full\"\n\n")
	defer server.Close()

	client := New(server.URL, "analyze_clause", time.Second, nil)
	_, err := client.Invoke(context.Background(), "clause text")
	if !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestInvokeStreamWithoutCompleteEvent(t *testing.T) {
	server := newSpaceServer(t, "event: heartbeat\ndata: null\n\n")
	defer server.Close()

	client := New(server.URL, "analyze_clause", time.Second, nil)
	_, err := client.Invoke(context.Background(), "clause text")
	if !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestInvokeSubmitFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "space asleep", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "analyze_clause", time.Second, nil)
	_, err := client.Invoke(context.Background(), "clause text")
	if !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
