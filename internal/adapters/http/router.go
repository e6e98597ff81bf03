package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/core/ports"
	"github.com/clauseguard/backend/internal/core/usecase"
)

// pipelineObserver receives document-pipeline outcomes for metrics.
type pipelineObserver interface {
	RecordDocumentAnalysis(chunkCount int, err error)
	RecordSummary(available bool)
}

type RouterConfig struct {
	MaxUploadBytes int64
	RateLimitRPS   int
	RateLimitBurst int
	MaxConcurrent  int
}

type Router struct {
	analyzeUC  ports.DocumentAnalyzer
	predictUC  ports.TextPredictor
	summaryUC  ports.SummaryService
	workflowUC ports.WorkflowRunner
	users      ports.UserStore

	cfg        RouterConfig
	observer   pipelineObserver
	instrument func(http.Handler) http.Handler
}

func NewRouter(
	analyzeUC ports.DocumentAnalyzer,
	predictUC ports.TextPredictor,
	summaryUC ports.SummaryService,
	workflowUC ports.WorkflowRunner,
	users ports.UserStore,
	cfg RouterConfig,
	observer pipelineObserver,
	instrument func(http.Handler) http.Handler,
) *Router {
	return &Router{
		analyzeUC:  analyzeUC,
		predictUC:  predictUC,
		summaryUC:  summaryUC,
		workflowUC: workflowUC,
		users:      users,
		cfg:        cfg,
		observer:   observer,
		instrument: instrument,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("POST /api/process-document", rt.processDocument)
	mux.HandleFunc("POST /api/predict", rt.predict)
	mux.HandleFunc("POST /api/legal-analysis", rt.legalAnalysis)
	mux.HandleFunc("POST /api/summarize", rt.summarize)
	mux.HandleFunc("POST /api/login", rt.login)
	mux.HandleFunc("POST /api/signup", rt.signup)
	mux.HandleFunc("POST /api/logout", rt.logout)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.MaxConcurrent, 100*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	if rt.instrument != nil {
		handler = rt.instrument(handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) processDocument(w http.ResponseWriter, r *http.Request) {
	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	}

	file, fileHeader, err := r.FormFile("document")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeFailure(w, http.StatusBadRequest, "The uploaded file is too large.")
			return
		}
		writeFailure(w, http.StatusBadRequest, "Multipart field 'document' is required.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "The upload could not be read.")
		return
	}

	analysis, err := rt.analyzeUC.AnalyzeDocument(r.Context(), data, fileHeader.Header.Get("Content-Type"))
	if rt.observer != nil {
		chunkCount := 0
		if analysis != nil {
			chunkCount = len(analysis.Chunks)
		}
		rt.observer.RecordDocumentAnalysis(chunkCount, err)
		if err == nil {
			rt.observer.RecordSummary(analysis.Summary != "" && analysis.Summary != usecase.SummaryNotAvailable)
		}
	}
	if err != nil {
		slog.Warn("process_document_failed",
			"request_id", requestIDFromContext(r.Context()),
			"filename", fileHeader.Filename,
			"error", err,
		)
		writeFailure(w, mapErrorToHTTPStatus(err), clientMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, processDocumentResponse{
		Success:          true,
		Message:          "Document processed successfully.",
		DocumentAnalysis: analysis,
	})
}

type processDocumentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*domain.DocumentAnalysis
}

func (rt *Router) predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	response, err := rt.predictUC.Predict(r.Context(), req.Text)
	if err != nil {
		writeFailure(w, mapErrorToHTTPStatus(err), clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": response,
	})
}

func (rt *Router) legalAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Clause string `json:"clause"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.Clause) == "" {
		writeFailure(w, http.StatusBadRequest, "Clause is required.")
		return
	}

	summary := ""
	if rt.summaryUC != nil {
		summary = rt.summaryUC.Summarize(r.Context(), req.Clause)
		if summary == usecase.SummaryNotAvailable {
			summary = ""
		}
	}

	result, err := rt.workflowUC.Run(r.Context(), req.Clause, summary)
	if err != nil {
		// Workflow failures degrade to the canned draft rather than an
		// error response; the UI always gets something to show.
		slog.Warn("legal_analysis_degraded",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		result = usecase.FallbackDraft(req.Clause)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (rt *Router) summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeFailure(w, http.StatusBadRequest, "Text is required.")
		return
	}

	summary := rt.summaryUC.Summarize(r.Context(), req.Text)
	if rt.observer != nil {
		rt.observer.RecordSummary(summary != usecase.SummaryNotAvailable)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
