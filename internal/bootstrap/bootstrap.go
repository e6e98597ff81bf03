package bootstrap

import (
	"time"

	"github.com/clauseguard/backend/internal/config"
	"github.com/clauseguard/backend/internal/core/ports"
	"github.com/clauseguard/backend/internal/core/usecase"
	"github.com/clauseguard/backend/internal/infrastructure/chunking"
	"github.com/clauseguard/backend/internal/infrastructure/extractor/document"
	"github.com/clauseguard/backend/internal/infrastructure/inference/gradio"
	"github.com/clauseguard/backend/internal/infrastructure/inference/huggingface"
	"github.com/clauseguard/backend/internal/infrastructure/resilience"
	"github.com/clauseguard/backend/internal/infrastructure/userstore/memory"
	"github.com/clauseguard/backend/internal/infrastructure/workflow/agentapi"
	"github.com/clauseguard/backend/internal/observability/metrics"
)

// App wires the full object graph: extractors, the three inference tiers
// behind the fallback chain, the workflow client and the HTTP use cases.
type App struct {
	Config     config.Config
	Metrics    *metrics.HTTPServerMetrics
	SvcMetrics *metrics.ServiceMetrics

	AnalyzeUC  ports.DocumentAnalyzer
	PredictUC  ports.TextPredictor
	SummaryUC  ports.SummaryService
	WorkflowUC ports.WorkflowRunner
	Users      ports.UserStore
}

func New(cfg config.Config, service string) *App {
	httpMetrics := metrics.NewHTTPServerMetrics(service)
	svcMetrics := httpMetrics.ForService(service)

	guard := resilience.NewGuard(resilience.Config{
		BreakerEnabled:          cfg.BreakerEnabled,
		BreakerMinRequests:      uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio:     cfg.BreakerFailureRatio,
		BreakerOpenTimeout:      time.Duration(cfg.BreakerOpenTimeoutSecs) * time.Second,
		BreakerHalfOpenMaxCalls: uint32(cfg.BreakerHalfOpenMaxCalls),
	})

	primaryClient := huggingface.New(
		cfg.HFInferenceBaseURL,
		cfg.HFPrimaryModel,
		cfg.HFToken,
		time.Duration(cfg.HFTimeoutSeconds)*time.Second,
		guard,
	)
	primary := huggingface.NewClassifier(primaryClient, nil)

	var secondary ports.Classifier
	if cfg.SpaceBaseURL != "" {
		spaceClient := gradio.New(
			cfg.SpaceBaseURL,
			cfg.SpaceFn,
			time.Duration(cfg.SpaceTimeoutSeconds)*time.Second,
			guard,
		)
		secondary = gradio.NewClassifier(spaceClient)
	}

	sentimentClient := huggingface.New(
		cfg.HFInferenceBaseURL,
		cfg.HFSentimentModel,
		cfg.HFToken,
		time.Duration(cfg.SentimentTimeoutSeconds)*time.Second,
		guard,
	)
	tertiary := huggingface.NewClassifier(sentimentClient, nil)

	chain := usecase.NewFallbackChain(primary, secondary, tertiary, svcMetrics)

	summaryClient := huggingface.New(
		cfg.HFInferenceBaseURL,
		cfg.HFSummaryModel,
		cfg.HFToken,
		time.Duration(cfg.SummaryTimeoutSeconds)*time.Second,
		guard,
	)
	summaryUC := usecase.NewSummarizeUseCase(huggingface.NewSummarizer(summaryClient))

	extractor := document.NewExtractor()
	chunker := chunking.NewSentenceSplitter(cfg.ChunkMaxChars)
	analyzeUC := usecase.NewAnalyzeDocumentUseCase(extractor, chunker, chain, summaryUC)
	predictUC := usecase.NewPredictUseCase(chain, summaryUC)

	agentClient := agentapi.New(
		cfg.AgentAPIBaseURL,
		cfg.AgentAPIKey,
		time.Duration(cfg.AgentTimeoutSeconds)*time.Second,
	)
	workflowUC := usecase.NewLegalWorkflowUseCase(agentClient, usecase.WorkflowAgents{
		Research:  cfg.AgentIDResearch,
		FaultFind: cfg.AgentIDFaultFind,
		Validate:  cfg.AgentIDValidate,
		Draft:     cfg.AgentIDDraft,
	}, svcMetrics)

	return &App{
		Config:     cfg,
		Metrics:    httpMetrics,
		SvcMetrics: svcMetrics,
		AnalyzeUC:  analyzeUC,
		PredictUC:  predictUC,
		SummaryUC:  summaryUC,
		WorkflowUC: workflowUC,
		Users:      memory.New(),
	}
}
