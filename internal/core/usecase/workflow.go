package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/core/ports"
)

// WorkflowAgents holds the agent identity for each stage of the legal
// workflow.
type WorkflowAgents struct {
	Research  string
	FaultFind string
	Validate  string
	Draft     string
}

// StageObserver receives per-stage outcomes for metrics.
type StageObserver interface {
	RecordWorkflowStage(stage, outcome string)
}

// LegalWorkflowUseCase drives the four sequential stages of the external
// multi-agent clause review: research the clause, find faults, validate the
// findings, draft the revision. One session correlates all stages; a stage
// failure aborts the remainder.
type LegalWorkflowUseCase struct {
	agent    ports.WorkflowAgent
	agents   WorkflowAgents
	observer StageObserver
}

func NewLegalWorkflowUseCase(agent ports.WorkflowAgent, agents WorkflowAgents, observer StageObserver) *LegalWorkflowUseCase {
	return &LegalWorkflowUseCase{agent: agent, agents: agents, observer: observer}
}

func (uc *LegalWorkflowUseCase) Run(ctx context.Context, clause, summary string) (string, error) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "legal workflow", fmt.Errorf("clause is required"))
	}

	sessionID, err := uc.agent.CreateSession(ctx, uc.agents.Research)
	if err != nil {
		return "", domain.WrapError(domain.ErrWorkflowFailed, "create session", err)
	}
	slog.Info("workflow_session_created", "session_id", sessionID)

	research, err := uc.stage(ctx, sessionID, domain.StageResearch, uc.agents.Research,
		researchPrompt(clause, summary))
	if err != nil {
		return "", err
	}

	faults, err := uc.stage(ctx, sessionID, domain.StageFaultFind, uc.agents.FaultFind,
		faultFindPrompt(clause, summary, research))
	if err != nil {
		return "", err
	}

	validation, err := uc.stage(ctx, sessionID, domain.StageValidate, uc.agents.Validate,
		validatePrompt(clause, summary, faults))
	if err != nil {
		return "", err
	}

	draft, err := uc.stage(ctx, sessionID, domain.StageDraft, uc.agents.Draft,
		draftPrompt(clause, summary, faults, validation))
	if err != nil {
		return "", err
	}
	return draft, nil
}

func (uc *LegalWorkflowUseCase) stage(ctx context.Context, sessionID string, stage domain.WorkflowStage, agentID, prompt string) (string, error) {
	output, err := uc.agent.Query(ctx, sessionID, agentID, prompt)
	if err != nil {
		uc.observe(stage, "error")
		slog.Warn("workflow_stage_failed", "stage", string(stage), "error", err)
		return "", domain.WrapError(domain.ErrWorkflowFailed, "stage "+string(stage), err)
	}
	uc.observe(stage, "ok")
	slog.Info("workflow_stage", "stage", string(stage), "output_chars", len(output))
	return output, nil
}

func (uc *LegalWorkflowUseCase) observe(stage domain.WorkflowStage, outcome string) {
	if uc.observer != nil {
		uc.observer.RecordWorkflowStage(string(stage), outcome)
	}
}

// FallbackDraft is the canned substitute callers may return to end users
// when the workflow fails: the original clause with an appended note.
func FallbackDraft(clause string) string {
	return strings.TrimSpace(clause) +
		"\n\n[Note: automated legal review is temporarily unavailable. The clause above is unchanged; please retry later for a revised draft.]"
}

func researchPrompt(clause, summary string) string {
	return fmt.Sprintf(
		"Research the following contract clause and identify the governing legal context.\n\nClause:\n%s\n\nDocument summary:\n%s",
		clause, summary)
}

func faultFindPrompt(clause, summary, research string) string {
	return fmt.Sprintf(
		"Identify faults, risks and ambiguities in the clause below.\n\nClause:\n%s\n\nDocument summary:\n%s\n\nResearch findings:\n%s",
		clause, summary, research)
}

func validatePrompt(clause, summary, faults string) string {
	return fmt.Sprintf(
		"Validate the identified faults against the clause. Discard findings that do not hold.\n\nClause:\n%s\n\nDocument summary:\n%s\n\nIdentified faults:\n%s",
		clause, summary, faults)
}

func draftPrompt(clause, summary, faults, validation string) string {
	return fmt.Sprintf(
		"Draft a revised version of the clause that resolves the validated faults. Return only the revised clause.\n\nClause:\n%s\n\nDocument summary:\n%s\n\nIdentified faults:\n%s\n\nValidation notes:\n%s",
		clause, summary, faults, validation)
}
