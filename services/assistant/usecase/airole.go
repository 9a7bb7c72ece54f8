package usecase

import (
	"context"
	"fmt"
	"time"

	"assistant/config"
	"assistant/domain"
)

type aiRoleUseCase struct {
	repo    domain.AIRoleRepo
	TimeOut time.Duration
}

func NewAIRoleUseCase(repo domain.AIRoleRepo, to time.Duration) domain.AIRoleUseCase {
	return &aiRoleUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (ru *aiRoleUseCase) GetAIRoles(ctx context.Context) (*[]domain.AIRole, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	v, err := ru.repo.GetAIRoles(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateTask stamps the task with the effective autonomy of its role: the
// most restrictive level across the capabilities the task will invoke. A
// task never starts more permissive than its role allows.
func (ru *aiRoleUseCase) CreateTask(ctx context.Context, payload *domain.AITask) (*domain.AITask, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	role, err := ru.repo.GetAIRole(ctx, payload.RoleID)
	if err != nil {
		return nil, err
	}

	effective := domain.EffectiveAutonomy(role.Capabilities)
	if effective.MoreRestrictiveThan(payload.AutonomyLevel) {
		payload.AutonomyLevel = effective
	}
	if payload.Confidence == 0 {
		payload.Confidence = minCapabilityConfidence(role.Capabilities)
	}
	for i := range payload.Steps {
		if payload.Steps[i].Status == "" {
			payload.Steps[i].Status = domain.StepPending
		}
	}

	v, err := ru.repo.CreateTask(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// MakeDecision applies the autonomy policy to a pending task and records
// the outcome.
func (ru *aiRoleUseCase) MakeDecision(ctx context.Context, taskID string, dctx *domain.DecisionContext) (*domain.AIDecision, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	task, err := ru.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.TaskPending {
		return nil, &domain.InvalidTransitionError{Entity: "AI task", From: string(task.Status), To: "decided"}
	}

	role, err := ru.repo.GetAIRole(ctx, task.RoleID)
	if err != nil {
		return nil, err
	}

	effective := domain.EffectiveAutonomy(role.Capabilities)
	if task.AutonomyLevel.MoreRestrictiveThan(effective) {
		effective = task.AutonomyLevel
	}

	threshold := config.GetAutonomyThreshold()
	kind := task.ResolveSteps(effective, threshold)

	decision := &domain.AIDecision{
		TaskID:     taskID,
		Decision:   kind,
		Confidence: task.Confidence,
	}
	now := time.Now()

	switch kind {
	case domain.DecisionAutonomous:
		task.Status = domain.TaskCompleted
		task.CompletedAt = &now
		decision.Reasoning = fmt.Sprintf("autonomy %s with confidence %d >= %d: resolved autonomously", effective, task.Confidence, threshold)

	case domain.DecisionFindProfessional:
		decision.Reasoning = fmt.Sprintf("autonomy %s with confidence %d (threshold %d): flagged for professional review", effective, task.Confidence, threshold)
		ranked := domain.RankProfessionals(role.Network, dctx.Specialization, dctx.Location)
		if len(ranked) > 0 {
			task.ProfessionalID = &ranked[0].ContactID
		}

	case domain.DecisionEscalate:
		ranked := domain.RankProfessionals(role.Network, dctx.Specialization, dctx.Location)
		if len(ranked) == 0 {
			// The task must never fall through to autonomous completion:
			// it stays pending with the escalated marker set.
			task.Escalated = true
			decision.Reasoning = "professional required but no matching contact in network"
			if err := ru.repo.UpdateTask(ctx, task); err != nil {
				return nil, err
			}
			if err := ru.repo.SaveDecision(ctx, decision); err != nil {
				return nil, err
			}
			return nil, &domain.NoProfessionalAvailableError{TaskID: taskID, Specialization: dctx.Specialization}
		}
		task.Status = domain.TaskEscalated
		task.Escalated = true
		task.ProfessionalID = &ranked[0].ContactID
		decision.Reasoning = fmt.Sprintf("professional required: escalated to %s", ranked[0].Name)
	}

	if err := ru.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	if err := ru.repo.SaveDecision(ctx, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

func minCapabilityConfidence(capabilities []domain.AICapability) int {
	if len(capabilities) == 0 {
		return 0
	}
	min := capabilities[0].Confidence
	for _, c := range capabilities[1:] {
		if c.Confidence < min {
			min = c.Confidence
		}
	}
	return min
}
