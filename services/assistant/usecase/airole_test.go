package usecase

import (
	"context"
	"testing"
	"time"

	"assistant/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIRoleRepo struct {
	role      *domain.AIRole
	task      *domain.AITask
	decisions []*domain.AIDecision
}

func (f *fakeAIRoleRepo) GetAIRoles(ctx context.Context) (*[]domain.AIRole, error) {
	return &[]domain.AIRole{*f.role}, nil
}

func (f *fakeAIRoleRepo) GetAIRole(ctx context.Context, roleID string) (*domain.AIRole, error) {
	if f.role == nil || f.role.RoleID != roleID {
		return nil, &domain.NotFoundError{Entity: "AI role", ID: roleID}
	}
	return f.role, nil
}

func (f *fakeAIRoleRepo) CreateTask(ctx context.Context, payload *domain.AITask) (*domain.AITask, error) {
	f.task = payload
	return payload, nil
}

func (f *fakeAIRoleRepo) GetTask(ctx context.Context, taskID string) (*domain.AITask, error) {
	if f.task == nil || f.task.TaskID != taskID {
		return nil, &domain.NotFoundError{Entity: "AI task", ID: taskID}
	}
	return f.task, nil
}

func (f *fakeAIRoleRepo) UpdateTask(ctx context.Context, task *domain.AITask) error {
	f.task = task
	return nil
}

func (f *fakeAIRoleRepo) SaveDecision(ctx context.Context, decision *domain.AIDecision) error {
	f.decisions = append(f.decisions, decision)
	return nil
}

func fullAutonomyRole() *domain.AIRole {
	return &domain.AIRole{
		RoleID: "role-1",
		Name:   "Family Doctor",
		Capabilities: []domain.AICapability{
			{Name: "triage", AutonomyLevel: domain.AutonomyFull, Confidence: 92},
			{Name: "advice", AutonomyLevel: domain.AutonomyFull, Confidence: 88},
		},
	}
}

func TestCreateTaskTightensAutonomy(t *testing.T) {
	repo := &fakeAIRoleRepo{role: fullAutonomyRole()}
	repo.role.Capabilities[1].AutonomyLevel = domain.AutonomyAssisted
	uc := NewAIRoleUseCase(repo, time.Second)

	task, err := uc.CreateTask(context.Background(), &domain.AITask{
		TaskID: "task-1", RoleID: "role-1", MemberID: "member-1",
		AutonomyLevel: domain.AutonomyFull,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AutonomyAssisted, task.AutonomyLevel)
	assert.Equal(t, 88, task.Confidence)
}

func TestMakeDecisionAutonomous(t *testing.T) {
	repo := &fakeAIRoleRepo{
		role: fullAutonomyRole(),
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskPending,
			AutonomyLevel: domain.AutonomyFull, Confidence: 90,
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	decision, err := uc.MakeDecision(context.Background(), "task-1", &domain.DecisionContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionAutonomous, decision.Decision)
	assert.Equal(t, domain.TaskCompleted, repo.task.Status)
	require.NotNil(t, repo.task.CompletedAt)
	require.Len(t, repo.decisions, 1)
}

func TestMakeDecisionEscalates(t *testing.T) {
	role := fullAutonomyRole()
	role.Capabilities[0].AutonomyLevel = domain.AutonomyProfessional
	role.Network = []domain.ProfessionalContact{
		{ContactID: "contact-1", Name: "Dr. Okoye", Specializations: []string{"pediatrics"}, Rating: 4.8},
	}
	repo := &fakeAIRoleRepo{
		role: role,
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskPending,
			AutonomyLevel: domain.AutonomyProfessional, Confidence: 95,
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	decision, err := uc.MakeDecision(context.Background(), "task-1",
		&domain.DecisionContext{Specialization: "pediatrics"})
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionEscalate, decision.Decision)
	assert.Equal(t, domain.TaskEscalated, repo.task.Status)
	assert.True(t, repo.task.Escalated)
	require.NotNil(t, repo.task.ProfessionalID)
	assert.Equal(t, "contact-1", *repo.task.ProfessionalID)
}

func TestMakeDecisionNoProfessionalAvailable(t *testing.T) {
	role := fullAutonomyRole()
	role.Capabilities[0].AutonomyLevel = domain.AutonomyProfessional
	repo := &fakeAIRoleRepo{
		role: role,
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskPending,
			AutonomyLevel: domain.AutonomyProfessional, Confidence: 95,
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	_, err := uc.MakeDecision(context.Background(), "task-1",
		&domain.DecisionContext{Specialization: "pediatrics"})

	var noProf *domain.NoProfessionalAvailableError
	require.ErrorAs(t, err, &noProf)
	// The task must not slip through to autonomous completion.
	assert.Equal(t, domain.TaskPending, repo.task.Status)
	assert.True(t, repo.task.Escalated)
	require.Len(t, repo.decisions, 1)
}

func TestMakeDecisionRejectsNonPendingTask(t *testing.T) {
	repo := &fakeAIRoleRepo{
		role: fullAutonomyRole(),
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskCompleted,
			AutonomyLevel: domain.AutonomyFull, Confidence: 90,
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	_, err := uc.MakeDecision(context.Background(), "task-1", &domain.DecisionContext{})

	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestMakeDecisionAdvancesSteps(t *testing.T) {
	role := fullAutonomyRole()
	role.Network = []domain.ProfessionalContact{
		{ContactID: "contact-1", Name: "Dr. Okoye", Specializations: []string{"pediatrics"}, Rating: 4.8},
	}
	repo := &fakeAIRoleRepo{
		role: role,
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskPending,
			AutonomyLevel: domain.AutonomyFull, Confidence: 90,
			Steps: []domain.AITaskStep{
				{Description: "gather symptoms", Status: domain.StepPending},
				{Description: "book appointment", Status: domain.StepPending, AutonomyLevel: domain.AutonomyProfessional},
			},
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	decision, err := uc.MakeDecision(context.Background(), "task-1",
		&domain.DecisionContext{Specialization: "pediatrics"})
	require.NoError(t, err)

	// The first step runs on its own; the second needs a professional, so
	// the task escalates with the walk parked on that step.
	assert.Equal(t, domain.DecisionEscalate, decision.Decision)
	assert.Equal(t, domain.StepCompleted, repo.task.Steps[0].Status)
	assert.Equal(t, domain.StepBlocked, repo.task.Steps[1].Status)
	assert.Equal(t, domain.TaskEscalated, repo.task.Status)
}

func TestMakeDecisionCompletesAllSteps(t *testing.T) {
	repo := &fakeAIRoleRepo{
		role: fullAutonomyRole(),
		task: &domain.AITask{
			TaskID: "task-1", RoleID: "role-1", Status: domain.TaskPending,
			AutonomyLevel: domain.AutonomyFull, Confidence: 90,
			Steps: []domain.AITaskStep{
				{Description: "draft reminder", Status: domain.StepPending},
				{Description: "send reminder", Status: domain.StepPending},
			},
		},
	}
	uc := NewAIRoleUseCase(repo, time.Second)

	decision, err := uc.MakeDecision(context.Background(), "task-1", &domain.DecisionContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionAutonomous, decision.Decision)
	assert.Equal(t, domain.TaskCompleted, repo.task.Status)
	for _, step := range repo.task.Steps {
		assert.Equal(t, domain.StepCompleted, step.Status)
	}
}
