package repository

import (
	"context"
	"errors"
	"fmt"

	"assistant/domain"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type aiRoleRepository struct {
	db *gorm.DB
}

func NewAIRoleRepository(database *gorm.DB) domain.AIRoleRepo {
	return &aiRoleRepository{
		db: database,
	}
}

func (rr *aiRoleRepository) GetAIRoles(ctx context.Context) (*[]domain.AIRole, error) {
	var roles []domain.AIRole
	err := rr.db.WithContext(ctx).Preload("Capabilities").Preload("Network").Where("deleted_at IS NULL").Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve AI roles: %w", err)
	}
	return &roles, nil
}

func (rr *aiRoleRepository) GetAIRole(ctx context.Context, roleID string) (*domain.AIRole, error) {
	var role domain.AIRole
	err := rr.db.WithContext(ctx).Preload("Capabilities").Preload("Network").Where("role_id = ? AND deleted_at IS NULL", roleID).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "AI role", ID: roleID}
		}
		return nil, fmt.Errorf("failed to fetch AI role: %w", err)
	}
	return &role, nil
}

func (rr *aiRoleRepository) CreateTask(ctx context.Context, payload *domain.AITask) (*domain.AITask, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}

	var member domain.FamilyMember
	err := rr.db.WithContext(ctx).Where("member_id = ? AND deleted_at IS NULL", payload.MemberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "family member", ID: payload.MemberID}
		}
		return nil, fmt.Errorf("failed to fetch family member: %w", err)
	}

	payload.TaskID = uuid.NewString()
	payload.Status = domain.TaskPending
	if err := rr.db.WithContext(ctx).Create(payload).Error; err != nil {
		return nil, fmt.Errorf("failed to create AI task: %w", err)
	}
	return payload, nil
}

func (rr *aiRoleRepository) GetTask(ctx context.Context, taskID string) (*domain.AITask, error) {
	var task domain.AITask
	err := rr.db.WithContext(ctx).Where("task_id = ?", taskID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "AI task", ID: taskID}
		}
		return nil, fmt.Errorf("failed to fetch AI task: %w", err)
	}
	return &task, nil
}

func (rr *aiRoleRepository) UpdateTask(ctx context.Context, task *domain.AITask) error {
	if err := rr.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update AI task: %w", err)
	}
	return nil
}

func (rr *aiRoleRepository) SaveDecision(ctx context.Context, decision *domain.AIDecision) error {
	decision.DecisionID = uuid.NewString()
	if err := rr.db.WithContext(ctx).Create(decision).Error; err != nil {
		return fmt.Errorf("failed to save AI decision: %w", err)
	}
	return nil
}
