package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant/domain"

	"gorm.io/gorm"
)

type familyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(database *gorm.DB) domain.FamilyRepo {
	return &familyRepository{
		db: database,
	}
}

func (fr *familyRepository) GetFamilyMembers(ctx context.Context) (*[]domain.FamilyMember, error) {
	var members []domain.FamilyMember
	err := fr.db.WithContext(ctx).Preload("Goals").Preload("Items").Where("deleted_at IS NULL").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve family members: %w", err)
	}
	return &members, nil
}

func (fr *familyRepository) GetFamilyMember(ctx context.Context, memberID string) (*domain.FamilyMember, error) {
	var member domain.FamilyMember
	err := fr.db.WithContext(ctx).Preload("Goals").Preload("Items").Where("member_id = ? AND deleted_at IS NULL", memberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "family member", ID: memberID}
		}
		return nil, fmt.Errorf("failed to fetch family member: %w", err)
	}
	return &member, nil
}

func (fr *familyRepository) UpdateGoal(ctx context.Context, goalID string, payload *domain.GoalUpdatePayload) (*domain.Goal, error) {
	var goal domain.Goal
	err := fr.db.WithContext(ctx).Where("goal_id = ?", goalID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "goal", ID: goalID}
		}
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}

	if payload.Title != nil {
		goal.Title = *payload.Title
	}
	if payload.Priority != nil {
		goal.Priority = *payload.Priority
	}
	if payload.Status != nil {
		goal.Status = *payload.Status
	}
	if payload.Progress != nil {
		goal.Progress = *payload.Progress
	}
	if payload.Milestones != nil {
		now := time.Now()
		for i := range payload.Milestones {
			if payload.Milestones[i].Completed && payload.Milestones[i].CompletedAt == nil {
				payload.Milestones[i].CompletedAt = &now
			}
		}
		goal.Milestones = payload.Milestones
	}
	goal.ClampProgress()

	if err := fr.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &goal, nil
}

func (fr *familyRepository) UpdateActionableItem(ctx context.Context, itemID string, payload *domain.ItemUpdatePayload) (*domain.ActionableItem, error) {
	var item domain.ActionableItem
	err := fr.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "actionable item", ID: itemID}
		}
		return nil, fmt.Errorf("failed to fetch actionable item: %w", err)
	}

	if payload.Title != nil {
		item.Title = *payload.Title
	}
	if payload.Priority != nil {
		item.Priority = *payload.Priority
	}
	if payload.Status != nil {
		item.Status = *payload.Status
	}
	if payload.DueDate != nil {
		item.DueDate = payload.DueDate
	}
	if payload.AssignedRole != nil {
		item.AssignedRole = payload.AssignedRole
	}

	if err := fr.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update actionable item: %w", err)
	}
	return &item, nil
}
