package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type familyUseCase struct {
	repo    domain.FamilyRepo
	TimeOut time.Duration
}

func NewFamilyUseCase(repo domain.FamilyRepo, to time.Duration) domain.FamilyUseCase {
	return &familyUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (fu *familyUseCase) GetFamilyMembers(ctx context.Context) (*[]domain.FamilyMember, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.GetFamilyMembers(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *familyUseCase) GetFamilyMember(ctx context.Context, memberID string) (*domain.FamilyMember, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.GetFamilyMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *familyUseCase) UpdateGoal(ctx context.Context, goalID string, payload *domain.GoalUpdatePayload) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.UpdateGoal(ctx, goalID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *familyUseCase) UpdateActionableItem(ctx context.Context, itemID string, payload *domain.ItemUpdatePayload) (*domain.ActionableItem, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.UpdateActionableItem(ctx, itemID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}
