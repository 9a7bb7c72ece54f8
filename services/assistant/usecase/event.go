package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type eventUseCase struct {
	repo    domain.EventRepo
	TimeOut time.Duration
}

func NewEventUseCase(repo domain.EventRepo, to time.Duration) domain.EventUseCase {
	return &eventUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (eu *eventUseCase) GetSchoolEvents(ctx context.Context) (*[]domain.SchoolEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, eu.TimeOut)
	defer cancel()

	v, err := eu.repo.GetSchoolEvents(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (eu *eventUseCase) CreateEvent(ctx context.Context, payload *domain.SchoolEvent, invitees []string) (*domain.SchoolEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, eu.TimeOut)
	defer cancel()

	v, err := eu.repo.CreateEvent(ctx, payload, invitees)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (eu *eventUseCase) RSVPEvent(ctx context.Context, eventID, studentID string, status domain.RSVPStatus) (*domain.EventParticipation, error) {
	ctx, cancel := context.WithTimeout(ctx, eu.TimeOut)
	defer cancel()

	v, err := eu.repo.RSVPEvent(ctx, eventID, studentID, status)
	if err != nil {
		return nil, err
	}
	return v, nil
}
