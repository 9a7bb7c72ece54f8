package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type studentUseCase struct {
	repo    domain.StudentRepo
	TimeOut time.Duration
}

func NewStudentUseCase(repo domain.StudentRepo, to time.Duration) domain.StudentUseCase {
	return &studentUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (su *studentUseCase) GetAllStudents(ctx context.Context) (*[]domain.StudentOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	v, err := su.repo.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (su *studentUseCase) GetStudent(ctx context.Context, studentID string) (*domain.StudentOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	v, err := su.repo.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (su *studentUseCase) CreateStudent(ctx context.Context, payload *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	v, err := su.repo.CreateStudent(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}
