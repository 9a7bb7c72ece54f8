package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type homeworkUseCase struct {
	repo    domain.HomeworkRepo
	TimeOut time.Duration
}

func NewHomeworkUseCase(repo domain.HomeworkRepo, to time.Duration) domain.HomeworkUseCase {
	return &homeworkUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (hu *homeworkUseCase) CreateHomework(ctx context.Context, payload *domain.HomeworkAssignment, targetStudents []string) (*domain.HomeworkAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.CreateHomework(ctx, payload, targetStudents)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (hu *homeworkUseCase) UpdateHomework(ctx context.Context, assignmentID string, payload *domain.HomeworkUpdatePayload) (*domain.HomeworkAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.UpdateHomework(ctx, assignmentID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (hu *homeworkUseCase) GetHomework(ctx context.Context, assignmentID string) (*domain.HomeworkView, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.GetHomework(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (hu *homeworkUseCase) GetAllHomework(ctx context.Context) (*[]domain.HomeworkView, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.GetAllHomework(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (hu *homeworkUseCase) UpdateSubmissionStatus(ctx context.Context, assignmentID, studentID string, status domain.SubmissionStatus) (*domain.HomeworkSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.UpdateSubmissionStatus(ctx, assignmentID, studentID, status)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (hu *homeworkUseCase) GradeSubmission(ctx context.Context, assignmentID, studentID string, grade *domain.GradePayload) (*domain.HomeworkSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	v, err := hu.repo.GradeSubmission(ctx, assignmentID, studentID, grade)
	if err != nil {
		return nil, err
	}
	return v, nil
}
