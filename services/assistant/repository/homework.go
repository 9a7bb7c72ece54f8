package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant/domain"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type homeworkRepository struct {
	db *gorm.DB
}

func NewHomeworkRepository(database *gorm.DB) domain.HomeworkRepo {
	return &homeworkRepository{
		db: database,
	}
}

// CreateHomework creates the assignment plus one pending submission per
// target student. With no explicit targets every student in the class is
// enrolled.
func (hr *homeworkRepository) CreateHomework(ctx context.Context, payload *domain.HomeworkAssignment, targetStudents []string) (*domain.HomeworkAssignment, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}

	if len(targetStudents) == 0 {
		var students []domain.Student
		err := hr.db.WithContext(ctx).Where("class = ? AND deleted_at IS NULL", payload.Class).Find(&students).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve class students: %w", err)
		}
		for _, s := range students {
			targetStudents = append(targetStudents, s.StudentID)
		}
	}

	payload.AssignmentID = uuid.NewString()
	if payload.AssignedDate.IsZero() {
		payload.AssignedDate = time.Now()
	}
	if payload.Priority == "" {
		payload.Priority = "medium"
	}

	tx := hr.db.WithContext(ctx).Begin()
	if err := tx.Create(payload).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create homework assignment: %w", err)
	}
	for _, studentID := range targetStudents {
		submission := domain.HomeworkSubmission{
			SubmissionID: uuid.NewString(),
			AssignmentID: payload.AssignmentID,
			StudentID:    studentID,
			Status:       domain.SubmissionPending,
		}
		if err := tx.Create(&submission).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to enroll student %s: %w", studentID, err)
		}
		payload.Submissions = append(payload.Submissions, submission)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit homework creation: %w", err)
	}
	return payload, nil
}

func (hr *homeworkRepository) UpdateHomework(ctx context.Context, assignmentID string, payload *domain.HomeworkUpdatePayload) (*domain.HomeworkAssignment, error) {
	var assignment domain.HomeworkAssignment
	err := hr.db.WithContext(ctx).Where("assignment_id = ? AND deleted_at IS NULL", assignmentID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "homework assignment", ID: assignmentID}
		}
		return nil, fmt.Errorf("failed to fetch homework assignment: %w", err)
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.Priority != nil {
		assignment.Priority = *payload.Priority
	}
	if payload.DueDate != nil {
		assignment.DueDate = *payload.DueDate
	}

	if err := hr.db.WithContext(ctx).Save(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to update homework assignment: %w", err)
	}
	return &assignment, nil
}

func (hr *homeworkRepository) GetHomework(ctx context.Context, assignmentID string) (*domain.HomeworkView, error) {
	var assignment domain.HomeworkAssignment
	err := hr.db.WithContext(ctx).Preload("Submissions").Where("assignment_id = ? AND deleted_at IS NULL", assignmentID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "homework assignment", ID: assignmentID}
		}
		return nil, fmt.Errorf("failed to fetch homework assignment: %w", err)
	}
	return &domain.HomeworkView{HomeworkAssignment: assignment, Status: assignment.Rollup(time.Now())}, nil
}

func (hr *homeworkRepository) GetAllHomework(ctx context.Context) (*[]domain.HomeworkView, error) {
	var assignments []domain.HomeworkAssignment
	err := hr.db.WithContext(ctx).Preload("Submissions").Where("deleted_at IS NULL").Order("due_date ASC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve homework assignments: %w", err)
	}

	now := time.Now()
	views := make([]domain.HomeworkView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, domain.HomeworkView{HomeworkAssignment: a, Status: a.Rollup(now)})
	}
	return &views, nil
}

func (hr *homeworkRepository) UpdateSubmissionStatus(ctx context.Context, assignmentID, studentID string, status domain.SubmissionStatus) (*domain.HomeworkSubmission, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid submission status: %s", status)
	}

	unlock := studentLocks.lock(studentID)
	defer unlock()

	submission, err := hr.fetchSubmission(ctx, assignmentID, studentID)
	if err != nil {
		return nil, err
	}

	if !submission.Status.CanTransition(status) {
		return nil, &domain.InvalidTransitionError{Entity: "homework submission", From: string(submission.Status), To: string(status)}
	}

	submission.Status = status
	if status == domain.SubmissionSubmitted {
		now := time.Now()
		submission.SubmittedAt = &now
	}
	if err := hr.db.WithContext(ctx).Save(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	return submission, nil
}

// GradeSubmission is terminal for one student's submission and leaves every
// other submission of the assignment untouched.
func (hr *homeworkRepository) GradeSubmission(ctx context.Context, assignmentID, studentID string, grade *domain.GradePayload) (*domain.HomeworkSubmission, error) {
	unlock := studentLocks.lock(studentID)
	defer unlock()

	submission, err := hr.fetchSubmission(ctx, assignmentID, studentID)
	if err != nil {
		return nil, err
	}

	if !submission.Status.CanTransition(domain.SubmissionGraded) {
		return nil, &domain.InvalidTransitionError{Entity: "homework submission", From: string(submission.Status), To: string(domain.SubmissionGraded)}
	}

	now := time.Now()
	submission.Status = domain.SubmissionGraded
	submission.Score = &grade.Score
	submission.MaxScore = &grade.MaxScore
	submission.Feedback = &grade.Feedback
	submission.GradedAt = &now

	if err := hr.db.WithContext(ctx).Save(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}
	return submission, nil
}

func (hr *homeworkRepository) fetchSubmission(ctx context.Context, assignmentID, studentID string) (*domain.HomeworkSubmission, error) {
	var submission domain.HomeworkSubmission
	err := hr.db.WithContext(ctx).Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "homework submission", ID: assignmentID + "/" + studentID}
		}
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}
	return &submission, nil
}
