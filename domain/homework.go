package domain

import (
	"context"
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionGraded     SubmissionStatus = "graded"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionInProgress, SubmissionSubmitted, SubmissionGraded:
		return true
	default:
		return false
	}
}

// Terminal reports whether the submission no longer counts toward overdue.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionSubmitted || s == SubmissionGraded
}

// CanTransition enforces the per-student submission machine
// pending -> in_progress -> submitted -> graded. A student may submit
// without first marking in_progress; grading is terminal.
func (s SubmissionStatus) CanTransition(to SubmissionStatus) bool {
	switch s {
	case SubmissionPending:
		return to == SubmissionInProgress || to == SubmissionSubmitted
	case SubmissionInProgress:
		return to == SubmissionSubmitted
	case SubmissionSubmitted:
		return to == SubmissionGraded
	default:
		return false
	}
}

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentOverdue   AssignmentStatus = "overdue"
)

type HomeworkAssignment struct {
	AssignmentID string               `gorm:"primaryKey;type:uuid" json:"assignment_id"`
	Title        string               `gorm:"type:varchar(200);not null" json:"title" valid:"required~Title is required"`
	Description  string               `gorm:"type:text" json:"description"`
	Subject      string               `gorm:"type:varchar(100);not null" json:"subject" valid:"required~Subject is required"`
	Class        string               `gorm:"type:varchar(10);not null;index" json:"class" valid:"required~Class is required"`
	Priority     string               `gorm:"type:varchar(10);default:'medium'" json:"priority" valid:"in(low|medium|high)~Invalid priority,optional"`
	AssignedDate time.Time            `gorm:"not null" json:"assigned_date"`
	DueDate      time.Time            `gorm:"not null" json:"due_date" valid:"required~Due date is required"`
	Submissions  []HomeworkSubmission `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"submissions" valid:"-"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    *time.Time           `gorm:"index" json:"deleted_at,omitempty"`
}

type HomeworkSubmission struct {
	SubmissionID string           `gorm:"primaryKey;type:uuid" json:"submission_id"`
	AssignmentID string           `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_student" json:"assignment_id"`
	StudentID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_student" json:"student_id"`
	Status       SubmissionStatus `gorm:"type:submission_status_enum;not null;default:'pending'" json:"status"`
	SubmittedAt  *time.Time       `json:"submitted_at,omitempty"`
	Files        *string          `gorm:"type:text" json:"files,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	Score        *float64         `json:"score,omitempty"`
	MaxScore     *float64         `json:"max_score,omitempty"`
	Feedback     *string          `gorm:"type:text" json:"feedback,omitempty"`
	GradedAt     *time.Time       `json:"graded_at,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// Overdue is derived, never stored: a non-terminal submission past the due
// date of its assignment.
func (s *HomeworkSubmission) Overdue(dueDate, now time.Time) bool {
	return now.After(dueDate) && !s.Status.Terminal()
}

// Rollup derives the dashboard status for the assignment:
// completed only when every target student has a terminal submission,
// overdue when the due date passed with any submission still open.
func (a *HomeworkAssignment) Rollup(now time.Time) AssignmentStatus {
	if len(a.Submissions) == 0 {
		if now.After(a.DueDate) {
			return AssignmentOverdue
		}
		return AssignmentActive
	}
	allTerminal := true
	for _, sub := range a.Submissions {
		if !sub.Status.Terminal() {
			allTerminal = false
			break
		}
	}
	if allTerminal {
		return AssignmentCompleted
	}
	if now.After(a.DueDate) {
		return AssignmentOverdue
	}
	return AssignmentActive
}

type HomeworkUpdatePayload struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type GradePayload struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Feedback string  `json:"feedback"`
}

type HomeworkView struct {
	HomeworkAssignment
	Status AssignmentStatus `json:"status"`
}

type HomeworkRepo interface {
	CreateHomework(ctx context.Context, payload *HomeworkAssignment, targetStudents []string) (*HomeworkAssignment, error)
	UpdateHomework(ctx context.Context, assignmentID string, payload *HomeworkUpdatePayload) (*HomeworkAssignment, error)
	GetHomework(ctx context.Context, assignmentID string) (*HomeworkView, error)
	GetAllHomework(ctx context.Context) (*[]HomeworkView, error)
	UpdateSubmissionStatus(ctx context.Context, assignmentID, studentID string, status SubmissionStatus) (*HomeworkSubmission, error)
	GradeSubmission(ctx context.Context, assignmentID, studentID string, grade *GradePayload) (*HomeworkSubmission, error)
}

type HomeworkUseCase interface {
	CreateHomework(ctx context.Context, payload *HomeworkAssignment, targetStudents []string) (*HomeworkAssignment, error)
	UpdateHomework(ctx context.Context, assignmentID string, payload *HomeworkUpdatePayload) (*HomeworkAssignment, error)
	GetHomework(ctx context.Context, assignmentID string) (*HomeworkView, error)
	GetAllHomework(ctx context.Context) (*[]HomeworkView, error)
	UpdateSubmissionStatus(ctx context.Context, assignmentID, studentID string, status SubmissionStatus) (*HomeworkSubmission, error)
	GradeSubmission(ctx context.Context, assignmentID, studentID string, grade *GradePayload) (*HomeworkSubmission, error)
}
