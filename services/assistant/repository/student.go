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

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(database *gorm.DB) domain.StudentRepo {
	return &studentRepository{
		db: database,
	}
}

func (sr *studentRepository) GetAllStudents(ctx context.Context) (*[]domain.StudentOverview, error) {
	var students []domain.Student
	err := sr.db.WithContext(ctx).Preload("Parent").Where("deleted_at IS NULL").Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve students: %w", err)
	}

	overviews := make([]domain.StudentOverview, 0, len(students))
	for _, student := range students {
		ov, err := sr.buildOverview(ctx, student)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, *ov)
	}
	return &overviews, nil
}

func (sr *studentRepository) GetStudent(ctx context.Context, studentID string) (*domain.StudentOverview, error) {
	var student domain.Student
	err := sr.db.WithContext(ctx).Preload("Parent").Where("student_id = ? AND deleted_at IS NULL", studentID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "student", ID: studentID}
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return sr.buildOverview(ctx, student)
}

// buildOverview recomputes the derived sub-ledger views. Nothing here is
// read from stored aggregate columns.
func (sr *studentRepository) buildOverview(ctx context.Context, student domain.Student) (*domain.StudentOverview, error) {
	var records []domain.AttendanceRecord
	err := sr.db.WithContext(ctx).Where("student_id = ?", student.StudentID).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for student %s: %w", student.StudentID, err)
	}

	var fees []domain.FeeRecord
	err = sr.db.WithContext(ctx).Preload("Reminders").Where("student_id = ?", student.StudentID).Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fees for student %s: %w", student.StudentID, err)
	}

	now := time.Now()
	feeViews := make([]domain.FeeView, 0, len(fees))
	for _, fee := range fees {
		feeViews = append(feeViews, domain.FeeView{FeeRecord: fee, Status: fee.Status(now)})
	}

	return &domain.StudentOverview{
		Student:    student,
		Attendance: domain.SummarizeAttendance(records),
		Fees:       feeViews,
	}, nil
}

func (sr *studentRepository) CreateStudent(ctx context.Context, payload *domain.Student) (*domain.Student, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}

	var parent domain.User
	err := sr.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", payload.ParentID).First(&parent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "parent", ID: payload.ParentID}
		}
		return nil, fmt.Errorf("failed to fetch parent: %w", err)
	}

	payload.StudentID = uuid.NewString()
	if err := sr.db.WithContext(ctx).Create(payload).Error; err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return payload, nil
}
