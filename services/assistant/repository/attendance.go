package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"assistant/config"
	"assistant/domain"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(database *gorm.DB) domain.AttendanceRepo {
	return &attendanceRepository{
		db: database,
	}
}

// MarkAttendance writes at most one record per (student, date). A second
// call for the same day corrects the existing record and appends to the
// audit trail; re-marking with identical values is a no-op.
func (ar *attendanceRepository) MarkAttendance(ctx context.Context, payload *domain.MarkAttendancePayload, markedBy string) (*domain.AttendanceRecord, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}
	if !payload.Status.Valid() {
		return nil, fmt.Errorf("invalid attendance status: %s", payload.Status)
	}
	if !payload.Method.Valid() {
		return nil, fmt.Errorf("invalid attendance method: %s", payload.Method)
	}

	termStart, termEnd, err := config.TermBounds()
	if err != nil {
		return nil, err
	}
	day := domain.AttendanceDay(payload.Date)
	if day.Before(termStart) || day.After(termEnd) {
		return nil, &domain.OutOfTermError{Date: day, TermStart: termStart, TermEnd: termEnd}
	}

	var student domain.Student
	err = ar.db.WithContext(ctx).Where("student_id = ? AND deleted_at IS NULL", payload.StudentID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "student", ID: payload.StudentID}
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	unlock := studentLocks.lock(payload.StudentID)
	defer unlock()

	var existing domain.AttendanceRecord
	var prior *domain.AttendanceRecord
	err = ar.db.WithContext(ctx).Where("student_id = ? AND date = ?", payload.StudentID, day).First(&existing).Error
	switch {
	case err == nil:
		prior = &existing
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	switch domain.PlanMark(prior, payload) {
	case domain.MarkCreate:
		record := domain.AttendanceRecord{
			AttendanceID: uuid.NewString(),
			StudentID:    payload.StudentID,
			Date:         day,
			Status:       payload.Status,
			Method:       payload.Method,
			Latitude:     payload.Latitude,
			Longitude:    payload.Longitude,
			Notes:        payload.Notes,
			MarkedBy:     markedBy,
		}
		if payload.Status == domain.AttendancePresent || payload.Status == domain.AttendanceLate {
			now := time.Now()
			record.CheckInTime = &now
		}
		if err := ar.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return &record, nil

	case domain.MarkNoop:
		// Identical re-mark: no correction, no audit row.
		return &existing, nil
	}

	audit := domain.AttendanceAudit{
		AuditID:      uuid.NewString(),
		AttendanceID: existing.AttendanceID,
		OldStatus:    existing.Status,
		NewStatus:    payload.Status,
		OldMethod:    existing.Method,
		NewMethod:    payload.Method,
		ChangedBy:    markedBy,
	}

	tx := ar.db.WithContext(ctx).Begin()
	existing.Status = payload.Status
	existing.Method = payload.Method
	if payload.Notes != nil {
		existing.Notes = payload.Notes
	}
	if err := tx.Save(&existing).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to correct attendance record: %w", err)
	}
	if err := tx.Create(&audit).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to append attendance audit: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit attendance correction: %w", err)
	}
	return &existing, nil
}

func (ar *attendanceRepository) ListAttendance(ctx context.Context, studentID string) (*[]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := ar.db.WithContext(ctx).Where("student_id = ?", studentID).Order("date DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attendance records: %w", err)
	}
	return &records, nil
}

func (ar *attendanceRepository) ListAudit(ctx context.Context, attendanceID string) (*[]domain.AttendanceAudit, error) {
	var audits []domain.AttendanceAudit
	err := ar.db.WithContext(ctx).Where("attendance_id = ?", attendanceID).Order("created_at ASC").Find(&audits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attendance audit trail: %w", err)
	}
	return &audits, nil
}

// CheckInToken issues the QR payload a student scans at the gate for
// method "qr". Encoded as a PNG so the front desk can print it.
func (ar *attendanceRepository) CheckInToken(ctx context.Context, studentID string, date time.Time) (*string, error) {
	var student domain.Student
	err := ar.db.WithContext(ctx).Where("student_id = ? AND deleted_at IS NULL", studentID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "student", ID: studentID}
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	payload := fmt.Sprintf("checkin:%s:%s", studentID, date.Format("2006-01-02"))
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate check-in QR code: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(png)
	return &encoded, nil
}
