package domain

import (
	"context"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	default:
		return false
	}
}

type AttendanceMethod string

const (
	MethodQR       AttendanceMethod = "qr"
	MethodLocation AttendanceMethod = "location"
	MethodManual   AttendanceMethod = "manual"
)

func (m AttendanceMethod) Valid() bool {
	switch m {
	case MethodQR, MethodLocation, MethodManual:
		return true
	default:
		return false
	}
}

// AttendanceDay normalizes a timestamp to its calendar day at UTC
// midnight. The day is taken from the caller's own zone, so a mark sent
// at local midnight never slides onto the previous date.
func AttendanceDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarkOutcome is what a mark payload means against the record already
// stored for that day.
type MarkOutcome int

const (
	MarkCreate MarkOutcome = iota
	MarkNoop
	MarkCorrect
)

// PlanMark decides between creating a record, ignoring an identical
// re-mark and correcting an existing one. Only a correction appends to
// the audit trail.
func PlanMark(existing *AttendanceRecord, payload *MarkAttendancePayload) MarkOutcome {
	if existing == nil {
		return MarkCreate
	}
	if existing.Status == payload.Status && existing.Method == payload.Method {
		return MarkNoop
	}
	return MarkCorrect
}

// AttendanceRecord holds at most one row per (student, date). Corrections
// update the row in place and append to the audit trail.
type AttendanceRecord struct {
	AttendanceID string           `gorm:"primaryKey;type:uuid" json:"attendance_id"`
	StudentID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_student_date" json:"student_id" valid:"required~Student ID is required"`
	Student      Student          `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" valid:"-"`
	Date         time.Time        `gorm:"type:date;not null;uniqueIndex:idx_student_date" json:"date" valid:"required~Date is required"`
	Status       AttendanceStatus `gorm:"type:attendance_status_enum;not null" json:"status"`
	Method       AttendanceMethod `gorm:"type:attendance_method_enum;not null" json:"method"`
	CheckInTime  *time.Time       `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time       `json:"check_out_time,omitempty"`
	Latitude     *float64         `json:"latitude,omitempty"`
	Longitude    *float64         `json:"longitude,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	MarkedBy     string           `gorm:"type:uuid" json:"marked_by"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// AttendanceAudit rows are append-only; one row per correction of an
// existing attendance record.
type AttendanceAudit struct {
	AuditID      string           `gorm:"primaryKey;type:uuid" json:"audit_id"`
	AttendanceID string           `gorm:"type:uuid;not null;index" json:"attendance_id"`
	OldStatus    AttendanceStatus `gorm:"type:attendance_status_enum;not null" json:"old_status"`
	NewStatus    AttendanceStatus `gorm:"type:attendance_status_enum;not null" json:"new_status"`
	OldMethod    AttendanceMethod `gorm:"type:attendance_method_enum;not null" json:"old_method"`
	NewMethod    AttendanceMethod `gorm:"type:attendance_method_enum;not null" json:"new_method"`
	ChangedBy    string           `gorm:"type:uuid" json:"changed_by"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type MarkAttendancePayload struct {
	StudentID string           `json:"student_id" valid:"required~Student ID is required"`
	Date      time.Time        `json:"date" valid:"required~Date is required"`
	Status    AttendanceStatus `json:"status"`
	Method    AttendanceMethod `json:"method"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

type AttendanceRepo interface {
	MarkAttendance(ctx context.Context, payload *MarkAttendancePayload, markedBy string) (*AttendanceRecord, error)
	ListAttendance(ctx context.Context, studentID string) (*[]AttendanceRecord, error)
	ListAudit(ctx context.Context, attendanceID string) (*[]AttendanceAudit, error)
	CheckInToken(ctx context.Context, studentID string, date time.Time) (*string, error)
}

type AttendanceUseCase interface {
	MarkAttendance(ctx context.Context, payload *MarkAttendancePayload, markedBy string) (*AttendanceRecord, error)
	ListAttendance(ctx context.Context, studentID string) (*[]AttendanceRecord, error)
	ListAudit(ctx context.Context, attendanceID string) (*[]AttendanceAudit, error)
	CheckInToken(ctx context.Context, studentID string, date time.Time) (*string, error)
}
