package domain

import (
	"context"
	"math"
	"time"
)

type Student struct {
	StudentID string     `gorm:"primaryKey;type:uuid" json:"student_id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Grade     string     `gorm:"type:varchar(10);not null" json:"grade" valid:"required~Grade is required"`
	Class     string     `gorm:"type:varchar(10);not null" json:"class" valid:"required~Class is required"`
	ParentID  string     `gorm:"type:uuid;not null;index" json:"parent_id" valid:"required~Parent ID is required"`
	Parent    User       `gorm:"foreignKey:ParentID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"parent" valid:"-"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// StudentOverview is the student plus the derived parts of its sub-ledgers.
type StudentOverview struct {
	Student    Student           `json:"student"`
	Attendance AttendanceSummary `json:"attendance"`
	Fees       []FeeView         `json:"fees"`
}

// AttendanceSummary is recomputed from the full record set on every read and
// never stored.
type AttendanceSummary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Excused    int     `json:"excused"`
	Percentage float64 `json:"percentage"`
}

// SummarizeAttendance derives the attendance summary from the historical
// record set. Excused days do not count toward the percentage denominator.
func SummarizeAttendance(records []AttendanceRecord) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range records {
		switch r.Status {
		case AttendancePresent:
			s.Present++
		case AttendanceAbsent:
			s.Absent++
		case AttendanceLate:
			s.Late++
		case AttendanceExcused:
			s.Excused++
		}
	}
	counted := s.Present + s.Absent + s.Late
	if counted > 0 {
		s.Percentage = math.Round(float64(s.Present)/float64(counted)*1000) / 10
	}
	return s
}

type StudentRepo interface {
	GetAllStudents(ctx context.Context) (*[]StudentOverview, error)
	GetStudent(ctx context.Context, studentID string) (*StudentOverview, error)
	CreateStudent(ctx context.Context, payload *Student) (*Student, error)
}

type StudentUseCase interface {
	GetAllStudents(ctx context.Context) (*[]StudentOverview, error)
	GetStudent(ctx context.Context, studentID string) (*StudentOverview, error)
	CreateStudent(ctx context.Context, payload *Student) (*Student, error)
}
