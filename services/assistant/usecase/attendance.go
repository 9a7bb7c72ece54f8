package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type attendanceUseCase struct {
	repo    domain.AttendanceRepo
	TimeOut time.Duration
}

func NewAttendanceUseCase(repo domain.AttendanceRepo, to time.Duration) domain.AttendanceUseCase {
	return &attendanceUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (au *attendanceUseCase) MarkAttendance(ctx context.Context, payload *domain.MarkAttendancePayload, markedBy string) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.MarkAttendance(ctx, payload, markedBy)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (au *attendanceUseCase) ListAttendance(ctx context.Context, studentID string) (*[]domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.ListAttendance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (au *attendanceUseCase) ListAudit(ctx context.Context, attendanceID string) (*[]domain.AttendanceAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.ListAudit(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (au *attendanceUseCase) CheckInToken(ctx context.Context, studentID string, date time.Time) (*string, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.CheckInToken(ctx, studentID, date)
	if err != nil {
		return nil, err
	}
	return v, nil
}
