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

type feeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(database *gorm.DB) domain.FeeRepo {
	return &feeRepository{
		db: database,
	}
}

func (fr *feeRepository) CreateFee(ctx context.Context, payload *domain.FeeRecord) (*domain.FeeRecord, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}
	if payload.Amount <= 0 {
		return nil, fmt.Errorf("fee amount must be positive")
	}

	var student domain.Student
	err := fr.db.WithContext(ctx).Where("student_id = ? AND deleted_at IS NULL", payload.StudentID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "student", ID: payload.StudentID}
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	payload.FeeID = uuid.NewString()
	if payload.Currency == "" {
		payload.Currency = "USD"
	}
	if err := fr.db.WithContext(ctx).Create(payload).Error; err != nil {
		return nil, fmt.Errorf("failed to create fee record: %w", err)
	}
	return payload, nil
}

func (fr *feeRepository) GetFee(ctx context.Context, feeID string) (*domain.FeeRecord, error) {
	var fee domain.FeeRecord
	err := fr.db.WithContext(ctx).Preload("Student").Preload("Student.Parent").Preload("Reminders").Where("fee_id = ?", feeID).First(&fee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "fee record", ID: feeID}
		}
		return nil, fmt.Errorf("failed to fetch fee record: %w", err)
	}
	return &fee, nil
}

func (fr *feeRepository) GetFees(ctx context.Context, studentID string) (*[]domain.FeeView, error) {
	var fees []domain.FeeRecord
	err := fr.db.WithContext(ctx).Preload("Reminders").Where("student_id = ?", studentID).Order("due_date ASC").Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve fee records: %w", err)
	}

	now := time.Now()
	views := make([]domain.FeeView, 0, len(fees))
	for _, fee := range fees {
		views = append(views, domain.FeeView{FeeRecord: fee, Status: fee.Status(now)})
	}
	return &views, nil
}

// RecordPayment accumulates the paid amount; the paid/partial/overdue state
// is derived on read, never written.
func (fr *feeRepository) RecordPayment(ctx context.Context, feeID string, payload *domain.FeePaymentPayload) (*domain.FeeView, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}
	if payload.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	fee, err := fr.fetchFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	unlock := studentLocks.lock(fee.StudentID)
	defer unlock()

	// Re-read under the lock: a concurrent payment may have moved the
	// balance between the first fetch and lock acquisition.
	fee, err = fr.fetchFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := fee.ApplyPayment(payload.Amount, payload.PaymentMethod, now); err != nil {
		return nil, err
	}

	if err := fr.db.WithContext(ctx).Save(fee).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &domain.FeeView{FeeRecord: *fee, Status: fee.Status(now)}, nil
}

// WaiveFee is the only way to clear an unpaid fee without payment, and it
// always carries a reason.
func (fr *feeRepository) WaiveFee(ctx context.Context, feeID, reason string) (*domain.FeeView, error) {
	if reason == "" {
		return nil, fmt.Errorf("waive reason is required")
	}

	fee, err := fr.fetchFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	unlock := studentLocks.lock(fee.StudentID)
	defer unlock()

	fee, err = fr.fetchFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	if err := fee.Waive(reason); err != nil {
		return nil, err
	}
	if err := fr.db.WithContext(ctx).Save(fee).Error; err != nil {
		return nil, fmt.Errorf("failed to waive fee: %w", err)
	}
	return &domain.FeeView{FeeRecord: *fee, Status: fee.Status(time.Now())}, nil
}

func (fr *feeRepository) AppendReminder(ctx context.Context, feeID string, channel domain.ReminderChannel, status domain.DeliveryStatus) (*domain.FeeReminder, error) {
	if _, err := fr.fetchFee(ctx, feeID); err != nil {
		return nil, err
	}

	reminder := domain.FeeReminder{
		ReminderID: uuid.NewString(),
		FeeID:      feeID,
		Channel:    channel,
		Status:     status,
	}
	if err := fr.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to append fee reminder: %w", err)
	}
	return &reminder, nil
}

func (fr *feeRepository) ListDueFees(ctx context.Context, now time.Time) (*[]domain.FeeRecord, error) {
	var fees []domain.FeeRecord
	err := fr.db.WithContext(ctx).Where("due_date < ? AND waived = false AND paid_amount < amount", now).Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve due fees: %w", err)
	}
	return &fees, nil
}

func (fr *feeRepository) fetchFee(ctx context.Context, feeID string) (*domain.FeeRecord, error) {
	var fee domain.FeeRecord
	err := fr.db.WithContext(ctx).Where("fee_id = ?", feeID).First(&fee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "fee record", ID: feeID}
		}
		return nil, fmt.Errorf("failed to fetch fee record: %w", err)
	}
	return &fee, nil
}
