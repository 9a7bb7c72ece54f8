package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assistant/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeeRepo struct {
	fee       *domain.FeeRecord
	reminders []domain.FeeReminder
}

func (f *fakeFeeRepo) CreateFee(ctx context.Context, payload *domain.FeeRecord) (*domain.FeeRecord, error) {
	return payload, nil
}

func (f *fakeFeeRepo) GetFee(ctx context.Context, feeID string) (*domain.FeeRecord, error) {
	if f.fee == nil || f.fee.FeeID != feeID {
		return nil, &domain.NotFoundError{Entity: "fee record", ID: feeID}
	}
	return f.fee, nil
}

func (f *fakeFeeRepo) GetFees(ctx context.Context, studentID string) (*[]domain.FeeView, error) {
	return &[]domain.FeeView{}, nil
}

func (f *fakeFeeRepo) RecordPayment(ctx context.Context, feeID string, payload *domain.FeePaymentPayload) (*domain.FeeView, error) {
	return nil, nil
}

func (f *fakeFeeRepo) WaiveFee(ctx context.Context, feeID, reason string) (*domain.FeeView, error) {
	return nil, nil
}

func (f *fakeFeeRepo) AppendReminder(ctx context.Context, feeID string, channel domain.ReminderChannel, status domain.DeliveryStatus) (*domain.FeeReminder, error) {
	r := domain.FeeReminder{FeeID: feeID, Channel: channel, Status: status}
	f.reminders = append(f.reminders, r)
	return &r, nil
}

func (f *fakeFeeRepo) ListDueFees(ctx context.Context, now time.Time) (*[]domain.FeeRecord, error) {
	var due []domain.FeeRecord
	if f.fee != nil && !f.fee.Waived && f.fee.PaidAmount < f.fee.Amount && now.After(f.fee.DueDate) {
		due = append(due, *f.fee)
	}
	return &due, nil
}

type fakeSender struct {
	mu          sync.Mutex
	sent        []string
	err         error
	failPhones  map[string]bool
	blockPhones map[string]bool
	blocked     chan struct{}
}

func (f *fakeSender) SendText(ctx context.Context, phone, body string) error {
	if f.err != nil {
		return f.err
	}
	if f.blockPhones[phone] {
		if f.blocked != nil {
			f.blocked <- struct{}{}
		}
		<-ctx.Done()
		return ctx.Err()
	}
	if f.failPhones[phone] {
		return errors.New("recipient unreachable")
	}
	f.mu.Lock()
	f.sent = append(f.sent, phone)
	f.mu.Unlock()
	return nil
}

func outstandingFee() *domain.FeeRecord {
	return &domain.FeeRecord{
		FeeID:     "fee-1",
		Type:      "tuition",
		Amount:    500,
		Currency:  "USD",
		DueDate:   time.Now().AddDate(0, 0, 7),
		StudentID: "student-1",
		Student: domain.Student{
			StudentID: "student-1",
			Name:      "Imani",
			Parent:    domain.User{Name: "Amina", Phone: "0811111111"},
		},
	}
}

func TestSendReminderDelivered(t *testing.T) {
	repo := &fakeFeeRepo{fee: outstandingFee()}
	sender := &fakeSender{}
	uc := NewFeeUseCase(repo, sender, time.Second)

	reminder, err := uc.SendReminder(context.Background(), "fee-1")
	require.NoError(t, err)

	assert.Equal(t, domain.ChannelWhatsapp, reminder.Channel)
	assert.Equal(t, domain.DeliveryDelivered, reminder.Status)
	assert.Equal(t, []string{"0811111111"}, sender.sent)
}

func TestSendReminderFailureIsLogged(t *testing.T) {
	repo := &fakeFeeRepo{fee: outstandingFee()}
	sender := &fakeSender{err: errors.New("connection lost")}
	uc := NewFeeUseCase(repo, sender, time.Second)

	reminder, err := uc.SendReminder(context.Background(), "fee-1")
	require.NoError(t, err)

	// Failed deliveries still land in the reminder log.
	assert.Equal(t, domain.DeliveryFailed, reminder.Status)
	require.Len(t, repo.reminders, 1)
}

func TestSendDueReminders(t *testing.T) {
	fee := outstandingFee()
	fee.DueDate = time.Now().AddDate(0, 0, -7)
	repo := &fakeFeeRepo{fee: fee}
	sender := &fakeSender{}
	uc := NewFeeUseCase(repo, sender, time.Second)

	sent, err := uc.SendDueReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, repo.reminders, 1)
}

func TestSendDueRemindersNothingDue(t *testing.T) {
	repo := &fakeFeeRepo{fee: outstandingFee()}
	uc := NewFeeUseCase(repo, &fakeSender{}, time.Second)

	sent, err := uc.SendDueReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sent)
	assert.Empty(t, repo.reminders)
}

func TestSendReminderRejectsPaidFee(t *testing.T) {
	fee := outstandingFee()
	fee.PaidAmount = fee.Amount
	repo := &fakeFeeRepo{fee: fee}
	uc := NewFeeUseCase(repo, &fakeSender{}, time.Second)

	_, err := uc.SendReminder(context.Background(), "fee-1")

	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, repo.reminders)
}
