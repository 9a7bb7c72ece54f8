package usecase

import (
	"context"
	"fmt"
	"time"

	"assistant/config"
	"assistant/domain"
)

type feeUseCase struct {
	repo    domain.FeeRepo
	sender  domain.MessageSender
	TimeOut time.Duration
}

func NewFeeUseCase(repo domain.FeeRepo, sender domain.MessageSender, to time.Duration) domain.FeeUseCase {
	return &feeUseCase{
		repo:    repo,
		sender:  sender,
		TimeOut: to,
	}
}

func (fu *feeUseCase) CreateFee(ctx context.Context, payload *domain.FeeRecord) (*domain.FeeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.CreateFee(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *feeUseCase) GetFees(ctx context.Context, studentID string) (*[]domain.FeeView, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.GetFees(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *feeUseCase) RecordPayment(ctx context.Context, feeID string, payload *domain.FeePaymentPayload) (*domain.FeeView, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.RecordPayment(ctx, feeID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fu *feeUseCase) WaiveFee(ctx context.Context, feeID, reason string) (*domain.FeeView, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	v, err := fu.repo.WaiveFee(ctx, feeID, reason)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SendReminder pushes one payment reminder to the student's parent over
// WhatsApp and appends it to the fee's reminder log. The log keeps failed
// deliveries too.
func (fu *feeUseCase) SendReminder(ctx context.Context, feeID string) (*domain.FeeReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	fee, err := fu.repo.GetFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	status := fee.Status(time.Now())
	if status == domain.FeePaid {
		return nil, &domain.InvalidTransitionError{Entity: "fee record", From: string(status), To: "reminded"}
	}

	outstanding := fee.Amount - fee.PaidAmount
	body := fmt.Sprintf(`School Fees Reminder 🔔

Dear %s,
This is a reminder that the %s fee for %s is still outstanding.
Amount due: %.2f %s
Due date: %s

Please settle the balance at your earliest convenience. If you have already paid, kindly disregard this message.`,
		fee.Student.Parent.Name, fee.Type, fee.Student.Name, outstanding, fee.Currency,
		fee.DueDate.Format("02/01/2006"))

	delivery := domain.DeliveryDelivered
	if err := fu.sender.SendText(ctx, fee.Student.Parent.Phone, body); err != nil {
		delivery = domain.DeliveryFailed
	}

	return fu.repo.AppendReminder(ctx, feeID, domain.ChannelWhatsapp, delivery)
}

// SendDueReminders pushes a reminder for every fee past its due date and
// still outstanding. One unreachable parent does not stop the batch.
func (fu *feeUseCase) SendDueReminders(ctx context.Context) (int, error) {
	listCtx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	due, err := fu.repo.ListDueFees(listCtx, time.Now())
	if err != nil {
		return 0, err
	}

	log := config.GetLogrusInstance()
	var sent int
	for _, fee := range *due {
		if _, err := fu.SendReminder(ctx, fee.FeeID); err != nil {
			log.Warnf("fee %s: reminder failed: %v", fee.FeeID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
