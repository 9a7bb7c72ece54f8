package domain

import (
	"context"
	"time"
)

type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePaid    FeeStatus = "paid"
	FeePartial FeeStatus = "partial"
	FeeOverdue FeeStatus = "overdue"
)

type ReminderChannel string

const (
	ChannelWhatsapp ReminderChannel = "whatsapp"
	ChannelEmail    ReminderChannel = "email"
	ChannelSMS      ReminderChannel = "sms"
)

type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
	DeliveryFailed    DeliveryStatus = "failed"
)

type FeeRecord struct {
	FeeID         string        `gorm:"primaryKey;type:uuid" json:"fee_id"`
	StudentID     string        `gorm:"type:uuid;not null;index" json:"student_id" valid:"required~Student ID is required"`
	Student       Student       `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" valid:"-"`
	Type          string        `gorm:"type:varchar(20);not null" json:"type" valid:"required~Type is required,in(tuition|transport|meals|activities|materials)~Invalid fee type"`
	Amount        float64       `gorm:"type:numeric;not null" json:"amount" valid:"required~Amount is required"`
	Currency      string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	DueDate       time.Time     `gorm:"type:date;not null" json:"due_date" valid:"required~Due date is required"`
	PaidAmount    float64       `gorm:"type:numeric;default:0" json:"paid_amount"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	PaymentMethod *string       `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	Waived        bool          `gorm:"default:false" json:"waived"`
	WaiveReason   *string       `gorm:"type:text" json:"waive_reason,omitempty"`
	Reminders     []FeeReminder `gorm:"foreignKey:FeeID;references:FeeID" json:"reminders" valid:"-"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// FeeReminder rows are append-only. Delivery status mirrors the broadcast
// delivery machine since reminders go out over the same channel.
type FeeReminder struct {
	ReminderID string          `gorm:"primaryKey;type:uuid" json:"reminder_id"`
	FeeID      string          `gorm:"type:uuid;not null;index" json:"fee_id"`
	Channel    ReminderChannel `gorm:"type:reminder_channel_enum;not null" json:"channel"`
	Status     DeliveryStatus  `gorm:"type:delivery_status_enum;not null" json:"status"`
	SentAt     time.Time       `gorm:"autoCreateTime" json:"sent_at"`
}

// Status is derived on every read. Overdue is an overlay, not a terminal
// state: a record moves out of it the moment it is paid or waived.
func (f *FeeRecord) Status(now time.Time) FeeStatus {
	if f.Waived || f.PaidAmount >= f.Amount {
		return FeePaid
	}
	if now.After(f.DueDate) {
		return FeeOverdue
	}
	if f.PaidAmount > 0 {
		return FeePartial
	}
	return FeePending
}

// ApplyPayment credits a payment against the record and stamps PaidAt once
// the balance clears. A settled record rejects further payments. Callers
// must hold the student lock across the read and the write.
func (f *FeeRecord) ApplyPayment(amount float64, method string, now time.Time) error {
	if f.Waived || f.PaidAmount >= f.Amount {
		return &InvalidTransitionError{Entity: "fee record", From: string(FeePaid), To: string(FeePaid)}
	}
	f.PaidAmount += amount
	f.PaymentMethod = &method
	if f.PaidAmount >= f.Amount {
		f.PaidAt = &now
	}
	return nil
}

// Waive clears the record without payment. An already-settled record
// cannot be waived.
func (f *FeeRecord) Waive(reason string) error {
	if f.Waived || f.PaidAmount >= f.Amount {
		return &InvalidTransitionError{Entity: "fee record", From: string(FeePaid), To: string(FeePaid)}
	}
	f.Waived = true
	f.WaiveReason = &reason
	return nil
}

// FeeView is the record plus its derived status.
type FeeView struct {
	FeeRecord
	Status FeeStatus `json:"status"`
}

type FeePaymentPayload struct {
	Amount        float64 `json:"amount" valid:"required~Amount is required"`
	PaymentMethod string  `json:"payment_method" valid:"required~Payment method is required"`
}

type FeeRepo interface {
	CreateFee(ctx context.Context, payload *FeeRecord) (*FeeRecord, error)
	GetFee(ctx context.Context, feeID string) (*FeeRecord, error)
	GetFees(ctx context.Context, studentID string) (*[]FeeView, error)
	RecordPayment(ctx context.Context, feeID string, payload *FeePaymentPayload) (*FeeView, error)
	WaiveFee(ctx context.Context, feeID, reason string) (*FeeView, error)
	AppendReminder(ctx context.Context, feeID string, channel ReminderChannel, status DeliveryStatus) (*FeeReminder, error)
	ListDueFees(ctx context.Context, now time.Time) (*[]FeeRecord, error)
}

type FeeUseCase interface {
	CreateFee(ctx context.Context, payload *FeeRecord) (*FeeRecord, error)
	GetFees(ctx context.Context, studentID string) (*[]FeeView, error)
	RecordPayment(ctx context.Context, feeID string, payload *FeePaymentPayload) (*FeeView, error)
	WaiveFee(ctx context.Context, feeID, reason string) (*FeeView, error)
	SendReminder(ctx context.Context, feeID string) (*FeeReminder, error)
	SendDueReminders(ctx context.Context) (int, error)
}
