package domain

import "context"

// MessageSender is the outbound WhatsApp channel used by campaign dispatch
// and fee reminders.
type MessageSender interface {
	SendText(ctx context.Context, phone, body string) error
}
