package repository

import (
	"context"
	"fmt"
	"os"

	"assistant/domain"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
)

type whatsmeowSender struct {
	meowClient  *whatsmeow.Client
	countryCode string
}

func NewWhatsmeowSender(meow *whatsmeow.Client) domain.MessageSender {
	cc := os.Getenv("PHONE_COUNTRY_CODE")
	if cc == "" {
		cc = "62"
	}
	return &whatsmeowSender{
		meowClient:  meow,
		countryCode: cc,
	}
}

// SendText pushes one text message to a local phone number. Numbers are
// stored with a leading zero and converted to the international form the
// WhatsApp JID expects.
func (ws *whatsmeowSender) SendText(ctx context.Context, phone, body string) error {
	if phone == "" {
		return fmt.Errorf("recipient phone is empty")
	}

	completeFormat := phone
	if phone[0] == '0' {
		completeFormat = fmt.Sprintf("%s%s", ws.countryCode, phone[1:])
	}

	jid := types.NewJID(completeFormat, types.DefaultUserServer)

	conversationMessage := &waE2E.Message{
		Conversation: &body,
	}

	_, err := ws.meowClient.SendMessage(ctx, jid, conversationMessage)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message to %s: %w", phone, err)
	}
	return nil
}
