// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"novenapp_alert_bot/internal/domain/delivery"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements delivery.Sender using the gopkg.in/telebot.v3
// library. Alerts are posted to a single configured chat; the per-recipient
// fan-out happens upstream, so each recipient produces one message tagged
// with their name.
type TelebotAdapter struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelebotAdapter(b *telebot.Bot, chatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, chatID: chatID}
}

// Send posts the alert subject line to the alerts chat. Telegram's HTML
// subset cannot render the full email body, so the subject carries the
// event and the recipient name is appended for traceability.
func (tba *TelebotAdapter) Send(_ context.Context, to delivery.Recipient, subject, _ string) error {
	text := fmt.Sprintf("<b>%s</b>\nDestinatario: %s", subject, to.Name)
	recipient := &telebot.Chat{ID: tba.chatID}
	_, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	return err
}
