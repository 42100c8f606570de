package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MessageSender часть *bot.Bot, нужная для отправки
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramSender отправляет уведомления сообщениями в чат получателя
type TelegramSender struct {
	bot MessageSender
}

func NewTelegramSender(b MessageSender) *TelegramSender {
	return &TelegramSender{bot: b}
}

func (s *TelegramSender) Send(ctx context.Context, n model.Notification) error {
	text, markup := Render(n)

	params := &bot.SendMessageParams{
		ChatID: n.RecipientID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := s.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send %s to %d: %w", n.Kind, n.RecipientID, err)
	}
	return nil
}
