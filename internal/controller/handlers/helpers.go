package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// RequesterFromUser собирает заявителя из пользователя Telegram
func RequesterFromUser(u *models.User) model.Requester {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return model.Requester{
		ID:          u.ID,
		DisplayName: name,
		Handle:      u.Username,
	}
}

// commandArgs аргументы команды: "/add_time 2025-01-30 10:00" -> [2025-01-30 10:00].
// Если аргументов не два, возвращает пустые строки, и сервис ответит подсказкой.
func commandArgs(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return "", ""
	}
	return fields[1], fields[2]
}

// FormatReservations список записей для сообщения
func FormatReservations(title string, reservations []*model.Reservation) string {
	var sb strings.Builder
	sb.WriteString(title)

	for _, r := range reservations {
		fmt.Fprintf(&sb, "\n• #%d %s %s - %s (%s)",
			r.ID,
			format.Date(r.Date),
			r.Time,
			r.DisplayName,
			format.Handle(r.Handle),
		)
	}

	return sb.String()
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendMessage(ctx, b, chatID, text, nil)
}
