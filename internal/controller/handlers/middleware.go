package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const notAuthorizedText = "❌ У вас нет доступа к этой команде."

// requireMessage проверяет что в update есть сообщение с автором
func requireMessage(update *models.Update) (*models.Message, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return update.Message, true
}

// requireApprover проверяет что команду вызвал подтверждающий.
// Остальным отвечает фиксированным отказом.
func (h *Handlers) requireApprover(ctx context.Context, b *bot.Bot, msg *models.Message) bool {
	if h.reservationService.IsApprover(msg.From.ID) {
		return true
	}

	h.logger.Info("Approver command denied",
		zap.Int64("telegram_id", msg.From.ID),
		zap.String("text", msg.Text),
	)
	h.sendError(ctx, b, msg.Chat.ID, notAuthorizedText)
	return false
}
