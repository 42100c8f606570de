package callbacks

import (
	"context"

	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery точка входа для всех нажатий на inline кнопки
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.Route(NewHandlerContext(ctx, b, update.CallbackQuery, h.logger))
}

// Route распределяет callback query по обработчикам
func (h *Handler) Route(hc *HandlerContext) {
	data := hc.Callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", hc.TelegramID),
		zap.String("user_name", hc.Callback.From.FirstName))

	key, err := callbackkey.Parse(data)
	if err != nil {
		h.logger.Warn("Unknown callback data", zap.String("data", data), zap.Error(err))
		hc.AnswerAlert("❌ Неверный формат данных")
		return
	}

	switch key.Action {
	case callbackkey.ActionDate:
		h.handleDate(hc, key.Slot.Date)
	case callbackkey.ActionBackToDays:
		h.handleBackToDays(hc)
	case callbackkey.ActionTime:
		h.handleTime(hc, key)
	case callbackkey.ActionApprove, callbackkey.ActionReject:
		h.handleDecision(hc, key)
	}
}
