package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: показывает даты ближайших дней
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	dates, err := h.reservationService.ListDates(ctx)
	if err != nil {
		h.logger.Error("Failed to list dates", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	dates = keyboard.Window(dates, h.now(), h.calendarDays)

	greeting := fmt.Sprintf("👋 Привет, %s!\n\n", RequesterFromUser(msg.From).DisplayName)
	if len(dates) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, greeting+"😔 Свободных дат пока нет. Загляните позже.", nil)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, greeting+"📅 Выберите удобную дату:", keyboard.Days(dates))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Выбрать дату и время\n" +
		"/my - Мои подтверждённые записи\n" +
		"/help - Показать эту справку"

	if h.reservationService.IsApprover(msg.From.ID) {
		helpText += "\n\nДля администратора:\n" +
			"/add_time 2025-01-30 10:00 - Добавить время\n" +
			"/delete_time 2025-01-30 10:00 - Удалить время\n" +
			"/slots - Свободное время\n" +
			"/pending - Заявки без решения\n" +
			"/reservations 2025-01-30 - Записи на дату"
	}

	h.sendMessage(ctx, b, msg.Chat.ID, helpText, nil)
}

// HandleMyReservations обрабатывает команду /my
func (h *Handlers) HandleMyReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	reservations, err := h.reservationService.MyReservations(ctx, msg.From.ID)
	if err != nil {
		h.logger.Error("Failed to list reservations",
			zap.Int64("telegram_id", msg.From.ID),
			zap.Error(err),
		)
		h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(reservations) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, "📭 У вас пока нет подтверждённых записей.", nil)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, FormatReservations("📅 Ваши записи:", reservations), nil)
}
