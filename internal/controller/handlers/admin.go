package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/notify"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAddTime обрабатывает команду /add_time <дата> <время>
func (h *Handlers) HandleAddTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	date, clock := commandArgs(msg.Text)
	notifications, err := h.reservationService.AddSlot(ctx, msg.From.ID, date, clock)
	h.dispatch(notifications, err)
}

// HandleDeleteTime обрабатывает команду /delete_time <дата> <время>
func (h *Handlers) HandleDeleteTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	date, clock := commandArgs(msg.Text)
	notifications, err := h.reservationService.DeleteSlot(ctx, msg.From.ID, date, clock)
	h.dispatch(notifications, err)
}

// HandleSlots обрабатывает команду /slots: всё свободное время по датам
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok || !h.requireApprover(ctx, b, msg) {
		return
	}

	dates, err := h.reservationService.ListDates(ctx)
	if err != nil {
		h.logger.Error("Failed to list dates", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(dates) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, "📭 Свободного времени нет.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("🗓 Свободное время:")
	for _, date := range dates {
		times, err := h.reservationService.ListTimes(ctx, date)
		if err != nil {
			h.logger.Error("Failed to list times", zap.String("date", date), zap.Error(err))
			h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
			return
		}
		fmt.Fprintf(&sb, "\n%s: %s", format.Date(date), strings.Join(times, ", "))
	}

	h.sendMessage(ctx, b, msg.Chat.ID, sb.String(), nil)
}

// HandlePending обрабатывает команду /pending
func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok || !h.requireApprover(ctx, b, msg) {
		return
	}

	pending, err := h.reservationService.Pending(msg.From.ID)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, notAuthorizedText)
		return
	}

	if len(pending) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, "📭 Заявок без решения нет.", nil)
		return
	}

	text, _ := notify.Render(model.Notification{
		RecipientID: msg.From.ID,
		Kind:        model.NotifyPendingDigest,
		Pending:     pending,
	})
	h.sendMessage(ctx, b, msg.Chat.ID, text, nil)
}

// HandleReservations обрабатывает команду /reservations <дата>
func (h *Handlers) HandleReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok || !h.requireApprover(ctx, b, msg) {
		return
	}

	fields := strings.Fields(msg.Text)
	date := ""
	if len(fields) == 2 {
		date = fields[1]
	}

	reservations, err := h.reservationService.ReservationsByDate(ctx, msg.From.ID, date)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMalformedInput):
		h.sendError(ctx, b, msg.Chat.ID, "❌ Укажите дату. Пример: /reservations 2025-01-30")
		return
	default:
		h.logger.Error("Failed to list reservations by date", zap.String("date", date), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(reservations) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf("📭 На %s записей нет.", format.Date(date)), nil)
		return
	}

	title := fmt.Sprintf("📅 Записи на %s:", format.Date(date))
	h.sendMessage(ctx, b, msg.Chat.ID, FormatReservations(title, reservations), nil)
}

// dispatch отправляет уведомления сервиса через очередь
func (h *Handlers) dispatch(notifications []model.Notification, err error) {
	if err != nil && !service.IsExpected(err) {
		h.logger.Error("Admin command failed", zap.Error(err))
	}
	h.queue.Enqueue(notifications...)
}
