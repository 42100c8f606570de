package callbacks

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/controller/handlers"
	"github.com/Freeeeeet/reservation_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"go.uber.org/zap"
)

const (
	chooseDateText = "📅 Выберите удобную дату:"
	noDatesText    = "😔 Свободных дат пока нет. Загляните позже."
)

// handleDate показывает свободное время на выбранную дату
func (h *Handler) handleDate(hc *HandlerContext, date string) {
	times, err := h.reservationService.ListTimes(hc.Ctx, date)
	if err != nil {
		h.logger.Error("Failed to list times", zap.String("date", date), zap.Error(err))
		hc.AnswerAlert("❌ Ошибка получения расписания")
		return
	}

	hc.Answer("")
	showTimes(hc, date, times)
}

// refreshTimes перерисовывает список времени после ответа на callback
func (h *Handler) refreshTimes(hc *HandlerContext, date string) {
	times, err := h.reservationService.ListTimes(hc.Ctx, date)
	if err != nil {
		h.logger.Error("Failed to list times", zap.String("date", date), zap.Error(err))
		return
	}
	showTimes(hc, date, times)
}

func showTimes(hc *HandlerContext, date string, times []string) {
	if len(times) == 0 {
		hc.EditMessage(
			fmt.Sprintf("😔 На %s нет свободного времени.", format.Date(date)),
			keyboard.Times(date, nil),
		)
		return
	}

	hc.EditMessage(
		fmt.Sprintf("⏰ Свободное время на %s:", format.Date(date)),
		keyboard.Times(date, times),
	)
}

// handleBackToDays возвращает к выбору даты
func (h *Handler) handleBackToDays(hc *HandlerContext) {
	dates, err := h.reservationService.ListDates(hc.Ctx)
	if err != nil {
		h.logger.Error("Failed to list dates", zap.Error(err))
		hc.AnswerAlert("❌ Ошибка получения расписания")
		return
	}

	hc.Answer("")

	dates = keyboard.Window(dates, h.now(), h.calendarDays)
	if len(dates) == 0 {
		hc.EditMessage(noDatesText, nil)
		return
	}
	hc.EditMessage(chooseDateText, keyboard.Days(dates))
}

// handleTime отправляет заявку на выбранный слот
func (h *Handler) handleTime(hc *HandlerContext, key callbackkey.Key) {
	requester := handlers.RequesterFromUser(&hc.Callback.From)

	notifications, err := h.reservationService.Request(hc.Ctx, key.Slot, requester)
	h.queue.Enqueue(notifications...)

	hc.Answer(RequestToast(err))

	switch {
	case err == nil:
		hc.RemoveKeyboard()
	case errors.Is(err, service.ErrSlotUnavailable):
		// Обновляем список, чтобы занятое время пропало
		h.refreshTimes(hc, key.Slot.Date)
	}
}
