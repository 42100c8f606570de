package callbacks

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/reservation_bot/internal/service"
)

// IsMessageNotModifiedError Telegram отвечает ошибкой, если текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// DecisionToast короткий ответ подтверждающему на нажатие кнопки решения
func DecisionToast(approved bool, err error) string {
	switch {
	case err == nil && approved:
		return "✅ Запись подтверждена"
	case err == nil:
		return "❌ Заявка отклонена"
	case errors.Is(err, service.ErrNotAuthorized):
		return "❌ У вас нет доступа"
	case errors.Is(err, service.ErrSlotUnavailable):
		return "ℹ️ Время уже занято"
	case errors.Is(err, service.ErrRequestNotFound):
		return "ℹ️ Заявка уже обработана"
	case errors.Is(err, service.ErrConflict):
		return "⚠️ Запись на это время уже существует"
	default:
		return "❌ Произошла ошибка"
	}
}

// RequestToast короткий ответ заявителю на выбор времени
func RequestToast(err error) string {
	switch {
	case err == nil:
		return "⏳ Заявка отправлена"
	case errors.Is(err, service.ErrSlotUnavailable):
		return "😔 Это время уже недоступно"
	default:
		return "❌ Произошла ошибка"
	}
}

// closesPrompt решение закрыло заявку, кнопки под сообщением больше не нужны
func closesPrompt(err error) bool {
	return err == nil ||
		errors.Is(err, service.ErrRequestNotFound) ||
		errors.Is(err, service.ErrSlotUnavailable)
}
