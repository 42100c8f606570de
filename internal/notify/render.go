package notify

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Render превращает уведомление в текст и клавиатуру Telegram
func Render(n model.Notification) (string, *models.InlineKeyboardMarkup) {
	date := format.Date(n.Slot.Date)
	clock := n.Slot.Time
	name := n.Requester.DisplayName

	var text string
	switch n.Kind {
	case model.NotifyDecisionPrompt:
		text = fmt.Sprintf(
			"📥 Новая заявка на запись\n\n"+
				"👤 Имя: %s\n"+
				"🌐 Username: %s\n"+
				"📅 Дата: %s\n"+
				"⏰ Время: %s",
			name, format.Handle(n.Requester.Handle), date, clock,
		)
	case model.NotifyApprovalDone:
		text = fmt.Sprintf("✅ Запись на %s в %s для %s подтверждена (#%d)", date, clock, name, n.ReservationID)
	case model.NotifyRejectionDone:
		text = fmt.Sprintf("❌ Заявка на %s в %s от %s отклонена", date, clock, name)
	case model.NotifyRequestNotFound:
		text = fmt.Sprintf("ℹ️ Заявка на %s в %s не найдена. Возможно, она уже обработана.", date, clock)
	case model.NotifySlotTaken:
		text = fmt.Sprintf("ℹ️ Время %s в %s больше недоступно. Заявка от %s закрыта.", date, clock, name)
	case model.NotifyInconsistency:
		text = fmt.Sprintf("⚠️ Ошибка: запись на %s в %s уже есть в системе. Заявка от %s не подтверждена.", date, clock, name)
	case model.NotifySlotAdded:
		text = fmt.Sprintf("✅ Время %s на %s добавлено.", clock, date)
	case model.NotifySlotReserved:
		text = fmt.Sprintf("ℹ️ Время %s на %s уже забронировано, повторно не добавлено.", clock, date)
	case model.NotifySlotDeleted:
		text = fmt.Sprintf("🗑 Время %s на %s удалено.", clock, date)
	case model.NotifyMalformedInput:
		text = fmt.Sprintf("❌ Укажите дату и время правильно. Пример: %s", n.Usage)
	case model.NotifyPendingDigest:
		text = renderDigest(n.Pending)
	case model.NotifyAwaitingApproval:
		text = fmt.Sprintf("⏳ Ваша заявка на %s в %s отправлена и ожидает подтверждения.", date, clock)
	case model.NotifySlotUnavailable:
		text = fmt.Sprintf("😔 Извините, время %s на %s недоступно.", clock, date)
	case model.NotifyRequestApproved:
		text = fmt.Sprintf("✅ Здравствуйте, %s!\n\nВаша запись на %s в %s подтверждена. Ждём вас вовремя!", name, date, clock)
	case model.NotifyRequestRejected:
		text = fmt.Sprintf("❌ Здравствуйте, %s!\n\nК сожалению, ваша заявка на %s в %s отклонена.", name, date, clock)
	case model.NotifyNotAuthorized:
		text = "❌ У вас нет доступа к этой команде."
	default:
		text = "❌ Произошла ошибка. Попробуйте позже."
	}

	return text, keyboard.FromChoices(n.Choices, choiceLabel)
}

func choiceLabel(action string) string {
	switch callbackkey.Action(action) {
	case callbackkey.ActionApprove:
		return "✅ Принять"
	case callbackkey.ActionReject:
		return "❌ Отклонить"
	default:
		return action
	}
}

func renderDigest(pending []model.PendingRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Заявки, ожидающие решения (%d):\n", len(pending))

	for _, req := range pending {
		fmt.Fprintf(&sb, "\n• %s %s - %s (%s)",
			format.Date(req.Slot.Date),
			req.Slot.Time,
			req.Requester.DisplayName,
			format.Handle(req.Requester.Handle),
		)
	}

	return sb.String()
}
