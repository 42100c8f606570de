package keyboard

import (
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Days клавиатура выбора даты: по кнопке на дату
func Days(dates []string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, date := range dates {
		b.Row(Button(format.Date(date), callbackkey.Date(date).String()))
	}
	return b.Build()
}

// Times клавиатура выбора времени на дату с кнопкой возврата к датам.
// Слоты, чей callback не влезает в лимит Telegram, пропускаются.
func Times(date string, times []string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, label := range times {
		data, err := callbackkey.Encode(callbackkey.Time(model.SlotKey{Date: date, Time: label}))
		if err != nil {
			continue
		}
		b.Row(Button(label, data))
	}
	b.Row(Button("⬅️ Назад", string(callbackkey.ActionBackToDays)))
	return b.Build()
}

// Window оставляет даты из [from, from+days), сохраняя порядок
func Window(dates []string, from time.Time, days int) []string {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	var out []string
	for _, date := range dates {
		t, err := time.Parse(model.DateLayout, date)
		if err != nil {
			continue
		}
		if !t.Before(start) && t.Before(end) {
			out = append(out, date)
		}
	}
	return out
}
