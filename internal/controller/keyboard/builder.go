package keyboard

import (
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Len количество рядов
func (b *Builder) Len() int {
	return len(b.rows)
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// FromChoices собирает клавиатуру из вариантов уведомления, все кнопки в один ряд.
// Возвращает nil, если вариантов нет.
func FromChoices(choices []model.Choice, label func(action string) string) *models.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}

	row := make([]models.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		row = append(row, Button(label(c.Action), c.CallbackKey))
	}

	return NewBuilder().Row(row...).Build()
}
