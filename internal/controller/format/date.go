// Package format отображение дат для пользователя.
// В ядре дата хранится как YYYY-MM-DD и здесь только показывается.
package format

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
)

// Date форматирует дату слота: "01.02.2025 (Сб)".
// Нераспознанная дата возвращается как есть.
func Date(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return DayLabel(t)
}

// DayLabel подпись дня для кнопки календаря
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayShortName(int(t.Weekday())))
}

// Handle форматирует username для показа
func Handle(handle string) string {
	if handle == "" {
		return "нет"
	}
	return "@" + handle
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{
		"Вс",
		"Пн",
		"Вт",
		"Ср",
		"Чт",
		"Пт",
		"Сб",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
