// Package callbackkey кодирует и разбирает callback data inline кнопок.
//
// Форматы:
//
//	date_2025-02-01
//	time_2025-02-01_10:00
//	approve_2025-02-01_10:00_288129387
//	reject_2025-02-01_10:00_288129387
//	back_to_days
package callbackkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
)

type Action string

const (
	ActionDate       Action = "date"
	ActionTime       Action = "time"
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionBackToDays Action = "back_to_days"
)

// MaxLen ограничение Telegram на callback data
const MaxLen = 64

const sep = "_"

var (
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrTooLong       = errors.New("callback data exceeds 64 bytes")
)

// Key разобранные callback data
type Key struct {
	Action      Action
	Slot        model.SlotKey
	RequesterID int64
}

// Date ключ выбора даты
func Date(date string) Key {
	return Key{Action: ActionDate, Slot: model.SlotKey{Date: date}}
}

// Time ключ выбора времени
func Time(slot model.SlotKey) Key {
	return Key{Action: ActionTime, Slot: slot}
}

// Decision ключ решения подтверждающего
func Decision(action Action, slot model.SlotKey, requesterID int64) Key {
	return Key{Action: action, Slot: slot, RequesterID: requesterID}
}

// String собирает callback data без проверки длины
func (k Key) String() string {
	switch k.Action {
	case ActionBackToDays:
		return string(k.Action)
	case ActionDate:
		return string(k.Action) + sep + k.Slot.Date
	case ActionTime:
		return string(k.Action) + sep + k.Slot.Date + sep + k.Slot.Time
	default:
		return string(k.Action) + sep + k.Slot.Date + sep + k.Slot.Time + sep + strconv.FormatInt(k.RequesterID, 10)
	}
}

// Encode собирает callback data и проверяет ограничение Telegram
func Encode(k Key) (string, error) {
	data := k.String()
	if len(data) > MaxLen {
		return "", fmt.Errorf("%w: %q", ErrTooLong, data)
	}
	return data, nil
}

// Parse разбирает callback data.
// Дата не содержит "_", id заявителя всегда после последнего "_",
// поэтому метка времени между ними может быть любой.
func Parse(data string) (Key, error) {
	if data == string(ActionBackToDays) {
		return Key{Action: ActionBackToDays}, nil
	}

	action, rest, ok := strings.Cut(data, sep)
	if !ok || rest == "" {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	key := Key{Action: Action(action)}

	switch key.Action {
	case ActionDate:
		key.Slot.Date = rest
	case ActionTime:
		date, label, ok := strings.Cut(rest, sep)
		if !ok || label == "" {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		key.Slot = model.SlotKey{Date: date, Time: label}
	case ActionApprove, ActionReject:
		date, tail, ok := strings.Cut(rest, sep)
		if !ok {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		idx := strings.LastIndex(tail, sep)
		if idx <= 0 || idx == len(tail)-1 {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		requesterID, err := strconv.ParseInt(tail[idx+1:], 10, 64)
		if err != nil {
			return Key{}, fmt.Errorf("%w: requester id: %v", ErrInvalidFormat, err)
		}
		key.Slot = model.SlotKey{Date: date, Time: tail[:idx]}
		key.RequesterID = requesterID
	default:
		return Key{}, fmt.Errorf("%w: unknown action %q", ErrInvalidFormat, action)
	}

	if _, err := time.Parse(model.DateLayout, key.Slot.Date); err != nil {
		return Key{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, key.Slot.Date)
	}

	return key, nil
}
