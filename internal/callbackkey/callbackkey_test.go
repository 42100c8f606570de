package callbackkey

import (
	"strings"
	"testing"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFormats(t *testing.T) {
	slot := model.SlotKey{Date: "2025-02-01", Time: "10:00"}

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{name: "date", key: Date("2025-02-01"), want: "date_2025-02-01"},
		{name: "time", key: Time(slot), want: "time_2025-02-01_10:00"},
		{name: "approve", key: Decision(ActionApprove, slot, 288129387), want: "approve_2025-02-01_10:00_288129387"},
		{name: "reject", key: Decision(ActionReject, slot, 42), want: "reject_2025-02-01_10:00_42"},
		{name: "back", key: Key{Action: ActionBackToDays}, want: "back_to_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecisionWithUnderscoreInTime(t *testing.T) {
	key, err := Parse("approve_2025-02-01_10_00_am_77")
	require.NoError(t, err)

	assert.Equal(t, ActionApprove, key.Action)
	assert.Equal(t, model.SlotKey{Date: "2025-02-01", Time: "10_00_am"}, key.Slot)
	assert.Equal(t, int64(77), key.RequesterID)
}

func TestParseTime(t *testing.T) {
	key, err := Parse("time_2025-02-01_18:30")
	require.NoError(t, err)

	assert.Equal(t, ActionTime, key.Action)
	assert.Equal(t, "2025-02-01", key.Slot.Date)
	assert.Equal(t, "18:30", key.Slot.Time)
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{
		"",
		"date",
		"date_",
		"date_01.02.2025",
		"time_2025-02-01",
		"approve_2025-02-01_10:00",
		"approve_2025-02-01_10:00_abc",
		"reject_2025-02-01__",
		"book_2025-02-01_10:00_1",
	} {
		t.Run(data, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestEncodeTooLong(t *testing.T) {
	slot := model.SlotKey{Date: "2025-02-01", Time: strings.Repeat("x", 60)}

	_, err := Encode(Decision(ActionApprove, slot, 1))
	assert.ErrorIs(t, err, ErrTooLong)
}
