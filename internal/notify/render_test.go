package notify

import (
	"testing"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDecisionPrompt(t *testing.T) {
	n := model.Notification{
		Kind:      model.NotifyDecisionPrompt,
		Slot:      model.SlotKey{Date: "2025-02-01", Time: "10:00"},
		Requester: model.Requester{ID: 1, DisplayName: "Alice", Handle: "alice"},
		Choices: []model.Choice{
			{Action: "approve", CallbackKey: "approve_2025-02-01_10:00_1"},
			{Action: "reject", CallbackKey: "reject_2025-02-01_10:00_1"},
		},
	}

	text, markup := Render(n)

	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "@alice")
	assert.Contains(t, text, "01.02.2025")
	assert.Contains(t, text, "10:00")

	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "✅ Принять", row[0].Text)
	assert.Equal(t, "approve_2025-02-01_10:00_1", row[0].CallbackData)
	assert.Equal(t, "❌ Отклонить", row[1].Text)
}

func TestRenderWithoutChoicesHasNoKeyboard(t *testing.T) {
	_, markup := Render(model.Notification{Kind: model.NotifyAwaitingApproval})
	assert.Nil(t, markup)
}

func TestRenderNotAuthorizedHidesSlot(t *testing.T) {
	text, _ := Render(model.Notification{
		Kind: model.NotifyNotAuthorized,
		Slot: model.SlotKey{Date: "2025-02-01", Time: "10:00"},
	})
	assert.NotContains(t, text, "10:00")
}

func TestRenderDigest(t *testing.T) {
	text, _ := Render(model.Notification{
		Kind: model.NotifyPendingDigest,
		Pending: []model.PendingRequest{
			{Slot: model.SlotKey{Date: "2025-02-01", Time: "10:00"}, Requester: model.Requester{DisplayName: "Alice"}},
			{Slot: model.SlotKey{Date: "2025-02-01", Time: "10:00"}, Requester: model.Requester{DisplayName: "Bob", Handle: "bob"}},
		},
	})

	assert.Contains(t, text, "(2)")
	assert.Contains(t, text, "Alice (нет)")
	assert.Contains(t, text, "Bob (@bob)")
}

func TestRenderMalformedUsesUsage(t *testing.T) {
	text, _ := Render(model.Notification{Kind: model.NotifyMalformedInput, Usage: "/add_time 2025-01-30 10:00"})
	assert.Contains(t, text, "/add_time 2025-01-30 10:00")
}

func TestRenderSlotReserved(t *testing.T) {
	text, markup := Render(model.Notification{
		Kind: model.NotifySlotReserved,
		Slot: model.SlotKey{Date: "2025-02-01", Time: "10:00"},
	})

	assert.Equal(t, "ℹ️ Время 10:00 на 01.02.2025 (Сб) уже забронировано, повторно не добавлено.", text)
	assert.Nil(t, markup)
}
