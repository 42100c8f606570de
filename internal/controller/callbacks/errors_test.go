package callbacks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/reservation_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestDecisionToast(t *testing.T) {
	stale := fmt.Errorf("%w: %w", service.ErrRequestNotFound, service.ErrSlotUnavailable)

	assert.Equal(t, "✅ Запись подтверждена", DecisionToast(true, nil))
	assert.Equal(t, "❌ Заявка отклонена", DecisionToast(false, nil))
	assert.Equal(t, "❌ У вас нет доступа", DecisionToast(true, service.ErrNotAuthorized))
	assert.Equal(t, "ℹ️ Время уже занято", DecisionToast(true, stale))
	assert.Equal(t, "ℹ️ Заявка уже обработана", DecisionToast(false, service.ErrRequestNotFound))
	assert.Equal(t, "⚠️ Запись на это время уже существует", DecisionToast(true, fmt.Errorf("create: %w", service.ErrConflict)))
	assert.Equal(t, "❌ Произошла ошибка", DecisionToast(true, errors.New("connection refused")))
}

func TestRequestToast(t *testing.T) {
	assert.Equal(t, "⏳ Заявка отправлена", RequestToast(nil))
	assert.Equal(t, "😔 Это время уже недоступно", RequestToast(service.ErrSlotUnavailable))
	assert.Equal(t, "❌ Произошла ошибка", RequestToast(errors.New("timeout")))
}

func TestClosesPrompt(t *testing.T) {
	assert.True(t, closesPrompt(nil))
	assert.True(t, closesPrompt(service.ErrRequestNotFound))
	assert.True(t, closesPrompt(fmt.Errorf("%w: %w", service.ErrRequestNotFound, service.ErrSlotUnavailable)))

	assert.False(t, closesPrompt(service.ErrConflict))
	assert.False(t, closesPrompt(service.ErrNotAuthorized))
	assert.False(t, closesPrompt(errors.New("connection refused")))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content and reply markup are exactly the same")))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
}
