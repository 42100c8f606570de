package callbacks

import (
	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"go.uber.org/zap"
)

// handleDecision обрабатывает кнопки "принять" и "отклонить" под заявкой
func (h *Handler) handleDecision(hc *HandlerContext, key callbackkey.Key) {
	approve := key.Action == callbackkey.ActionApprove

	decide := h.reservationService.Reject
	if approve {
		decide = h.reservationService.Approve
	}

	notifications, err := decide(hc.Ctx, hc.TelegramID, key.Slot, key.RequesterID)
	h.queue.Enqueue(notifications...)

	if err != nil && !service.IsExpected(err) {
		h.logger.Error("Decision failed",
			zap.String("action", string(key.Action)),
			zap.String("slot", key.Slot.String()),
			zap.Int64("requester_id", key.RequesterID),
			zap.Error(err),
		)
	}

	hc.Answer(DecisionToast(approve, err))

	if closesPrompt(err) {
		hc.RemoveKeyboard()
	}
}
