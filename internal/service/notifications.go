package service

import (
	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/google/uuid"
)

// Подсказки для неверного ввода команд администратора
const (
	UsageAddSlot    = "/add_time 2025-01-30 10:00"
	UsageDeleteSlot = "/delete_time 2025-01-30 10:00"
)

func notice(recipientID int64, kind model.NotificationKind, slot model.SlotKey) model.Notification {
	return model.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Kind:        kind,
		Slot:        slot,
	}
}

func requestNotice(recipientID int64, kind model.NotificationKind, req model.PendingRequest) model.Notification {
	n := notice(recipientID, kind, req.Slot)
	n.Requester = req.Requester
	return n
}

// decisionPrompt сообщение подтверждающему с кнопками "принять" и "отклонить"
func decisionPrompt(approverID int64, req model.PendingRequest) (model.Notification, error) {
	n := requestNotice(approverID, model.NotifyDecisionPrompt, req)

	for _, action := range []callbackkey.Action{callbackkey.ActionApprove, callbackkey.ActionReject} {
		data, err := callbackkey.Encode(callbackkey.Decision(action, req.Slot, req.Requester.ID))
		if err != nil {
			return model.Notification{}, err
		}
		n.Choices = append(n.Choices, model.Choice{Action: string(action), CallbackKey: data})
	}

	return n, nil
}

func notAuthorized(actorID int64) []model.Notification {
	return []model.Notification{notice(actorID, model.NotifyNotAuthorized, model.SlotKey{})}
}

func failure(actorID int64, slot model.SlotKey) []model.Notification {
	return []model.Notification{notice(actorID, model.NotifyFailure, slot)}
}

func malformed(actorID int64, usage string) []model.Notification {
	n := notice(actorID, model.NotifyMalformedInput, model.SlotKey{})
	n.Usage = usage
	return []model.Notification{n}
}
