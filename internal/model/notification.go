package model

import "github.com/google/uuid"

type NotificationKind string

// Подтверждающему
const (
	NotifyDecisionPrompt  NotificationKind = "decision_prompt"   // новая заявка с кнопками
	NotifyApprovalDone    NotificationKind = "approval_done"     // запись подтверждена
	NotifyRejectionDone   NotificationKind = "rejection_done"    // заявка отклонена
	NotifyRequestNotFound NotificationKind = "request_not_found" // заявка уже обработана
	NotifySlotTaken       NotificationKind = "slot_taken"        // слот уже ушёл из инвентаря
	NotifyInconsistency   NotificationKind = "inconsistency"     // запись на слот уже существует
	NotifySlotAdded       NotificationKind = "slot_added"
	NotifySlotReserved    NotificationKind = "slot_reserved" // слот уже в журнале, добавление отклонено
	NotifySlotDeleted     NotificationKind = "slot_deleted"
	NotifyMalformedInput  NotificationKind = "malformed_input"
	NotifyPendingDigest   NotificationKind = "pending_digest"
)

// Заявителю
const (
	NotifyAwaitingApproval NotificationKind = "awaiting_approval"
	NotifySlotUnavailable  NotificationKind = "slot_unavailable"
	NotifyRequestApproved  NotificationKind = "request_approved"
	NotifyRequestRejected  NotificationKind = "request_rejected"
)

// Любому
const (
	NotifyNotAuthorized NotificationKind = "not_authorized"
	NotifyFailure       NotificationKind = "failure"
)

// Choice кнопка с действием. CallbackKey кодирует действие, дату, время и заявителя.
type Choice struct {
	Action      string `json:"action"`
	CallbackKey string `json:"callback_key"`
}

// Notification намерение отправить сообщение. Как его показать, решает шлюз.
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	RecipientID   int64            `json:"recipient_id"`
	Kind          NotificationKind `json:"kind"`
	Slot          SlotKey          `json:"slot"`
	Requester     Requester        `json:"requester"`
	ReservationID int64            `json:"reservation_id,omitempty"`
	Choices       []Choice         `json:"choices,omitempty"`
	Pending       []PendingRequest `json:"pending,omitempty"` // для сводки
	Usage         string           `json:"usage,omitempty"`   // подсказка для неверного ввода
}
