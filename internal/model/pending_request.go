package model

import "time"

// Requester пользователь, который запрашивает слот
type Requester struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"` // может быть пустым
}

// PendingRequest заявка, ожидающая решения подтверждающего
type PendingRequest struct {
	Slot        SlotKey   `json:"slot"`
	Requester   Requester `json:"requester"`
	RequestedAt time.Time `json:"requested_at"`
}
