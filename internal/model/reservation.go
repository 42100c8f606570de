package model

import "time"

// Reservation подтверждённая запись. После создания не меняется.
type Reservation struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"created_at"`
}

// Key возвращает ключ слота записи
func (r *Reservation) Key() SlotKey {
	return SlotKey{Date: r.Date, Time: r.Time}
}
