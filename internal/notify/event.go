package notify

// ReservationApprovedEvent публикуется после подтверждения записи
type ReservationApprovedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	RequesterID   int64  `json:"requester_id"`
	DisplayName   string `json:"display_name"`
	Handle        string `json:"handle,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ApprovedAt    string `json:"approved_at"`
}
