package model

import "time"

// DateLayout формат даты слота в БД и в callback data
const DateLayout = "2006-01-02"

// Slot открытый слот в инвентаре
type Slot struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // метка времени, сравнивается как есть
	CreatedAt time.Time `json:"created_at"`
}

// SlotKey идентифицирует слот парой (дата, время)
type SlotKey struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (k SlotKey) String() string {
	return k.Date + " " + k.Time
}

// Key возвращает ключ слота
func (s *Slot) Key() SlotKey {
	return SlotKey{Date: s.Date, Time: s.Time}
}
