package repository

import (
	"context"

	"github.com/Freeeeeet/reservation_bot/internal/model"
)

// SlotStore инвентарь открытых слотов
type SlotStore interface {
	Add(ctx context.Context, slot model.SlotKey) error
	Delete(ctx context.Context, slot model.SlotKey) (bool, error)
	ListDates(ctx context.Context) ([]string, error)
	ListTimes(ctx context.Context, date string) ([]string, error)
	IsAvailable(ctx context.Context, slot model.SlotKey) (bool, error)
}

// ReservationStore журнал подтверждённых записей, только добавление
type ReservationStore interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	Exists(ctx context.Context, slot model.SlotKey) (bool, error)
	ListByDate(ctx context.Context, date string) ([]*model.Reservation, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*model.Reservation, error)
}

// TxFunc работа внутри одной транзакции
type TxFunc func(ctx context.Context, slots SlotStore, reservations ReservationStore) error

// Transactor выполняет TxFunc атомарно
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
