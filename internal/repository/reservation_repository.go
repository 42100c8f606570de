package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(db base.Querier) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(db)}
}

// Create добавляет подтверждённую запись.
// Если запись на (date, time) уже есть, возвращает ErrConflict.
func (r *ReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	query := `
		INSERT INTO reserved_times (user_id, username, first_name, date, time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		reservation.RequesterID,
		reservation.Handle,
		reservation.DisplayName,
		reservation.Date,
		reservation.Time,
	).Scan(&reservation.ID, &reservation.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create reservation %s: %w", reservation.Key(), ErrConflict)
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// Exists проверяет, есть ли запись на слот
func (r *ReservationRepository) Exists(ctx context.Context, slot model.SlotKey) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reserved_times
			WHERE date = $1 AND time = $2
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, slot.Date, slot.Time).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reservation exists: %w", err)
	}

	return exists, nil
}

// ListByDate получает все записи на дату
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]*model.Reservation, error) {
	query := `
		SELECT id, user_id, username, first_name, date, time, created_at
		FROM reserved_times
		WHERE date = $1
		ORDER BY time, id
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get reservations by date: %w", err)
	}

	return scanReservations(rows)
}

// ListByRequester получает все записи пользователя
func (r *ReservationRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*model.Reservation, error) {
	query := `
		SELECT id, user_id, username, first_name, date, time, created_at
		FROM reserved_times
		WHERE user_id = $1
		ORDER BY date, time
	`

	rows, err := r.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("get reservations by requester: %w", err)
	}

	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]*model.Reservation, error) {
	defer rows.Close()

	var reservations []*model.Reservation
	for rows.Next() {
		var reservation model.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.RequesterID,
			&reservation.Handle,
			&reservation.DisplayName,
			&reservation.Date,
			&reservation.Time,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reservations: %w", err)
	}

	return reservations, nil
}
