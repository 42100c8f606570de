package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/repository/base"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(db base.Querier) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(db)}
}

// Add добавляет слот. Повторное добавление ничего не делает,
// забронированный слот в инвентарь не возвращается.
func (r *SlotRepository) Add(ctx context.Context, slot model.SlotKey) error {
	query := `
		INSERT INTO available_times (date, time)
		SELECT $1, $2
		WHERE NOT EXISTS (
			SELECT 1 FROM reserved_times
			WHERE date = $1 AND time = $2
		)
		ON CONFLICT (date, time) DO NOTHING
	`

	if _, err := r.ExecAffected(ctx, query, slot.Date, slot.Time); err != nil {
		return fmt.Errorf("add slot: %w", err)
	}

	return nil
}

// Delete удаляет слот. Возвращает false, если слота не было.
func (r *SlotRepository) Delete(ctx context.Context, slot model.SlotKey) (bool, error) {
	query := `DELETE FROM available_times WHERE date = $1 AND time = $2`

	affected, err := r.ExecAffected(ctx, query, slot.Date, slot.Time)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return affected > 0, nil
}

// ListDates возвращает даты, на которые есть открытые слоты, по возрастанию
func (r *SlotRepository) ListDates(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT date
		FROM available_times
		ORDER BY date
	`

	return r.scanStrings(ctx, "list dates", query)
}

// ListTimes возвращает открытые слоты на дату в порядке добавления
func (r *SlotRepository) ListTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT time
		FROM available_times
		WHERE date = $1
		ORDER BY id
	`

	return r.scanStrings(ctx, "list times", query, date)
}

// IsAvailable проверяет, что слот открыт
func (r *SlotRepository) IsAvailable(ctx context.Context, slot model.SlotKey) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM available_times
			WHERE date = $1 AND time = $2
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, slot.Date, slot.Time).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slot available: %w", err)
	}

	return exists, nil
}

func (r *SlotRepository) scanStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return values, nil
}
