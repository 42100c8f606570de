package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/repository"
)

// memStore хранилище в памяти с семантикой postgres схемы:
// UNIQUE(date, time) в обеих таблицах и откат транзакции при ошибке.
type memStore struct {
	mu           sync.Mutex
	slots        []model.SlotKey
	reservations []*model.Reservation
	nextID       int64

	failAvailable error
	failCreate    error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) Add(_ context.Context, slot model.SlotKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addLocked(slot)
	return nil
}

func (m *memStore) addLocked(slot model.SlotKey) {
	for _, r := range m.reservations {
		if r.Key() == slot {
			return
		}
	}
	for _, s := range m.slots {
		if s == slot {
			return
		}
	}
	m.slots = append(m.slots, slot)
}

func (m *memStore) Delete(_ context.Context, slot model.SlotKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.slots {
		if s == slot {
			m.slots = append(m.slots[:i:i], m.slots[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListDates(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var dates []string
	for _, s := range m.slots {
		if !seen[s.Date] {
			seen[s.Date] = true
			dates = append(dates, s.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *memStore) ListTimes(_ context.Context, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var times []string
	for _, s := range m.slots {
		if s.Date == date {
			times = append(times, s.Time)
		}
	}
	return times, nil
}

func (m *memStore) IsAvailable(_ context.Context, slot model.SlotKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAvailable != nil {
		return false, m.failAvailable
	}
	for _, s := range m.slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}
	for _, existing := range m.reservations {
		if existing.Key() == r.Key() {
			return fmt.Errorf("create reservation %s: %w", r.Key(), repository.ErrConflict)
		}
	}

	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	stored := *r
	m.reservations = append(m.reservations, &stored)
	return nil
}

func (m *memStore) Exists(_ context.Context, slot model.SlotKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reservations {
		if r.Key() == slot {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListByDate(_ context.Context, date string) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListByRequester(_ context.Context, requesterID int64) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

// WithinTx откатывает изменения, если fn вернула ошибку
func (m *memStore) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	m.mu.Lock()
	slots := append([]model.SlotKey(nil), m.slots...)
	reservations := append([]*model.Reservation(nil), m.reservations...)
	nextID := m.nextID
	m.mu.Unlock()

	if err := fn(ctx, m, m); err != nil {
		m.mu.Lock()
		m.slots = slots
		m.reservations = reservations
		m.nextID = nextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) reservationsFor(slot model.SlotKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.reservations {
		if r.Key() == slot {
			n++
		}
	}
	return n
}

// forceReservation записывает в журнал в обход сервиса
func (m *memStore) forceReservation(slot model.SlotKey, requesterID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.reservations = append(m.reservations, &model.Reservation{
		ID:          m.nextID,
		RequesterID: requesterID,
		Date:        slot.Date,
		Time:        slot.Time,
	})
}

var errStorage = errors.New("connection refused")
