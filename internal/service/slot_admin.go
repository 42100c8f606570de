package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/repository"
	"go.uber.org/zap"
)

// timeLayout формат метки времени, который принимают команды администратора
const timeLayout = "15:04"

// ParseSlot проверяет дату и время из команды администратора
func ParseSlot(date, clock string) (model.SlotKey, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if err := validateDate(date); err != nil {
		return model.SlotKey{}, err
	}
	if _, err := time.Parse(timeLayout, clock); err != nil {
		return model.SlotKey{}, fmt.Errorf("%w: time %q", ErrMalformedInput, clock)
	}

	return model.SlotKey{Date: date, Time: clock}, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q", ErrMalformedInput, date)
	}
	return nil
}

// AddSlot открывает слот. Повторное добавление не ошибка.
// Слот, на который уже есть запись, не открывается: ErrAlreadyReserved.
func (s *ReservationService) AddSlot(ctx context.Context, actorID int64, date, clock string) ([]model.Notification, error) {
	if !s.IsApprover(actorID) {
		s.logger.Info("Unauthorized add slot attempt", zap.Int64("actor_id", actorID))
		return notAuthorized(actorID), ErrNotAuthorized
	}

	slot, err := ParseSlot(date, clock)
	if err != nil {
		return malformed(actorID, UsageAddSlot), err
	}

	unlock := s.lockSlot(slot)
	defer unlock()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, slots repository.SlotStore, reservations repository.ReservationStore) error {
		reserved, err := reservations.Exists(ctx, slot)
		if err != nil {
			return err
		}
		if reserved {
			return ErrAlreadyReserved
		}
		return slots.Add(ctx, slot)
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyReserved):
		s.logger.Info("Slot is already reserved, not added", zap.String("slot", slot.String()))
		return []model.Notification{notice(actorID, model.NotifySlotReserved, slot)}, err
	default:
		s.logger.Error("Failed to add slot", zap.String("slot", slot.String()), zap.Error(err))
		return failure(actorID, slot), fmt.Errorf("add slot: %w", err)
	}

	s.logger.Info("Slot added", zap.String("slot", slot.String()))

	return []model.Notification{notice(actorID, model.NotifySlotAdded, slot)}, nil
}

// DeleteSlot закрывает слот. Удаление несуществующего слота не ошибка.
// Заявки на слот остаются и при решении будут считаться устаревшими.
func (s *ReservationService) DeleteSlot(ctx context.Context, actorID int64, date, clock string) ([]model.Notification, error) {
	if !s.IsApprover(actorID) {
		s.logger.Info("Unauthorized delete slot attempt", zap.Int64("actor_id", actorID))
		return notAuthorized(actorID), ErrNotAuthorized
	}

	slot, err := ParseSlot(date, clock)
	if err != nil {
		return malformed(actorID, UsageDeleteSlot), err
	}

	unlock := s.lockSlot(slot)
	defer unlock()

	removed, err := s.slots.Delete(ctx, slot)
	if err != nil {
		s.logger.Error("Failed to delete slot", zap.String("slot", slot.String()), zap.Error(err))
		return failure(actorID, slot), err
	}

	s.logger.Info("Slot deleted",
		zap.String("slot", slot.String()),
		zap.Bool("existed", removed),
	)

	return []model.Notification{notice(actorID, model.NotifySlotDeleted, slot)}, nil
}
