package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/keylock"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/repository"
	"github.com/Freeeeeet/reservation_bot/internal/tracker"
	"go.uber.org/zap"
)

// ReservationService переводит слоты между состояниями
// "открыт", "ожидает решения" и "забронирован".
//
// Каждая операция возвращает уведомления для шлюза. Ошибка возвращается
// для классификации исхода: уведомления об этом исходе уже в списке,
// поэтому вызывающему достаточно отправить их.
type ReservationService struct {
	slots        repository.SlotStore
	reservations repository.ReservationStore
	tx           repository.Transactor
	pending      *tracker.Tracker
	locks        *keylock.Locker
	approverID   int64
	logger       *zap.Logger
}

func NewReservationService(
	slots repository.SlotStore,
	reservations repository.ReservationStore,
	tx repository.Transactor,
	pending *tracker.Tracker,
	approverID int64,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		slots:        slots,
		reservations: reservations,
		tx:           tx,
		pending:      pending,
		locks:        keylock.New(),
		approverID:   approverID,
		logger:       logger,
	}
}

// IsApprover проверяет, что пользователь - подтверждающий
func (s *ReservationService) IsApprover(userID int64) bool {
	return userID == s.approverID
}

// ApproverID идентификатор подтверждающего
func (s *ReservationService) ApproverID() int64 {
	return s.approverID
}

func (s *ReservationService) lockSlot(slot model.SlotKey) func() {
	return s.locks.Lock(slot.String())
}

// Request создаёт заявку на открытый слот.
// Слот остаётся в инвентаре до решения подтверждающего.
func (s *ReservationService) Request(ctx context.Context, slot model.SlotKey, requester model.Requester) ([]model.Notification, error) {
	unlock := s.lockSlot(slot)
	defer unlock()

	available, err := s.slots.IsAvailable(ctx, slot)
	if err != nil {
		s.logger.Error("Failed to check slot availability",
			zap.String("slot", slot.String()),
			zap.Error(err),
		)
		return failure(requester.ID, slot), fmt.Errorf("check slot: %w", err)
	}

	if !available {
		s.logger.Info("Requested slot is not available",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requester.ID),
		)
		return []model.Notification{notice(requester.ID, model.NotifySlotUnavailable, slot)}, ErrSlotUnavailable
	}

	req, created := s.pending.Submit(slot, requester)
	ack := requestNotice(requester.ID, model.NotifyAwaitingApproval, req)

	if !created {
		// Заявка уже у подтверждающего, второй раз не присылаем
		return []model.Notification{ack}, nil
	}

	prompt, err := decisionPrompt(s.approverID, req)
	if err != nil {
		s.pending.Resolve(slot, requester.ID)
		s.logger.Error("Failed to build decision prompt",
			zap.String("slot", slot.String()),
			zap.Error(err),
		)
		return failure(requester.ID, slot), fmt.Errorf("build decision prompt: %w", err)
	}

	s.logger.Info("Reservation requested",
		zap.String("slot", slot.String()),
		zap.Int64("requester_id", requester.ID),
		zap.String("requester", requester.DisplayName),
		zap.Int("contenders", len(s.pending.Contenders(slot))),
	)

	return []model.Notification{prompt, ack}, nil
}

// Approve подтверждает заявку: запись в журнал и удаление слота
// выполняются одной транзакцией под блокировкой слота.
// Остальные заявки на этот слот не трогаются.
func (s *ReservationService) Approve(ctx context.Context, actorID int64, slot model.SlotKey, requesterID int64) ([]model.Notification, error) {
	if !s.IsApprover(actorID) {
		s.logger.Info("Unauthorized approve attempt", zap.Int64("actor_id", actorID))
		return notAuthorized(actorID), ErrNotAuthorized
	}

	unlock := s.lockSlot(slot)
	defer unlock()

	req, ok := s.pending.FindByKey(slot, requesterID)
	if !ok {
		s.logger.Info("Approve for missing request",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
		)
		return []model.Notification{notice(actorID, model.NotifyRequestNotFound, slot)}, ErrRequestNotFound
	}

	stale, err := s.isStale(ctx, slot)
	if err != nil {
		return failure(actorID, slot), err
	}
	if stale {
		s.pending.Resolve(slot, requesterID)
		s.logger.Info("Approve for slot already taken",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
		)
		return []model.Notification{requestNotice(actorID, model.NotifySlotTaken, req)}, errStaleRequest
	}

	reservation := &model.Reservation{
		RequesterID: req.Requester.ID,
		Handle:      req.Requester.Handle,
		DisplayName: req.Requester.DisplayName,
		Date:        slot.Date,
		Time:        slot.Time,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, slots repository.SlotStore, reservations repository.ReservationStore) error {
		if err := reservations.Create(ctx, reservation); err != nil {
			return err
		}

		removed, err := slots.Delete(ctx, slot)
		if err != nil {
			return err
		}
		if !removed {
			return errStaleRequest
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrConflict):
		s.logger.Error("Reservation already exists for pending slot",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
			zap.Error(err),
		)
		return []model.Notification{requestNotice(actorID, model.NotifyInconsistency, req)}, err
	case errors.Is(err, errStaleRequest):
		s.pending.Resolve(slot, requesterID)
		return []model.Notification{requestNotice(actorID, model.NotifySlotTaken, req)}, err
	default:
		s.logger.Error("Failed to approve reservation",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
			zap.Error(err),
		)
		return failure(actorID, slot), fmt.Errorf("approve reservation: %w", err)
	}

	s.pending.Resolve(slot, requesterID)

	s.logger.Info("Reservation approved",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("slot", slot.String()),
		zap.Int64("requester_id", requesterID),
		zap.Int("stale_contenders", len(s.pending.Contenders(slot))),
	)

	confirmed := requestNotice(req.Requester.ID, model.NotifyRequestApproved, req)
	confirmed.ReservationID = reservation.ID
	done := requestNotice(actorID, model.NotifyApprovalDone, req)
	done.ReservationID = reservation.ID

	return []model.Notification{confirmed, done}, nil
}

// Reject отклоняет заявку. Инвентарь и журнал не меняются,
// слот остаётся доступным для других.
func (s *ReservationService) Reject(ctx context.Context, actorID int64, slot model.SlotKey, requesterID int64) ([]model.Notification, error) {
	if !s.IsApprover(actorID) {
		s.logger.Info("Unauthorized reject attempt", zap.Int64("actor_id", actorID))
		return notAuthorized(actorID), ErrNotAuthorized
	}

	unlock := s.lockSlot(slot)
	defer unlock()

	req, ok := s.pending.FindByKey(slot, requesterID)
	if !ok {
		s.logger.Info("Reject for missing request",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
		)
		return []model.Notification{notice(actorID, model.NotifyRequestNotFound, slot)}, ErrRequestNotFound
	}

	stale, err := s.isStale(ctx, slot)
	if err != nil {
		return failure(actorID, slot), err
	}

	s.pending.Resolve(slot, requesterID)

	if stale {
		s.logger.Info("Reject for slot already taken",
			zap.String("slot", slot.String()),
			zap.Int64("requester_id", requesterID),
		)
		return []model.Notification{requestNotice(actorID, model.NotifySlotTaken, req)}, errStaleRequest
	}

	s.logger.Info("Reservation rejected",
		zap.String("slot", slot.String()),
		zap.Int64("requester_id", requesterID),
	)

	return []model.Notification{
		requestNotice(req.Requester.ID, model.NotifyRequestRejected, req),
		requestNotice(actorID, model.NotifyRejectionDone, req),
	}, nil
}

// isStale заявка устарела, если слот уже ушёл из инвентаря
func (s *ReservationService) isStale(ctx context.Context, slot model.SlotKey) (bool, error) {
	available, err := s.slots.IsAvailable(ctx, slot)
	if err != nil {
		s.logger.Error("Failed to check slot availability",
			zap.String("slot", slot.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("check slot: %w", err)
	}
	return !available, nil
}

// ListDates даты с открытыми слотами
func (s *ReservationService) ListDates(ctx context.Context) ([]string, error) {
	return s.slots.ListDates(ctx)
}

// ListTimes открытые слоты на дату
func (s *ReservationService) ListTimes(ctx context.Context, date string) ([]string, error) {
	return s.slots.ListTimes(ctx, date)
}

// MyReservations подтверждённые записи пользователя
func (s *ReservationService) MyReservations(ctx context.Context, requesterID int64) ([]*model.Reservation, error) {
	return s.reservations.ListByRequester(ctx, requesterID)
}

// ReservationsByDate записи на дату, только для подтверждающего
func (s *ReservationService) ReservationsByDate(ctx context.Context, actorID int64, date string) ([]*model.Reservation, error) {
	if !s.IsApprover(actorID) {
		return nil, ErrNotAuthorized
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.reservations.ListByDate(ctx, date)
}

// Pending текущие заявки, только для подтверждающего
func (s *ReservationService) Pending(actorID int64) ([]model.PendingRequest, error) {
	if !s.IsApprover(actorID) {
		return nil, ErrNotAuthorized
	}
	return s.pending.List(), nil
}

// PendingDigest сводка заявок для подтверждающего.
// Возвращает false, если заявок нет.
func (s *ReservationService) PendingDigest() (model.Notification, bool) {
	pending := s.pending.List()
	if len(pending) == 0 {
		return model.Notification{}, false
	}

	n := notice(s.approverID, model.NotifyPendingDigest, model.SlotKey{})
	n.Pending = pending
	return n, true
}
