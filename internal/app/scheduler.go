package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"go.uber.org/zap"
)

// DigestSource источник сводки заявок
type DigestSource interface {
	PendingDigest() (model.Notification, bool)
}

// NotificationQueue очередь уведомлений
type NotificationQueue interface {
	Enqueue(notifications ...model.Notification)
}

// Scheduler периодически напоминает подтверждающему о заявках без решения
type Scheduler struct {
	source   DigestSource
	queue    NotificationQueue
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler создаёт новый планировщик. interval <= 0 отключает напоминания.
func NewScheduler(source DigestSource, queue NotificationQueue, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		queue:    queue,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены контекста
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("Pending digest disabled")
		return nil
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDigest()
		case <-ctx.Done():
			s.logger.Info("Pending digest task cancelled")
			return nil
		}
	}
}

func (s *Scheduler) sendDigest() {
	digest, ok := s.source.PendingDigest()
	if !ok {
		s.logger.Debug("No pending requests for digest")
		return
	}

	s.logger.Info("Sending pending digest", zap.Int("pending", len(digest.Pending)))
	s.queue.Enqueue(digest)
}
