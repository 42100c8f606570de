package handlers

import (
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"go.uber.org/zap"
)

// NotificationQueue очередь уведомлений шлюза
type NotificationQueue interface {
	Enqueue(notifications ...model.Notification)
}

// Handlers обработчики текстовых команд
type Handlers struct {
	reservationService *service.ReservationService
	queue              NotificationQueue
	calendarDays       int
	now                func() time.Time
	logger             *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	reservationService *service.ReservationService,
	queue NotificationQueue,
	calendarDays int,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		reservationService: reservationService,
		queue:              queue,
		calendarDays:       calendarDays,
		now:                time.Now,
		logger:             logger,
	}
}
