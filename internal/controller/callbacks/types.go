package callbacks

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

// Handler обработчик нажатий на inline кнопки
type Handler struct {
	reservationService *service.ReservationService
	queue              NotificationQueue
	calendarDays       int
	now                func() time.Time
	logger             *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	reservationService *service.ReservationService,
	queue NotificationQueue,
	calendarDays int,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		reservationService: reservationService,
		queue:              queue,
		calendarDays:       calendarDays,
		now:                time.Now,
		logger:             logger,
	}
}
