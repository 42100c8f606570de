package notify

import (
	"context"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
	"go.uber.org/zap"
)

// Sender доставляет одно уведомление
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// EventPublisher публикует доменные события во внешнюю шину
type EventPublisher interface {
	PublishReservationApproved(ctx context.Context, event ReservationApprovedEvent) error
}

// drainTimeout сколько Run досылает очередь после отмены контекста
const drainTimeout = 5 * time.Second

// Dispatcher отправляет уведомления в фоне.
// Ошибки доставки только логируются: переход состояния уже выполнен.
type Dispatcher struct {
	queue     chan model.Notification
	sender    Sender
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
	drainFor  time.Duration
}

// NewDispatcher создаёт диспетчер. publisher может быть nil.
func NewDispatcher(sender Sender, publisher EventPublisher, buffer int, logger *zap.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	return &Dispatcher{
		queue:     make(chan model.Notification, buffer),
		sender:    sender,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		drainFor:  drainTimeout,
	}
}

// Enqueue ставит уведомления в очередь и никогда не блокирует.
// При переполненной очереди уведомление отбрасывается.
func (d *Dispatcher) Enqueue(notifications ...model.Notification) {
	for _, n := range notifications {
		select {
		case d.queue <- n:
		default:
			d.logDropped("Notification queue is full, dropping", n)
		}
	}
}

// Run обрабатывает очередь до отмены контекста
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Notification dispatcher started")

	for {
		// Отмена важнее очереди: после неё работает только drain
		if ctx.Err() != nil {
			d.drain()
			return nil
		}

		select {
		case n := <-d.queue:
			d.deliver(ctx, n)
		case <-ctx.Done():
		}
	}
}

// drain доставляет то, что осталось в очереди, пока не выйдет drainFor.
// После дедлайна оставшиеся уведомления логируются по одному.
func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), d.drainFor)
	defer cancel()

	delivered, dropped := 0, 0
	for {
		select {
		case n := <-d.queue:
			if ctx.Err() != nil {
				d.logDropped("Dispatcher stopped, dropping notification", n)
				dropped++
				continue
			}
			d.deliver(ctx, n)
			delivered++
		default:
			d.logger.Info("Notification dispatcher stopped",
				zap.Int("drained", delivered),
				zap.Int("dropped", dropped),
			)
			return
		}
	}
}

func (d *Dispatcher) logDropped(msg string, n model.Notification) {
	d.logger.Error(msg,
		zap.String("notification_id", n.ID.String()),
		zap.String("kind", string(n.Kind)),
		zap.Int64("recipient_id", n.RecipientID),
	)
}

func (d *Dispatcher) deliver(ctx context.Context, n model.Notification) {
	if err := d.sender.Send(ctx, n); err != nil {
		d.logger.Error("Failed to send notification",
			zap.String("notification_id", n.ID.String()),
			zap.String("kind", string(n.Kind)),
			zap.Int64("chat_id", n.RecipientID),
			zap.Error(err),
		)
	}

	if n.Kind != model.NotifyRequestApproved || d.publisher == nil {
		return
	}

	event := ReservationApprovedEvent{
		ReservationID: n.ReservationID,
		RequesterID:   n.Requester.ID,
		DisplayName:   n.Requester.DisplayName,
		Handle:        n.Requester.Handle,
		Date:          n.Slot.Date,
		Time:          n.Slot.Time,
		ApprovedAt:    d.now().UTC().Format(time.RFC3339),
	}
	if err := d.publisher.PublishReservationApproved(ctx, event); err != nil {
		d.logger.Error("Failed to publish reservation event",
			zap.Int64("reservation_id", n.ReservationID),
			zap.Error(err),
		)
	}
}
