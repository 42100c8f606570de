package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/reservation_bot/internal/model"
)

// Tracker хранит заявки, ожидающие решения. Только в памяти:
// после рестарта заявки теряются и пользователь запрашивает слот заново.
type Tracker struct {
	mu     sync.RWMutex
	byDate map[string][]model.PendingRequest // date -> заявки в порядке поступления
	now    func() time.Time
}

// New создаёт пустой трекер
func New() *Tracker {
	return &Tracker{
		byDate: make(map[string][]model.PendingRequest),
		now:    time.Now,
	}
}

// Submit добавляет заявку. Наличие слота в инвентаре не проверяется.
// Повторная заявка того же пользователя на тот же слот не дублируется,
// в этом случае возвращается существующая запись и false.
func (t *Tracker) Submit(slot model.SlotKey, requester model.Requester) (model.PendingRequest, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, req := range t.byDate[slot.Date] {
		if req.Slot.Time == slot.Time && req.Requester.ID == requester.ID {
			return req, false
		}
	}

	req := model.PendingRequest{
		Slot:        slot,
		Requester:   requester,
		RequestedAt: t.now(),
	}
	t.byDate[slot.Date] = append(t.byDate[slot.Date], req)

	return req, true
}

// FindByKey ищет живую заявку по (дата, время, заявитель)
func (t *Tracker) FindByKey(slot model.SlotKey, requesterID int64) (model.PendingRequest, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, req := range t.byDate[slot.Date] {
		if req.Slot.Time == slot.Time && req.Requester.ID == requesterID {
			return req, true
		}
	}
	return model.PendingRequest{}, false
}

// Resolve удаляет ровно одну заявку. Другие заявки на тот же слот не трогаются.
func (t *Tracker) Resolve(slot model.SlotKey, requesterID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	requests := t.byDate[slot.Date]
	for i, req := range requests {
		if req.Slot.Time != slot.Time || req.Requester.ID != requesterID {
			continue
		}

		rest := make([]model.PendingRequest, 0, len(requests)-1)
		rest = append(rest, requests[:i]...)
		rest = append(rest, requests[i+1:]...)

		if len(rest) == 0 {
			delete(t.byDate, slot.Date)
		} else {
			t.byDate[slot.Date] = rest
		}
		return true
	}
	return false
}

// Contenders возвращает все заявки на слот в порядке поступления
func (t *Tracker) Contenders(slot model.SlotKey) []model.PendingRequest {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []model.PendingRequest
	for _, req := range t.byDate[slot.Date] {
		if req.Slot.Time == slot.Time {
			out = append(out, req)
		}
	}
	return out
}

// List возвращает копию всех заявок: по дате, внутри даты в порядке поступления
func (t *Tracker) List() []model.PendingRequest {
	t.mu.RLock()
	defer t.mu.RUnlock()

	dates := make([]string, 0, len(t.byDate))
	for date := range t.byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var out []model.PendingRequest
	for _, date := range dates {
		out = append(out, t.byDate[date]...)
	}
	return out
}

// Len количество заявок
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, requests := range t.byDate {
		n += len(requests)
	}
	return n
}
