package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Freeeeeet/reservation_bot/internal/callbackkey"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const approverID int64 = 288129387

var (
	slot = model.SlotKey{Date: "2025-02-01", Time: "10:00"}

	alice = model.Requester{ID: 1, DisplayName: "Alice", Handle: "alice"}
	bob   = model.Requester{ID: 2, DisplayName: "Bob"}
)

type fixture struct {
	svc     *ReservationService
	store   *memStore
	pending *tracker.Tracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	pending := tracker.New()
	svc := NewReservationService(store, store, store, pending, approverID, zap.NewNop())

	return &fixture{svc: svc, store: store, pending: pending}
}

func (f *fixture) addSlot(t *testing.T, s model.SlotKey) {
	t.Helper()
	_, err := f.svc.AddSlot(context.Background(), approverID, s.Date, s.Time)
	require.NoError(t, err)
}

func (f *fixture) available(t *testing.T, s model.SlotKey) bool {
	t.Helper()
	ok, err := f.store.IsAvailable(context.Background(), s)
	require.NoError(t, err)
	return ok
}

func kinds(notifications []model.Notification) []model.NotificationKind {
	out := make([]model.NotificationKind, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, n.Kind)
	}
	return out
}

func TestAddAndDeleteSlotAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := model.SlotKey{Date: "2025-02-01", Time: "11:00"}

	f.addSlot(t, slot)
	f.addSlot(t, slot)
	f.addSlot(t, other)

	times, err := f.svc.ListTimes(ctx, slot.Date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, times)

	_, err = f.svc.DeleteSlot(ctx, approverID, slot.Date, slot.Time)
	require.NoError(t, err)
	_, err = f.svc.DeleteSlot(ctx, approverID, slot.Date, slot.Time)
	require.NoError(t, err)

	times, err = f.svc.ListTimes(ctx, slot.Date)
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00"}, times)
}

func TestAddSlotThenAvailable(t *testing.T) {
	f := newFixture(t)

	f.addSlot(t, slot)

	assert.True(t, f.available(t, slot))
}

func TestAddSlotAfterApproveKeepsSlotReserved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	notifications, err := f.svc.AddSlot(ctx, approverID, slot.Date, slot.Time)
	assert.ErrorIs(t, err, ErrAlreadyReserved)
	assert.True(t, IsExpected(err))
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotifySlotReserved, notifications[0].Kind)
	assert.Equal(t, approverID, notifications[0].RecipientID)
	assert.Equal(t, slot, notifications[0].Slot)

	assert.False(t, f.available(t, slot))
	assert.Equal(t, 1, f.store.reservationsFor(slot))

	notifications, err = f.svc.Request(ctx, slot, bob)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []model.NotificationKind{model.NotifySlotUnavailable}, kinds(notifications))
	assert.Equal(t, 0, f.pending.Len())
}

func TestListDatesAscending(t *testing.T) {
	f := newFixture(t)

	f.addSlot(t, model.SlotKey{Date: "2025-03-01", Time: "10:00"})
	f.addSlot(t, model.SlotKey{Date: "2025-02-01", Time: "10:00"})
	f.addSlot(t, model.SlotKey{Date: "2025-02-01", Time: "12:00"})

	dates, err := f.svc.ListDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-01", "2025-03-01"}, dates)
}

func TestAdminOperationsRequireApprover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	notifications, err := f.svc.DeleteSlot(ctx, alice.ID, slot.Date, slot.Time)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotifyNotAuthorized, notifications[0].Kind)
	assert.Equal(t, alice.ID, notifications[0].RecipientID)
	assert.Equal(t, model.SlotKey{}, notifications[0].Slot, "denial must not echo slot details")
	assert.True(t, f.available(t, slot))

	_, err = f.svc.AddSlot(ctx, alice.ID, "2025-02-02", "10:00")
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.False(t, f.available(t, model.SlotKey{Date: "2025-02-02", Time: "10:00"}))
}

func TestAdminMalformedInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		date  string
		clock string
	}{
		{name: "bad date", date: "01.02.2025", clock: "10:00"},
		{name: "bad time", date: "2025-02-01", clock: "ten"},
		{name: "empty", date: "", clock: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications, err := f.svc.AddSlot(ctx, approverID, tt.date, tt.clock)
			assert.ErrorIs(t, err, ErrMalformedInput)
			require.Len(t, notifications, 1)
			assert.Equal(t, model.NotifyMalformedInput, notifications[0].Kind)
			assert.Equal(t, UsageAddSlot, notifications[0].Usage)
		})
	}

	dates, err := f.svc.ListDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestRequestUnavailableSlot(t *testing.T) {
	f := newFixture(t)

	notifications, err := f.svc.Request(context.Background(), slot, alice)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []model.NotificationKind{model.NotifySlotUnavailable}, kinds(notifications))
	assert.Equal(t, 0, f.pending.Len())
}

func TestRequestPromptsApprover(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, slot)

	notifications, err := f.svc.Request(context.Background(), slot, alice)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	prompt := notifications[0]
	assert.Equal(t, model.NotifyDecisionPrompt, prompt.Kind)
	assert.Equal(t, approverID, prompt.RecipientID)
	assert.Equal(t, alice, prompt.Requester)
	require.Len(t, prompt.Choices, 2)

	key, err := callbackkey.Parse(prompt.Choices[0].CallbackKey)
	require.NoError(t, err)
	assert.Equal(t, callbackkey.Decision(callbackkey.ActionApprove, slot, alice.ID), key)

	key, err = callbackkey.Parse(prompt.Choices[1].CallbackKey)
	require.NoError(t, err)
	assert.Equal(t, callbackkey.ActionReject, key.Action)

	ack := notifications[1]
	assert.Equal(t, model.NotifyAwaitingApproval, ack.Kind)
	assert.Equal(t, alice.ID, ack.RecipientID)

	assert.True(t, f.available(t, slot), "slot stays in inventory while pending")
}

func TestRequestTwiceBySameRequester(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, slot)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	notifications, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	assert.Equal(t, []model.NotificationKind{model.NotifyAwaitingApproval}, kinds(notifications))
	assert.Equal(t, 1, f.pending.Len())
}

func TestApproveScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	notifications, err := f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	assert.Equal(t, model.NotifyRequestApproved, notifications[0].Kind)
	assert.Equal(t, alice.ID, notifications[0].RecipientID)
	assert.NotZero(t, notifications[0].ReservationID)
	assert.Equal(t, model.NotifyApprovalDone, notifications[1].Kind)
	assert.Equal(t, approverID, notifications[1].RecipientID)

	assert.False(t, f.available(t, slot))
	assert.Equal(t, 1, f.store.reservationsFor(slot))

	reservations, err := f.svc.MyReservations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "alice", reservations[0].Handle)
	assert.Equal(t, "Alice", reservations[0].DisplayName)

	notifications, err = f.svc.Request(ctx, slot, bob)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []model.NotificationKind{model.NotifySlotUnavailable}, kinds(notifications))
}

func TestApproveReplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	notifications, err := f.svc.Approve(ctx, approverID, slot, alice.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Equal(t, []model.NotificationKind{model.NotifyRequestNotFound}, kinds(notifications))
	assert.Equal(t, 1, f.store.reservationsFor(slot))
}

func TestApproveLeavesOtherContendersPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Request(ctx, slot, bob)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	_, ok := f.pending.FindByKey(slot, bob.ID)
	assert.True(t, ok, "approve does not auto-reject other contenders")
}

func TestRejectStaleContenderAfterApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Request(ctx, slot, bob)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	notifications, err := f.svc.Reject(ctx, approverID, slot, bob.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []model.NotificationKind{model.NotifySlotTaken}, kinds(notifications))
	assert.Equal(t, approverID, notifications[0].RecipientID)

	assert.Equal(t, 1, f.store.reservationsFor(slot))
	assert.Equal(t, 0, f.pending.Len())
}

func TestApproveStaleContenderAfterApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Request(ctx, slot, bob)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	notifications, err := f.svc.Approve(ctx, approverID, slot, bob.ID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, []model.NotificationKind{model.NotifySlotTaken}, kinds(notifications))

	reservations, err := f.svc.MyReservations(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, reservations)
}

func TestConcurrentApprovalsOfContenders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	const contenders = 20
	for i := int64(1); i <= contenders; i++ {
		_, err := f.svc.Request(ctx, slot, model.Requester{ID: i, DisplayName: "user"})
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := int64(1); i <= contenders; i++ {
		wg.Add(1)
		go func(requesterID int64) {
			defer wg.Done()
			_, err := f.svc.Approve(ctx, approverID, slot, requesterID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case IsExpected(err):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, contenders-1, refused)
	assert.Equal(t, 1, f.store.reservationsFor(slot))
	assert.False(t, f.available(t, slot))
}

func TestRejectKeepsSlotOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)

	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	notifications, err := f.svc.Reject(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.NotificationKind{model.NotifyRequestRejected, model.NotifyRejectionDone}, kinds(notifications))
	assert.Equal(t, alice.ID, notifications[0].RecipientID)

	assert.True(t, f.available(t, slot))
	assert.Equal(t, 0, f.store.reservationsFor(slot))

	_, err = f.svc.Request(ctx, slot, bob)
	assert.NoError(t, err, "slot is requestable after rejection")

	notifications, err = f.svc.Reject(ctx, approverID, slot, alice.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Equal(t, []model.NotificationKind{model.NotifyRequestNotFound}, kinds(notifications))
}

func TestDecisionsRequireApprover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)
	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, bob.ID, slot, alice.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	_, err = f.svc.Reject(ctx, bob.ID, slot, alice.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, ok := f.pending.FindByKey(slot, alice.ID)
	assert.True(t, ok)
	assert.True(t, f.available(t, slot))
}

func TestApproveConflictIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)
	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	f.store.forceReservation(slot, bob.ID)

	notifications, err := f.svc.Approve(ctx, approverID, slot, alice.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, []model.NotificationKind{model.NotifyInconsistency}, kinds(notifications))

	assert.True(t, f.available(t, slot), "inventory untouched on conflict")
	_, ok := f.pending.FindByKey(slot, alice.ID)
	assert.True(t, ok, "pending request untouched on conflict")
	assert.Equal(t, 1, f.store.reservationsFor(slot))
}

func TestApproveStorageFailureCommitsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)
	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	f.store.failCreate = errStorage

	notifications, err := f.svc.Approve(ctx, approverID, slot, alice.ID)
	assert.ErrorIs(t, err, errStorage)
	assert.False(t, IsExpected(err))
	assert.Equal(t, []model.NotificationKind{model.NotifyFailure}, kinds(notifications))

	assert.True(t, f.available(t, slot))
	_, ok := f.pending.FindByKey(slot, alice.ID)
	assert.True(t, ok)
}

func TestRequestStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failAvailable = errStorage

	notifications, err := f.svc.Request(context.Background(), slot, alice)
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, []model.NotificationKind{model.NotifyFailure}, kinds(notifications))
	assert.Equal(t, 0, f.pending.Len())
}

func TestPendingAndDigest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, ok := f.svc.PendingDigest()
	assert.False(t, ok)

	f.addSlot(t, slot)
	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)

	_, err = f.svc.Pending(alice.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	pending, err := f.svc.Pending(approverID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	digest, ok := f.svc.PendingDigest()
	require.True(t, ok)
	assert.Equal(t, model.NotifyPendingDigest, digest.Kind)
	assert.Equal(t, approverID, digest.RecipientID)
	assert.Len(t, digest.Pending, 1)
}

func TestReservationsByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSlot(t, slot)
	_, err := f.svc.Request(ctx, slot, alice)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approverID, slot, alice.ID)
	require.NoError(t, err)

	_, err = f.svc.ReservationsByDate(ctx, alice.ID, slot.Date)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.ReservationsByDate(ctx, approverID, "tomorrow")
	assert.ErrorIs(t, err, ErrMalformedInput)

	reservations, err := f.svc.ReservationsByDate(ctx, approverID, slot.Date)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, alice.ID, reservations[0].RequesterID)
}
