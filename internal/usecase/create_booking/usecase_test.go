package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	storetest "github.com/m04kA/SMC-ReservationService/internal/testutil"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	now        = time.Date(2030, 3, 1, 9, 30, 0, 0, time.UTC)
	bookingDay = types.Date{Year: 2030, Month: time.March, Day: 4}
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Dispatch(event notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) sent() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

type fixture struct {
	uc        *UseCase
	resources *resourceRepo.Repository
	bookings  *bookingRepo.Repository
	notifier  *recordingNotifier
	metrics   *metrics.Metrics
	roomID    int64
}

func setup(t *testing.T, opts Options) *fixture {
	t.Helper()

	store := storetest.NewSQLiteStore(t)
	resources := resourceRepo.NewRepository(store.DB, store.Builder)
	bookings := bookingRepo.NewRepository(store.DB, store.Builder)

	room, err := resources.Create(context.Background(), &domain.Resource{
		Name: "Room 101", Category: "room", Capacity: 30,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	if opts.MaxPurposeLength == 0 {
		opts.MaxPurposeLength = domain.MaxPurposeLength
	}

	notifier := &recordingNotifier{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	uc := NewUseCase(resources, bookings, txmanager.NewTransactionManager(store.DB), notifier, m,
		domain.DefaultSlotConfig(), opts, logger.NewNop()).
		WithTimeProvider(fixedTime{now})

	return &fixture{uc: uc, resources: resources, bookings: bookings, notifier: notifier, metrics: m, roomID: room.ID}
}

func (f *fixture) request(slot int, requester string) *Request {
	return &Request{
		ResourceID:  f.roomID,
		Date:        bookingDay,
		SlotIndex:   slot,
		RequesterID: requester,
		Purpose:     "thesis defence rehearsal",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := setup(t, Options{})
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, f.request(3, "u-1"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, "11:00 - 12:00", resp.SlotLabel)
	assert.NotEmpty(t, resp.Booking.ID)

	stored, err := f.bookings.GetByID(ctx, resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "thesis defence rehearsal", stored.Purpose)

	events, err := f.bookings.ListEvents(ctx, resp.Booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.StatusPending, events[0].ToStatus)

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "u-1", sent[0].RequesterID)
	assert.Equal(t, notification.RKBookingPending, sent[0].RoutingKey())

	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(outcomeCreated)))
}

func TestExecute_AutoApprove(t *testing.T) {
	f := setup(t, Options{AutoApprove: true})

	resp, err := f.uc.Execute(context.Background(), f.request(0, "u-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, resp.Booking.Status)
}

func TestExecute_SecondBookingOfSameSlotConflicts(t *testing.T) {
	f := setup(t, Options{})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.request(5, "u-1"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request(5, "u-2"))
	assert.ErrorIs(t, err, ErrSlotAlreadyTaken)
	assert.Len(t, f.notifier.sent(), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(outcomeConflict)))
}

func TestExecute_ConcurrentRequestsYieldExactlyOneBooking(t *testing.T) {
	f := setup(t, Options{})
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.uc.Execute(ctx, f.request(7, "u-"+string(rune('a'+i))))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotAlreadyTaken):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	occupying, err := f.bookings.ListOccupying(ctx, f.roomID, bookingDay)
	require.NoError(t, err)
	assert.Len(t, occupying, 1)
}

func TestExecute_ResourceNotBookable(t *testing.T) {
	f := setup(t, Options{})
	ctx := context.Background()

	require.NoError(t, f.resources.UpdateStatus(ctx, f.roomID, domain.ResourceMaintenance, now))

	_, err := f.uc.Execute(ctx, f.request(2, "u-1"))
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	req := f.request(2, "u-1")
	req.ResourceID = 999
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	assert.Empty(t, f.notifier.sent())
}

func TestExecute_Validation(t *testing.T) {
	f := setup(t, Options{AdvanceBookingDays: 30, MaxPurposeLength: 40})

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"past date", func(r *Request) { r.Date = types.Date{Year: 2030, Month: time.February, Day: 28} }, ErrInvalidDate},
		{"beyond horizon", func(r *Request) { r.Date = types.Date{Year: 2030, Month: time.May, Day: 1} }, ErrDateTooFarInFuture},
		{"slot index too large", func(r *Request) { r.SlotIndex = 12 }, ErrInvalidSlot},
		{"negative slot index", func(r *Request) { r.SlotIndex = -1 }, ErrInvalidSlot},
		{"empty purpose", func(r *Request) { r.Purpose = "   " }, ErrInvalidInput},
		{"purpose too long", func(r *Request) { r.Purpose = strings.Repeat("x", 41) }, ErrInvalidInput},
		{"missing requester", func(r *Request) { r.RequesterID = "" }, ErrInvalidInput},
		{"slot already started today", func(r *Request) {
			r.Date = types.Date{Year: 2030, Month: time.March, Day: 1}
			r.SlotIndex = 1
		}, ErrSlotAlreadyStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(4, "u-1")
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// слот, который начнется позже сегодня, доступен
	req := f.request(2, "u-1")
	req.Date = types.Date{Year: 2030, Month: time.March, Day: 1}
	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
