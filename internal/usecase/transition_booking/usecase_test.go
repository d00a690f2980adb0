package transition_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	"github.com/m04kA/SMC-ReservationService/internal/testutil"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	now        = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)
	bookingDay = types.Date{Year: 2030, Month: time.March, Day: 4}

	admin     = domain.Actor{ID: "admin-1", IsAdmin: true}
	requester = domain.Actor{ID: "u-1"}
	stranger  = domain.Actor{ID: "u-2"}
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

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type fixture struct {
	uc        *UseCase
	resources *resourceRepo.Repository
	bookings  *bookingRepo.Repository
	notifier  *recordingNotifier
	roomID    int64
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewSQLiteStore(t)
	resources := resourceRepo.NewRepository(store.DB, store.Builder)
	bookings := bookingRepo.NewRepository(store.DB, store.Builder)

	room, err := resources.Create(context.Background(), &domain.Resource{
		Name: "Biology Lab", Category: "lab", Capacity: 18,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	uc := NewUseCase(resources, bookings, txmanager.NewTransactionManager(store.DB), notifier,
		metrics.NewWithRegisterer("test", prometheus.NewRegistry()), domain.DefaultSlotConfig(), logger.NewNop()).
		WithTimeProvider(fixedTime{now.Add(time.Hour)})

	return &fixture{uc: uc, resources: resources, bookings: bookings, notifier: notifier, roomID: room.ID}
}

func (f *fixture) seed(t *testing.T, slot int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID:          uuid.NewString(),
		ResourceID:  f.roomID,
		Date:        bookingDay,
		SlotIndex:   slot,
		RequesterID: requester.ID,
		Purpose:     "microscopy practicum",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func (f *fixture) status(t *testing.T, id string) domain.BookingStatus {
	t.Helper()
	b, err := f.bookings.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

func (f *fixture) do(b *domain.Booking, action string, actor domain.Actor) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Action: action, Actor: actor})
}

func TestExecute_RejectFreesSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := f.seed(t, 3, domain.StatusPending)

	resp, err := f.uc.Execute(ctx, &Request{
		BookingID: b.ID, Action: "reject", Actor: admin, Reason: ptr.Ptr("  lab is reserved for exams "),
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusRejected, resp.Booking.Status)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "lab is reserved for exams", *stored.RejectionReason)

	occupying, err := f.bookings.ListOccupying(ctx, f.roomID, bookingDay)
	require.NoError(t, err)
	assert.Empty(t, occupying)

	// слот снова можно забронировать
	f.seed(t, 3, domain.StatusPending)

	events, err := f.bookings.ListEvents(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].FromStatus)
	assert.Equal(t, domain.StatusPending, *events[0].FromStatus)
	assert.Equal(t, domain.StatusRejected, events[0].ToStatus)
	assert.Equal(t, admin.ID, events[0].ActorID)

	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_ApproveTwiceIsInvalid(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 1, domain.StatusPending)

	_, err := f.do(b, "approve", admin)
	require.NoError(t, err)

	_, err = f.do(b, "approve", admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusApproved, f.status(t, b.ID))
	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_CompleteIsIdempotent(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 2, domain.StatusApproved)

	first, err := f.do(b, "complete", domain.SystemActor())
	require.NoError(t, err)
	assert.True(t, first.Changed)
	assert.Equal(t, domain.StatusCompleted, first.Booking.Status)

	second, err := f.do(b, "complete", admin)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, domain.StatusCompleted, second.Booking.Status)

	events, err := f.bookings.ListEvents(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_TransitionClosure(t *testing.T) {
	actions := []domain.Action{domain.ActionApprove, domain.ActionReject, domain.ActionCancel, domain.ActionComplete}

	for _, from := range domain.AllStatuses {
		for _, action := range actions {
			t.Run(string(from)+"/"+string(action), func(t *testing.T) {
				f := setup(t)
				b := f.seed(t, 0, from)

				resp, err := f.do(b, string(action), admin)

				want, ok := domain.NextStatus(from, action)
				switch {
				case ok:
					require.NoError(t, err)
					assert.Equal(t, want, resp.Booking.Status)
					assert.Equal(t, want, f.status(t, b.ID))
				case from == domain.StatusCompleted && action == domain.ActionComplete:
					require.NoError(t, err)
					assert.False(t, resp.Changed)
				default:
					assert.ErrorIs(t, err, ErrInvalidTransition)
					assert.Equal(t, from, f.status(t, b.ID))
				}
			})
		}
	}
}

func TestExecute_Authorization(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 4, domain.StatusPending)

	_, err := f.do(b, "approve", requester)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.do(b, "reject", requester)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.do(b, "cancel", stranger)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.StatusPending, f.status(t, b.ID))

	resp, err := f.do(b, "cancel", requester)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)

	approved := f.seed(t, 5, domain.StatusApproved)
	_, err = f.do(approved, "complete", requester)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_IllegalTransitionIsReportedBeforeAuthorization(t *testing.T) {
	f := setup(t)

	approved := f.seed(t, 9, domain.StatusApproved)
	_, err := f.do(approved, "approve", requester)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrForbidden)

	rejected := f.seed(t, 10, domain.StatusRejected)
	_, err = f.do(rejected, "cancel", stranger)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed := f.seed(t, 11, domain.StatusCompleted)
	_, err = f.do(completed, "complete", requester)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.Equal(t, domain.StatusApproved, f.status(t, approved.ID))
	assert.Equal(t, domain.StatusRejected, f.status(t, rejected.ID))
	assert.Zero(t, f.notifier.count())
}

func TestExecute_ApproveRevalidatesResource(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 6, domain.StatusPending)

	require.NoError(t, f.resources.UpdateStatus(context.Background(), f.roomID, domain.ResourceMaintenance, now))

	_, err := f.do(b, "approve", admin)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.Equal(t, domain.StatusPending, f.status(t, b.ID))

	// отмена на ресурсе вне available допустима
	_, err = f.do(b, "cancel", admin)
	assert.NoError(t, err)
}

func TestExecute_CancelApprovedFreesSlot(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 8, domain.StatusApproved)

	_, err := f.do(b, "cancel", requester)
	require.NoError(t, err)

	occupying, err := f.bookings.ListOccupying(context.Background(), f.roomID, bookingDay)
	require.NoError(t, err)
	assert.Empty(t, occupying)
}

func TestExecute_BadInput(t *testing.T) {
	f := setup(t)
	b := f.seed(t, 9, domain.StatusPending)

	_, err := f.do(b, "archive", admin)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: uuid.NewString(), Action: "cancel", Actor: admin})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.do(b, "cancel", domain.Actor{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
