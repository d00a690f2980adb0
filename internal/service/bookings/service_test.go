package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/testutil"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	owner = domain.Actor{ID: "u-1"}
	other = domain.Actor{ID: "u-2"}
	admin = domain.Actor{ID: "admin-1", IsAdmin: true}
)

type fixture struct {
	svc      *Service
	bookings *bookingRepo.Repository
	roomID   int64
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewSQLiteStore(t)
	resources := resourceRepo.NewRepository(store.DB, store.Builder)
	bookings := bookingRepo.NewRepository(store.DB, store.Builder)

	now := time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)
	room, err := resources.Create(context.Background(), &domain.Resource{
		Name: "Seminar Room", Category: "room", Capacity: 25,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	svc := NewService(bookings, resources, domain.DefaultSlotConfig(), logger.NewNop())
	return &fixture{svc: svc, bookings: bookings, roomID: room.ID}
}

func (f *fixture) book(t *testing.T, slot int, requester string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	now := time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:          uuid.NewString(),
		ResourceID:  f.roomID,
		Date:        types.Date{Year: 2030, Month: time.March, Day: 4},
		SlotIndex:   slot,
		RequesterID: requester,
		Purpose:     "reading group",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	require.NoError(t, f.bookings.AppendEvent(context.Background(), &domain.StatusEvent{
		BookingID: b.ID, ToStatus: status, ActorID: requester, CreatedAt: now,
	}))
	return b
}

func TestService_GetByID_Access(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := f.book(t, 2, "u-1", domain.StatusPending)

	got, err := f.svc.GetByID(ctx, b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "10:00 - 11:00", got.SlotLabel)
	assert.Equal(t, "2030-03-04", got.Date)

	_, err = f.svc.GetByID(ctx, b.ID, admin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, uuid.NewString(), admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetRequesterBookings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.book(t, 1, "u-1", domain.StatusPending)
	f.book(t, 2, "u-1", domain.StatusApproved)
	f.book(t, 3, "u-2", domain.StatusPending)

	all, err := f.svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{RequesterID: "u-1"}, owner)
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	approved, err := f.svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{
		RequesterID: "u-1", Status: ptr.Ptr("approved"),
	}, admin)
	require.NoError(t, err)
	require.Len(t, approved.Bookings, 1)
	assert.Equal(t, 2, approved.Bookings[0].SlotIndex)

	_, err = f.svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{RequesterID: "u-1"}, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{
		RequesterID: "u-1", Status: ptr.Ptr("unknown"),
	}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetHistory(t *testing.T) {
	f := setup(t)
	b := f.book(t, 4, "u-1", domain.StatusPending)

	history, err := f.svc.GetHistory(context.Background(), b.ID, owner)
	require.NoError(t, err)
	require.Len(t, history.Events, 1)
	assert.Nil(t, history.Events[0].FromStatus)
	assert.Equal(t, "pending", history.Events[0].ToStatus)

	_, err = f.svc.GetHistory(context.Background(), b.ID, other)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_RequesterCalendar(t *testing.T) {
	f := setup(t)
	approved := f.book(t, 0, "u-1", domain.StatusApproved)
	cancelled := f.book(t, 1, "u-1", domain.StatusCancelled)

	body, err := f.svc.RequesterCalendar(context.Background(), "u-1", owner)
	require.NoError(t, err)

	cal := string(body)
	assert.True(t, strings.HasPrefix(cal, "BEGIN:VCALENDAR"))
	assert.Contains(t, cal, approved.ID)
	assert.NotContains(t, cal, cancelled.ID)
	assert.Contains(t, cal, "Seminar Room")
	assert.Contains(t, cal, "DTSTART")

	_, err = f.svc.RequesterCalendar(context.Background(), "u-1", other)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
