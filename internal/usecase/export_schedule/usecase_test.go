package export_schedule

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/testutil"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func day(d int) types.Date {
	return types.Date{Year: 2030, Month: time.April, Day: d}
}

func TestExecute_OneSheetPerResource(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	resources := resourceRepo.NewRepository(store.DB, store.Builder)
	bookings := bookingRepo.NewRepository(store.DB, store.Builder)
	ctx := context.Background()
	now := time.Date(2030, 4, 1, 8, 0, 0, 0, time.UTC)

	hall, err := resources.Create(ctx, &domain.Resource{Name: "Hall", Category: "room", Capacity: 80,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	lab, err := resources.Create(ctx, &domain.Resource{Name: "Lab: Optics/Lasers", Category: "lab", Capacity: 10,
		OperationalStatus: domain.ResourceMaintenance, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	seed := func(resourceID int64, d, slot int, status domain.BookingStatus) {
		require.NoError(t, bookings.Create(ctx, &domain.Booking{
			ID: uuid.NewString(), ResourceID: resourceID, Date: day(d), SlotIndex: slot,
			RequesterID: "u-1", Purpose: "lab work", Status: status, CreatedAt: now, UpdatedAt: now,
		}))
	}
	seed(hall.ID, 2, 0, domain.StatusApproved)
	seed(hall.ID, 3, 1, domain.StatusPending)
	seed(hall.ID, 3, 2, domain.StatusCancelled)
	seed(hall.ID, 20, 0, domain.StatusApproved) // вне периода
	seed(lab.ID, 2, 4, domain.StatusCompleted)

	uc := NewUseCase(resources, bookings, domain.DefaultSlotConfig(), logger.NewNop())
	resp, err := uc.Execute(ctx, &Request{From: day(1), To: day(7)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Rows)
	assert.Equal(t, "schedule_2030-04-01_2030-04-07.xlsx", resp.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(resp.Content))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 2)
	assert.Equal(t, sheetName(hall), sheets[0])
	assert.NotContains(t, sheets[1], ":")
	assert.NotContains(t, sheets[1], "/")

	hallRows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, hallRows, 3)
	assert.Equal(t, "Дата", hallRows[0][0])
	assert.Equal(t, []string{"2030-04-02", "0", "8:00 - 9:00", "approved"}, hallRows[1][:4])
	assert.Equal(t, "pending", hallRows[2][3])

	labRows, err := f.GetRows(sheets[1])
	require.NoError(t, err)
	require.Len(t, labRows, 2)
	assert.Equal(t, "completed", labRows[1][3])

	withInactive, err := uc.Execute(ctx, &Request{From: day(1), To: day(7), IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 4, withInactive.Rows)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := NewUseCase(nil, nil, domain.DefaultSlotConfig(), logger.NewNop())

	tests := []struct {
		name string
		req  Request
	}{
		{"missing bounds", Request{}},
		{"inverted", Request{From: day(10), To: day(2)}},
		{"too long", Request{From: types.Date{Year: 2029, Month: time.January, Day: 1}, To: day(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSheetName_TruncatesAndSanitizes(t *testing.T) {
	name := sheetName(&domain.Resource{ID: 7, Name: "Very long resource name [wing B] / floor 3"})
	assert.LessOrEqual(t, len([]rune(name)), maxSheetNameRunes)
	assert.NotContains(t, name, "[")
	assert.NotContains(t, name, "/")
}
