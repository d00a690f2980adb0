package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestSlotsForDay_Default(t *testing.T) {
	cfg := DefaultSlotConfig()
	date := types.Date{Year: 2025, Month: time.May, Day: 12}

	var labels []string
	for s := range SlotsForDay(cfg, date) {
		assert.Equal(t, date, s.Date)
		labels = append(labels, SlotLabel(cfg, s))
	}

	require.Len(t, labels, 12)
	assert.Equal(t, "8:00 - 9:00", labels[0])
	assert.Equal(t, "19:00 - 20:00", labels[11])
}

func TestSlotsForDay_Restartable(t *testing.T) {
	seq := SlotsForDay(DefaultSlotConfig(), types.Date{Year: 2025, Month: 1, Day: 1})

	first, second := 0, 0
	for range seq {
		first++
	}
	for s := range seq {
		second++
		if s.Index == 2 {
			break
		}
	}

	assert.Equal(t, 12, first)
	assert.Equal(t, 3, second)
}

func TestSlotConfig_HalfHour(t *testing.T) {
	cfg := SlotConfig{OpenHour: 9, CloseHour: 11, WidthMinutes: 30}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Count())
	assert.Equal(t, "9:30 - 10:00", SlotLabel(cfg, Slot{Index: 1}))
	assert.True(t, cfg.ValidIndex(3))
	assert.False(t, cfg.ValidIndex(4))
	assert.False(t, cfg.ValidIndex(-1))
}

func TestSlotConfig_Validate(t *testing.T) {
	assert.Error(t, SlotConfig{OpenHour: 20, CloseHour: 8, WidthMinutes: 60}.Validate())
	assert.Error(t, SlotConfig{OpenHour: 8, CloseHour: 9, WidthMinutes: 90}.Validate())
	assert.Error(t, SlotConfig{OpenHour: 8, CloseHour: 20, WidthMinutes: 1}.Validate())
	assert.NoError(t, DefaultSlotConfig().Validate())
}

func TestSlot_Bounds(t *testing.T) {
	cfg := DefaultSlotConfig()
	start, end := Slot{Date: types.Date{Year: 2025, Month: 6, Day: 1}, Index: 3}.Bounds(cfg)

	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), end)
}

func TestComputeAvailability(t *testing.T) {
	cfg := DefaultSlotConfig()
	date := types.Date{Year: 2025, Month: 6, Day: 1}
	room := &Resource{ID: 7, OperationalStatus: ResourceAvailable}

	t.Run("no bookings means all slots free", func(t *testing.T) {
		a := ComputeAvailability(cfg, room, date, nil)
		assert.Equal(t, SlotIndices(cfg), a.Free)
		assert.Empty(t, a.Occupied)
	})

	t.Run("occupying bookings remove slots", func(t *testing.T) {
		bookings := []*Booking{
			{SlotIndex: 3, Status: StatusPending},
			{SlotIndex: 5, Status: StatusApproved},
			{SlotIndex: 6, Status: StatusRejected},
			{SlotIndex: 7, Status: StatusCancelled},
		}
		a := ComputeAvailability(cfg, room, date, bookings)
		assert.Equal(t, []int{3, 5}, a.Occupied)
		assert.False(t, a.IsFree(3))
		assert.False(t, a.IsFree(5))
		assert.True(t, a.IsFree(6))
		assert.Len(t, a.Free, 10)
	})

	t.Run("maintenance has no free slots", func(t *testing.T) {
		closed := &Resource{ID: 8, OperationalStatus: ResourceMaintenance}
		a := ComputeAvailability(cfg, closed, date, nil)
		assert.Empty(t, a.Free)
		assert.Empty(t, a.Occupied)
	})
}
