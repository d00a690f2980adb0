package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SlotConfig describes how a calendar day is partitioned into bookable slots.
// Slots start at OpenHour and are WidthMinutes wide; the last slot ends at or before CloseHour.
type SlotConfig struct {
	OpenHour     int
	CloseHour    int
	WidthMinutes int
	Location     *time.Location
}

// DefaultSlotConfig returns the hourly 08:00-20:00 layout in UTC
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		OpenHour:     DefaultOpenHour,
		CloseHour:    DefaultCloseHour,
		WidthMinutes: DefaultSlotWidthMinutes,
		Location:     time.UTC,
	}
}

// Validate checks that the configuration yields at least one slot
func (c SlotConfig) Validate() error {
	if c.OpenHour < 0 || c.OpenHour > 23 {
		return fmt.Errorf("open hour %d out of range", c.OpenHour)
	}
	if c.CloseHour < 1 || c.CloseHour > 24 {
		return fmt.Errorf("close hour %d out of range", c.CloseHour)
	}
	if c.CloseHour <= c.OpenHour {
		return fmt.Errorf("close hour %d must be after open hour %d", c.CloseHour, c.OpenHour)
	}
	if c.WidthMinutes < MinSlotWidthMinutes || c.WidthMinutes > MaxSlotWidthMinutes {
		return fmt.Errorf("slot width %d minutes out of range", c.WidthMinutes)
	}
	if c.Count() == 0 {
		return fmt.Errorf("slot width %d minutes does not fit between %d:00 and %d:00",
			c.WidthMinutes, c.OpenHour, c.CloseHour)
	}
	return nil
}

// Count returns the number of whole slots in a day
func (c SlotConfig) Count() int {
	if c.WidthMinutes <= 0 || c.CloseHour <= c.OpenHour {
		return 0
	}
	return (c.CloseHour - c.OpenHour) * 60 / c.WidthMinutes
}

// ValidIndex reports whether index addresses a slot of the configured day
func (c SlotConfig) ValidIndex(index int) bool {
	return index >= 0 && index < c.Count()
}

func (c SlotConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Today returns the calendar date of now in the configured location
func (c SlotConfig) Today(now time.Time) types.Date {
	return types.NewDate(now.In(c.location()))
}
