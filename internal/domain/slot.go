package domain

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Slot is one fixed-width interval of a calendar day. It is computed, never stored.
type Slot struct {
	Date  types.Date
	Index int
}

// SlotsForDay yields every slot of date in order.
// The sequence is lazy and can be ranged over any number of times.
func SlotsForDay(cfg SlotConfig, date types.Date) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for i := 0; i < cfg.Count(); i++ {
			if !yield(Slot{Date: date, Index: i}) {
				return
			}
		}
	}
}

// SlotIndices returns all slot indices of a configured day
func SlotIndices(cfg SlotConfig) []int {
	indices := make([]int, 0, cfg.Count())
	for s := range SlotsForDay(cfg, types.Date{}) {
		indices = append(indices, s.Index)
	}
	return indices
}

// Bounds returns the start and end instants of the slot in the configured location
func (s Slot) Bounds(cfg SlotConfig) (time.Time, time.Time) {
	dayStart := s.Date.In(cfg.location())
	start := dayStart.Add(time.Duration(cfg.OpenHour)*time.Hour +
		time.Duration(s.Index*cfg.WidthMinutes)*time.Minute)
	return start, start.Add(time.Duration(cfg.WidthMinutes) * time.Minute)
}

// SlotLabel renders the slot as "8:00 - 9:00"
func SlotLabel(cfg SlotConfig, s Slot) string {
	startMin := cfg.OpenHour*60 + s.Index*cfg.WidthMinutes
	endMin := startMin + cfg.WidthMinutes
	return fmt.Sprintf("%d:%02d - %d:%02d", startMin/60, startMin%60, endMin/60, endMin%60)
}
