package domain

import (
	"sort"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Availability is the free/occupied projection of one resource on one date.
// It is derived from the booking store on every read.
type Availability struct {
	ResourceID int64
	Date       types.Date
	Free       []int
	Occupied   []int
}

// IsFree reports whether the slot index is in the free set
func (a *Availability) IsFree(index int) bool {
	for _, i := range a.Free {
		if i == index {
			return true
		}
	}
	return false
}

// ComputeAvailability derives free and occupied slot indices.
// A resource that is not bookable has no free slots regardless of bookings.
func ComputeAvailability(cfg SlotConfig, resource *Resource, date types.Date, bookings []*Booking) *Availability {
	occupiedSet := make(map[int]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Status.IsOccupying() && cfg.ValidIndex(b.SlotIndex) {
			occupiedSet[b.SlotIndex] = struct{}{}
		}
	}

	occupied := make([]int, 0, len(occupiedSet))
	for i := range occupiedSet {
		occupied = append(occupied, i)
	}
	sort.Ints(occupied)

	free := make([]int, 0, cfg.Count())
	if resource.IsBookable() {
		for s := range SlotsForDay(cfg, date) {
			if _, taken := occupiedSet[s.Index]; !taken {
				free = append(free, s.Index)
			}
		}
	}

	return &Availability{
		ResourceID: resource.ID,
		Date:       date,
		Free:       free,
		Occupied:   occupied,
	}
}
