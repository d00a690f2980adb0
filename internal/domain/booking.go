package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingStatus represents the moderation state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// OccupyingStatuses hold a slot exclusively
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}

// AllStatuses lists every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// IsOccupying returns true if a booking in this status holds its slot
func (s BookingStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusApproved
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Action is a moderation command applied to a booking
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// ParseAction validates a raw action string
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject, ActionCancel, ActionComplete:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// transitions is the complete moderation state machine: from -> action -> to.
// Any (status, action) pair missing here is illegal.
var transitions = map[BookingStatus]map[Action]BookingStatus{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionCancel:  StatusCancelled,
	},
	StatusApproved: {
		ActionCancel:   StatusCancelled,
		ActionComplete: StatusCompleted,
	},
}

// NextStatus returns the status reached by applying action to from
func NextStatus(from BookingStatus, action Action) (BookingStatus, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

// CanTransition reports whether some action moves a booking from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Actor is the caller of an operation as asserted by the identity provider
type Actor struct {
	ID       string
	IsAdmin  bool
	IsSystem bool
}

// SystemActor is used by background workers
func SystemActor() Actor {
	return Actor{ID: SystemActorID, IsSystem: true}
}

// CanPerform reports whether actor may apply action to booking b
func (a Actor) CanPerform(action Action, b *Booking) bool {
	switch action {
	case ActionApprove, ActionReject:
		return a.IsAdmin
	case ActionCancel:
		return a.IsAdmin || (a.ID != "" && a.ID == b.RequesterID)
	case ActionComplete:
		return a.IsAdmin || a.IsSystem
	default:
		return false
	}
}

// CanView reports whether actor may read a booking or a requester's bookings
func (a Actor) CanView(requesterID string) bool {
	return a.IsAdmin || a.IsSystem || (a.ID != "" && a.ID == requesterID)
}

// Booking is a reservation of one slot of one resource
type Booking struct {
	ID              string
	ResourceID      int64
	Date            types.Date
	SlotIndex       int
	RequesterID     string
	Purpose         string
	Status          BookingStatus
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Slot returns the slot held by the booking
func (b *Booking) Slot() Slot {
	return Slot{Date: b.Date, Index: b.SlotIndex}
}

// IsOccupying returns true if the booking currently holds its slot
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// BookingsFilter selects bookings for schedule views and exports
type BookingsFilter struct {
	ResourceID *int64
	From       *types.Date // inclusive
	To         *types.Date // inclusive
	Statuses   []BookingStatus
}

// BookingCursor is a keyset position in (date, slot, id) order
type BookingCursor struct {
	Date      types.Date
	SlotIndex int
	ID        string
}

// Cursor returns the keyset position of b
func (b *Booking) Cursor() BookingCursor {
	return BookingCursor{Date: b.Date, SlotIndex: b.SlotIndex, ID: b.ID}
}

// StatusEvent is one entry of a booking's status history
type StatusEvent struct {
	ID         int64
	BookingID  string
	FromStatus *BookingStatus // nil for creation
	ToStatus   BookingStatus
	ActorID    string
	Reason     *string
	CreatedAt  time.Time
}
