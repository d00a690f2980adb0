package notification

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Routing keys публикуемых событий
const (
	RKBookingPending   = "booking.pending"
	RKBookingApproved  = "booking.approved"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
	RKBookingCompleted = "booking.completed"
)

// Event уведомление об изменении статуса бронирования
type Event struct {
	RequesterID string    `json:"requester_id"`
	BookingID   string    `json:"booking_id"`
	ResourceID  int64     `json:"resource_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	SlotIndex   int       `json:"slot_index"`
	SlotLabel   string    `json:"slot_label"`
	Status      string    `json:"status"`
	Reason      *string   `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// RoutingKey возвращает ключ маршрутизации для статуса события
func (e Event) RoutingKey() string {
	return "booking." + e.Status
}

// FromBooking строит событие по текущему состоянию бронирования
func FromBooking(b *domain.Booking, slots domain.SlotConfig, at time.Time) Event {
	event := Event{
		RequesterID: b.RequesterID,
		BookingID:   b.ID,
		ResourceID:  b.ResourceID,
		Date:        b.Date.String(),
		SlotIndex:   b.SlotIndex,
		SlotLabel:   domain.SlotLabel(slots, b.Slot()),
		Status:      string(b.Status),
		OccurredAt:  at.UTC(),
	}
	if b.Status == domain.StatusRejected {
		event.Reason = b.RejectionReason
	}
	return event
}
