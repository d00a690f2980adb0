package transition_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Action string  `json:"action"` // approve | reject | cancel | complete
	Reason *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(bookingID string, actor domain.Actor) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID: bookingID,
		Action:    r.Action,
		Actor:     actor,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *models.BookingResponse {
	b := resp.Booking
	return &models.BookingResponse{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		Date:            b.Date.String(),
		SlotIndex:       b.SlotIndex,
		SlotLabel:       resp.SlotLabel,
		RequesterID:     b.RequesterID,
		Purpose:         b.Purpose,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
