package create_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"` // "2025-10-15"
	SlotIndex  *int   `json:"slotIndex"`
	Purpose    string `json:"purpose"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Заявитель берется из контекста аутентификации, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID string) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slotIndex := -1
	if r.SlotIndex != nil {
		slotIndex = *r.SlotIndex
	}

	return &createBooking.Request{
		ResourceID:  r.ResourceID,
		Date:        date,
		SlotIndex:   slotIndex,
		RequesterID: requesterID,
		Purpose:     r.Purpose,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
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
