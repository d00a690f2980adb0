package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// GetRequesterBookingsRequest запрос на получение бронирований пользователя
type GetRequesterBookingsRequest struct {
	RequesterID string  `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string    `json:"id"`
	ResourceID      int64     `json:"resourceId"`
	Date            string    `json:"date"` // "2025-10-15"
	SlotIndex       int       `json:"slotIndex"`
	SlotLabel       string    `json:"slotLabel"` // "8:00 - 9:00"
	RequesterID     string    `json:"requesterId"`
	Purpose         string    `json:"purpose"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatusEventResponse запись истории статусов
type StatusEventResponse struct {
	FromStatus *string   `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorId"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryResponse ответ с историей статусов бронирования
type HistoryResponse struct {
	BookingID string                `json:"bookingId"`
	Events    []StatusEventResponse `json:"events"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, cfg domain.SlotConfig) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		Date:            b.Date.String(),
		SlotIndex:       b.SlotIndex,
		SlotLabel:       domain.SlotLabel(cfg, b.Slot()),
		RequesterID:     b.RequesterID,
		Purpose:         b.Purpose,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, cfg domain.SlotConfig) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b, cfg))
	}

	return resp
}

// FromDomainHistory конвертирует историю статусов в DTO
func FromDomainHistory(bookingID string, events []*domain.StatusEvent) *HistoryResponse {
	resp := &HistoryResponse{
		BookingID: bookingID,
		Events:    make([]StatusEventResponse, 0, len(events)),
	}

	for _, e := range events {
		item := StatusEventResponse{
			ToStatus:  string(e.ToStatus),
			ActorID:   e.ActorID,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
		if e.FromStatus != nil {
			from := string(*e.FromStatus)
			item.FromStatus = &from
		}
		resp.Events = append(resp.Events, item)
	}

	return resp
}
