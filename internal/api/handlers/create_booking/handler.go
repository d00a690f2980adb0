package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgSlotAlreadyTaken    = "этот слот только что заняли, выберите другой"
	msgResourceNotFound    = "ресурс не найден"
	msgResourceUnavailable = "ресурс недоступен для бронирования"
	msgInvalidSlot         = "некорректный индекс слота"
	msgInvalidBookingDate  = "дата бронирования уже прошла"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgSlotAlreadyStarted  = "слот уже начался"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: date=%q, error=%v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotAlreadyTaken):
			h.logger.Warn("POST /bookings - Slot already taken: resource_id=%d, date=%s, slot=%d, requester=%s",
				req.ResourceID, req.Date, useCaseReq.SlotIndex, requesterID)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyTaken, msgSlotAlreadyTaken)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings - Resource unavailable: resource_id=%d", req.ResourceID)
			handlers.RespondUnprocessable(w, handlers.CodeResourceUnavailable, msgResourceUnavailable)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: resource_id=%d, slot=%d", req.ResourceID, useCaseReq.SlotIndex)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: resource_id=%d, date=%s", req.ResourceID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: resource_id=%d, date=%s", req.ResourceID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrSlotAlreadyStarted):
			h.logger.Warn("POST /bookings - Slot already started: resource_id=%d, date=%s, slot=%d",
				req.ResourceID, req.Date, useCaseReq.SlotIndex)
			handlers.RespondBadRequest(w, msgSlotAlreadyStarted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: requester=%s, error=%v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%d, requester=%s, error=%v",
				req.ResourceID, requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, resource_id=%d, status=%s",
		result.Booking.ID, result.Booking.ResourceID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
