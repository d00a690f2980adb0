package transition_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	transitionBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgBookingNotFound     = "бронирование не найдено"
	msgForbidden           = "действие недоступно для текущего пользователя"
	msgInvalidTransition   = "действие недопустимо для текущего статуса бронирования"
	msgResourceUnavailable = "ресурс недоступен для бронирования"
	msgSlotAlreadyTaken    = "слот уже занят другим бронированием"
	msgInvalidInput        = "некорректное действие или причина"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/transitions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	actor, _ := middleware.GetActor(r.Context())

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/transitions - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, transitionBooking.ErrForbidden):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Forbidden: booking_id=%s, action=%s, actor=%s",
				bookingID, req.Action, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Invalid transition: booking_id=%s, action=%s",
				bookingID, req.Action)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, transitionBooking.ErrSlotAlreadyTaken):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Slot already taken: booking_id=%s", bookingID)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyTaken, msgSlotAlreadyTaken)

		case errors.Is(err, transitionBooking.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Resource unavailable: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, handlers.CodeResourceUnavailable, msgResourceUnavailable)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{bookingId}/transitions - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{bookingId}/transitions - Failed to apply action: booking_id=%s, action=%s, error=%v",
				bookingID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/transitions - Action applied: booking_id=%s, action=%s, status=%s, changed=%t",
		bookingID, req.Action, result.Booking.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
