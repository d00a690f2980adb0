package get_user_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const (
	contentTypeCalendar = "text/calendar; charset=utf-8"

	msgAccessDenied = "нет доступа к календарю пользователя"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	actor, _ := middleware.GetActor(r.Context())

	content, err := h.service.RequesterCalendar(r.Context(), userID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/bookings.ics - Access denied: user_id=%s, actor=%s", userID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /users/{userId}/bookings.ics - Failed to render calendar: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeCalendar)
	w.Header().Set("Content-Disposition", `inline; filename="bookings.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Warn("GET /users/{userId}/bookings.ics - Failed to write response: user_id=%s, error=%v", userID, err)
		return
	}

	h.logger.Info("GET /users/{userId}/bookings.ics - Calendar rendered: user_id=%s, bytes=%d", userID, len(content))
}
