package transition_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubUseCase struct {
	got  *transitionBooking.Request
	resp *transitionBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc TransitionBookingUseCase, role, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/bookings/{bookingId}/transitions",
		middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/transitions", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "a-1")
	if role != "" {
		req.Header.Set(middleware.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Applied(t *testing.T) {
	reason := "room is double-booked"
	uc := &stubUseCase{resp: &transitionBooking.Response{
		Booking: &domain.Booking{
			ID:              "b-1",
			ResourceID:      3,
			RequesterID:     "u-1",
			Status:          domain.StatusRejected,
			RejectionReason: &reason,
		},
		SlotLabel: "8:00 - 9:00",
		Changed:   true,
	}}

	rec := serve(uc, middleware.RoleAdmin, `{"action":"reject","reason":"room is double-booked"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "b-1", uc.got.BookingID)
	assert.Equal(t, "reject", uc.got.Action)
	assert.Equal(t, domain.Actor{ID: "a-1", IsAdmin: true}, uc.got.Actor)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rejected", body.Status)
	require.NotNil(t, body.RejectionReason)
	assert.Equal(t, reason, *body.RejectionReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", transitionBooking.ErrBookingNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"forbidden", transitionBooking.ErrForbidden, http.StatusForbidden, handlers.CodeForbidden},
		{"invalid transition", transitionBooking.ErrInvalidTransition, http.StatusConflict, handlers.CodeInvalidTransition},
		{"slot taken", transitionBooking.ErrSlotAlreadyTaken, http.StatusConflict, handlers.CodeSlotAlreadyTaken},
		{"resource unavailable", transitionBooking.ErrResourceUnavailable, http.StatusUnprocessableEntity, handlers.CodeResourceUnavailable},
		{"invalid input", transitionBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeBadRequest},
		{"internal", transitionBooking.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, "", `{"action":"approve"}`)
			assert.Equal(t, tt.status, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}
