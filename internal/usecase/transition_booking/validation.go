package transition_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует запрос и возвращает разобранное действие
func validateRequest(req *Request) (domain.Action, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Actor.ID == "" && !req.Actor.IsSystem {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxRejectionReasonLength {
		return "", fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	return action, nil
}

// normalizeReason отбрасывает пустую причину
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
