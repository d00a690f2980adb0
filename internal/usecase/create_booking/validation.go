package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, slots domain.SlotConfig, maxPurposeLength int) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.RequesterID) == "" {
		return fmt.Errorf("%w: requesterID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Purpose) == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if maxPurposeLength > 0 && utf8.RuneCountInString(req.Purpose) > maxPurposeLength {
		return fmt.Errorf("%w: purpose must be at most %d characters", ErrInvalidInput, maxPurposeLength)
	}

	if !slots.ValidIndex(req.SlotIndex) {
		return fmt.Errorf("%w: slot index %d, day has %d slots", ErrInvalidSlot, req.SlotIndex, slots.Count())
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date types.Date, today types.Date, advanceBookingDays int) error {
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if date.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateSlotNotStarted проверяет, что слот еще не начался
func validateSlotNotStarted(slot domain.Slot, slots domain.SlotConfig, now time.Time) error {
	start, _ := slot.Bounds(slots)
	if !now.Before(start) {
		return fmt.Errorf("%w: slot %s started at %s", ErrSlotAlreadyStarted,
			domain.SlotLabel(slots, slot), start.Format(domain.TimeFormat))
	}
	return nil
}
