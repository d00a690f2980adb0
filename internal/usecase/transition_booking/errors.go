package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrForbidden возвращается, когда действие недоступно инициатору
	ErrForbidden = errors.New("transition_booking: action is not allowed for this actor")

	// ErrInvalidTransition возвращается, когда действие недопустимо из текущего статуса
	ErrInvalidTransition = errors.New("transition_booking: invalid status transition")

	// ErrResourceUnavailable возвращается при подтверждении бронирования недоступного ресурса
	ErrResourceUnavailable = errors.New("transition_booking: resource is not available for booking")

	// ErrSlotAlreadyTaken возвращается, когда слот удерживает другое бронирование
	ErrSlotAlreadyTaken = errors.New("transition_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
