package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceUnavailable возвращается, когда ресурс на обслуживании или выведен из эксплуатации
	ErrResourceUnavailable = errors.New("create_booking: resource is not available for booking")

	// ErrSlotAlreadyTaken возвращается, когда слот уже занят другим бронированием
	ErrSlotAlreadyTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidSlot возвращается при индексе слота вне расписания дня
	ErrInvalidSlot = errors.New("create_booking: invalid slot index")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotAlreadyStarted возвращается при попытке забронировать уже начавшийся слот
	ErrSlotAlreadyStarted = errors.New("create_booking: slot has already started")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
