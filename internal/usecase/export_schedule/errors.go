package export_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде выгрузки
	ErrInvalidInput = errors.New("export_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_schedule: internal error")
)
