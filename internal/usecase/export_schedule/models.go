package export_schedule

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// MaxRangeDays максимальная длина выгружаемого периода
const MaxRangeDays = 366

// Request модель запроса выгрузки расписания
type Request struct {
	From            types.Date
	To              types.Date // включительно
	IncludeInactive bool       // включать rejected и cancelled
}

// Response модель ответа с xlsx файлом
type Response struct {
	FileName string
	Content  []byte
	Rows     int
}
