package get_availability

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Request модель запроса доступности ресурса на дату
type Request struct {
	ResourceID int64
	Date       types.Date
}

// Response модель ответа с разбиением слотов на свободные и занятые
type Response struct {
	ResourceID        int64
	Date              types.Date
	OperationalStatus string
	Free              []int
	Occupied          []int
	Slots             []Slot // все слоты дня по порядку
}

// Slot модель временного слота
type Slot struct {
	Index int
	Label string // "8:00 - 9:00"
	Free  bool
}
