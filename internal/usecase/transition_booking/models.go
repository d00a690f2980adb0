package transition_booking

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID string
	Action    string       // approve | reject | cancel | complete
	Actor     domain.Actor // инициатор от провайдера идентификации
	Reason    *string      // причина отказа или отмены (опционально)
}

// Response модель ответа с бронированием после перехода
type Response struct {
	Booking   *domain.Booking
	SlotLabel string
	Changed   bool // false для повторного завершения уже завершенного бронирования
}
