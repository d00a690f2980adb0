package create_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID  int64      // ID ресурса
	Date        types.Date // Дата бронирования
	SlotIndex   int        // Индекс слота в дне
	RequesterID string     // ID пользователя от провайдера идентификации
	Purpose     string     // Цель бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking   *domain.Booking
	SlotLabel string // "8:00 - 9:00"
}

// Options параметры приема бронирований
type Options struct {
	AutoApprove        bool // новые бронирования сразу approved
	AdvanceBookingDays int  // 0 = без ограничения
	MaxPurposeLength   int
}
