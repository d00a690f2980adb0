package complete_expired

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListApprovedUpTo(ctx context.Context, date types.Date, after *domain.BookingCursor, limit int) ([]*domain.Booking, error)
}

// Transitioner выполняет переход статуса тем же путем, что и API
type Transitioner interface {
	Execute(ctx context.Context, req *transition_booking.Request) (*transition_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
