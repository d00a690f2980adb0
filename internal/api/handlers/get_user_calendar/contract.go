package get_user_calendar

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type CalendarService interface {
	RequesterCalendar(ctx context.Context, requesterID string, actor domain.Actor) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
