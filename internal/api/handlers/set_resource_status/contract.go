package set_resource_status

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/resources/models"
)

type ResourceService interface {
	SetOperationalStatus(ctx context.Context, id int64, req *models.SetStatusRequest) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
