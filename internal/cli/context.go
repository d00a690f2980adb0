package cli

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/app"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

// Context общие зависимости команд reservationctl
type Context struct {
	Config *config.Config
	Log    *logger.Logger
	Out    io.Writer
}

// store открытая БД с репозиториями
type store struct {
	db        *sql.DB
	wrapped   *dbmetrics.DB
	resources *resourceRepo.Repository
	bookings  *bookingRepo.Repository
	slots     domain.SlotConfig
}

func (s *store) Close() error {
	return s.db.Close()
}

func (c *Context) open() (*store, error) {
	slots, err := c.Config.Slots.ToDomain()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, builder, err := app.OpenDatabase(ctx, c.Config.Database, c.Log)
	if err != nil {
		return nil, err
	}

	wrapped := dbmetrics.Wrap(db, nil)
	return &store{
		db:        db,
		wrapped:   wrapped,
		resources: resourceRepo.NewRepository(wrapped, builder),
		bookings:  bookingRepo.NewRepository(wrapped, builder),
		slots:     slots,
	}, nil
}
