package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/infra/storage"
	"github.com/m04kA/SMC-ReservationService/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/migrator"
)

type MigrateUpCmd struct{}

func (c *MigrateUpCmd) Run(ctx *Context) error {
	db, err := openRaw(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrator.Up(db, ctx.Config.Database.Driver, migrations.FS, ctx.Log); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Migrations applied")
	return nil
}

type MigrateDownCmd struct {
	Steps int `help:"Number of migrations to roll back." default:"1"`
}

func (c *MigrateDownCmd) Run(ctx *Context) error {
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}

	db, err := openRaw(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrator.Down(db, ctx.Config.Database.Driver, migrations.FS, c.Steps, ctx.Log); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Rolled back %d migration(s)\n", c.Steps)
	return nil
}

// openRaw открывает БД без автоматических миграций
func openRaw(ctx *Context) (*sql.DB, error) {
	cfg := ctx.Config.Database

	openCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return storage.Open(openCtx, storage.Options{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
	})
}
