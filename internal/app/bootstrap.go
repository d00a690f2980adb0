package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	"github.com/m04kA/SMC-ReservationService/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/migrator"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// OpenDatabase открывает БД по конфигурации и при auto_migrate применяет миграции
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, log Logger) (*sql.DB, *psqlbuilder.Builder, error) {
	builder, err := psqlbuilder.New(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, storage.Options{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := migrator.Up(db, cfg.Driver, migrations.FS, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	return db, builder, nil
}

// SenderCloser транспорт уведомлений с освобождением ресурсов
type SenderCloser interface {
	notification.Sender
	Close() error
}

type nopCloser struct {
	notification.Sender
}

func (nopCloser) Close() error { return nil }

// NewSender создает транспорт уведомлений по notifications.driver
func NewSender(cfg config.NotificationsConfig, log Logger) (SenderCloser, error) {
	switch cfg.Driver {
	case "amqp":
		publisher, err := notification.NewPublisher(cfg.URL, cfg.Exchange, cfg.Workers)
		if err != nil {
			return nil, err
		}
		return publisher, nil

	case "webhook":
		return nopCloser{notification.NewWebhookClient(cfg.URL, time.Duration(cfg.PublishTimeout)*time.Second)}, nil

	case "log":
		return nopCloser{notification.NewLogNotifier(log)}, nil

	default:
		return nil, fmt.Errorf("unknown notifications driver %q", cfg.Driver)
	}
}
