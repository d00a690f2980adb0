package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/infra/storage"
	"github.com/m04kA/SMC-ReservationService/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/migrator"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Store тестовое хранилище на sqlite во временном каталоге
type Store struct {
	DB      *dbmetrics.DB
	Builder *psqlbuilder.Builder
}

// NewSQLiteStore создает файл БД, применяет миграции и закрывает соединение по окончании теста
func NewSQLiteStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reservations.db")

	db, err := storage.Open(context.Background(), storage.Options{
		Driver: psqlbuilder.DialectSQLite,
		DSN:    path,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrator.Up(db, psqlbuilder.DialectSQLite, migrations.FS, logger.NewNop()))

	return &Store{
		DB:      dbmetrics.Wrap(db, nil),
		Builder: psqlbuilder.MustNew(psqlbuilder.DialectSQLite),
	}
}
