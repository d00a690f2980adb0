package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

var (
	// ErrUnsupportedDialect возвращается для неизвестного драйвера БД
	ErrUnsupportedDialect = errors.New("migrator: unsupported dialect")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Up применяет все непримененные миграции из каталога dialect внутри fsys
// Каталог называется так же, как диалект: postgres или sqlite
func Up(db *sql.DB, dialect string, fsys fs.FS, log Logger) error {
	m, err := newMigrate(db, dialect, fsys)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: Up - %v", ErrMigrate, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: Up - read version: %v", ErrMigrate, err)
	}
	if dirty {
		log.Warn("Migrations: database is dirty at version=%d", version)
	} else {
		log.Info("Migrations: database at version=%d (dialect=%s)", version, dialect)
	}

	return nil
}

// Down откатывает steps последних миграций
func Down(db *sql.DB, dialect string, fsys fs.FS, steps int, log Logger) error {
	m, err := newMigrate(db, dialect, fsys)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: Down - %v", ErrMigrate, err)
	}

	log.Info("Migrations: rolled back %d step(s) (dialect=%s)", steps, dialect)
	return nil
}

func newMigrate(db *sql.DB, dialect string, fsys fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(fsys, dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: load sources: %v", ErrMigrate, err)
	}

	var driver database.Driver
	switch dialect {
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite":
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: create driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return nil, fmt.Errorf("%w: init: %v", ErrMigrate, err)
	}

	return m, nil
}
