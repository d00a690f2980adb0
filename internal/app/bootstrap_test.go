package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func TestOpenDatabase_SQLiteWithMigrations(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "sqlite"
	cfg.Path = filepath.Join(t.TempDir(), "app.db")

	db, builder, err := OpenDatabase(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", builder.Dialect())

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM resources").Scan(&n))
	assert.Zero(t, n)
}

func TestNewSender(t *testing.T) {
	sender, err := NewSender(config.NotificationsConfig{Driver: "log"}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, sender.Send(context.Background(), notification.Event{BookingID: "b-1"}))
	assert.NoError(t, sender.Close())

	webhook, err := NewSender(config.NotificationsConfig{Driver: "webhook", URL: "http://localhost:0/hook", PublishTimeout: 1}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, webhook.Close())

	_, err = NewSender(config.NotificationsConfig{Driver: "smtp"}, logger.NewNop())
	assert.Error(t, err)
}
