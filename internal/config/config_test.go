package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
driver = "sqlite"
path = "/tmp/reservations.db"

[slots]
open_hour = 9
close_hour = 18
width_minutes = 30
timezone = "UTC"

[booking]
auto_approve = false
advance_booking_days = 30
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/reservations.db", cfg.Database.DSN())
	assert.Equal(t, 30, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, "log", cfg.Notifications.Driver)

	slots, err := cfg.Slots.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, 18, slots.Count())
	assert.Equal(t, "UTC", slots.Location.String())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("RESERVATION_BOOKING_AUTO_APPROVE", "true")
	t.Setenv("RESERVATION_DATABASE_PATH", "/var/lib/reservations.db")
	t.Setenv("RESERVATION_SERVER_HTTP_PORT", "7000")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.True(t, cfg.Booking.AutoApprove)
	assert.Equal(t, "/var/lib/reservations.db", cfg.Database.Path)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\"\n"},
		{"inverted hours", "[slots]\nopen_hour = 20\nclose_hour = 8\n"},
		{"amqp without url", "[notifications]\ndriver = \"amqp\"\n"},
		{"rate limit without redis", "[rate_limit]\nenabled = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDSN_Postgres(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "reservations", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=reservations sslmode=disable", d.DSN())
}
