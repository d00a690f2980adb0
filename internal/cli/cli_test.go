package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "cli.db")

	out := &bytes.Buffer{}
	return &Context{Config: cfg, Log: logger.NewNop(), Out: out}, out
}

func TestResourceCommands(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&MigrateUpCmd{}).Run(ctx))
	require.NoError(t, (&ResourceAddCmd{Name: "Lab 7", Category: "lab", Capacity: 12}).Run(ctx))
	require.NoError(t, (&ResourceAddCmd{Name: "Hall", Category: "room", Capacity: 120}).Run(ctx))
	assert.Error(t, (&ResourceAddCmd{Name: "Hall", Category: "room", Capacity: 10}).Run(ctx))

	require.NoError(t, (&ResourceSetStatusCmd{ID: 1, Status: "maintenance"}).Run(ctx))
	assert.Contains(t, out.String(), "Resource 1 is now maintenance")

	out.Reset()
	require.NoError(t, (&ResourceListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Hall")
	assert.NotContains(t, out.String(), "Lab 7")

	out.Reset()
	require.NoError(t, (&ResourceListCmd{All: true}).Run(ctx))
	assert.Contains(t, out.String(), "Lab 7")
}

func TestCompleteExpiredAndExport(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&ResourceAddCmd{Name: "Lab 7", Category: "lab", Capacity: 12}).Run(ctx))

	out.Reset()
	require.NoError(t, (&CompleteExpiredCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Completed 0 booking(s), 0 failed")

	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, (&ExportCmd{From: "2030-03-01", To: "2030-03-07", Out: path}).Run(ctx))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	assert.NotEmpty(t, f.GetSheetList())

	assert.Error(t, (&ExportCmd{From: "2030-03-07", To: "2030-03-01"}).Run(ctx))
	assert.Error(t, (&MigrateDownCmd{Steps: 0}).Run(ctx))
}
