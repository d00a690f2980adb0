package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 9}, d)
	assert.Equal(t, "2025-03-09", d.String())

	_, err = ParseDate("09.03.2025")
	assert.Error(t, err)
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-02", d.String())

	require.NoError(t, d.Scan("2025-02-03"))
	assert.Equal(t, "2025-02-03", d.String())

	require.NoError(t, d.Scan([]byte("2025-04-05T00:00:00Z")))
	assert.Equal(t, "2025-04-05", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDate_Compare(t *testing.T) {
	a := Date{Year: 2025, Month: time.December, Day: 31}
	b := a.AddDays(1)

	assert.Equal(t, "2026-01-01", b.String())
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
}
