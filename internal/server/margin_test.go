package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_PlainDateIsDateOnly(t *testing.T) {
	got, dateOnly, err := parseDate("2026-03-14")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_RFC3339MidnightKeepsTimeComponent(t *testing.T) {
	// An explicit midnight timestamp is not a date-only bound and must not be
	// stretched to the end of the day.
	got, dateOnly, err := parseDate("2026-03-14T00:00:00Z")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_RFC3339WithOffset(t *testing.T) {
	got, dateOnly, err := parseDate("2026-03-14T10:30:00+05:30")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, time.Date(2026, 3, 14, 5, 0, 0, 0, time.UTC), got)
}

func TestParseDate_EmptyMeansUnset(t *testing.T) {
	got, dateOnly, err := parseDate("   ")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.True(t, got.IsZero())
}

func TestParseDate_Garbage(t *testing.T) {
	_, _, err := parseDate("14/03/2026")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	end := endOfDay(start)
	assert.Equal(t, start.Add(24*time.Hour-time.Nanosecond), end)
	assert.Equal(t, 14, end.Day())
}
