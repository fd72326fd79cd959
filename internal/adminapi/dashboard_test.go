package adminapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUsesLocalMidnight(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	// 00:30 local is still 23:30 UTC of the previous day.
	at := time.Date(2026, 3, 10, 0, 30, 0, 0, lagos)
	got := startOfDay(at)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, lagos), got)
	assert.Equal(t, lagos, got.Location())

	// Truncate on the same instant lands on the prior local day.
	assert.Equal(t, 9, at.Truncate(24*time.Hour).In(lagos).Day())
}

func TestStartOfDayUTC(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), startOfDay(at))
}
