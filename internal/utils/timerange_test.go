package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "09:00 - 12:00", FormatTimeRange(9, 3))
	assert.Equal(t, "00:00 - 06:00", FormatTimeRange(0, 6))
	assert.Equal(t, "18:00 - 24:00", FormatTimeRange(18, 6))
}

func TestParseTimeRange(t *testing.T) {
	start, end, err := ParseTimeRange("09:00 - 12:00")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour, start)
	assert.Equal(t, 12*time.Hour, end)

	// Midnight of the following day is a legal end.
	start, end, err = ParseTimeRange("18:00 - 24:00")
	require.NoError(t, err)
	assert.Equal(t, 18*time.Hour, start)
	assert.Equal(t, 24*time.Hour, end)

	_, _, err = ParseTimeRange("23:30 - 23:45")
	require.NoError(t, err)
}

func TestParseTimeRangeRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"9:00 - 12:00",  // not zero-padded
		"09:00-12:00",   // missing separator spaces
		"09:00 - 25:00", // hour out of range
		"24:00 - 06:00", // 24:00 cannot start a range
		"18:00 - 24:30", // past midnight
		"09:60 - 12:00", // minute out of range
	}
	for _, c := range cases {
		_, _, err := ParseTimeRange(c)
		assert.Error(t, err, "expected %q to be rejected", c)
	}
}

func TestParseTimeRangeRejectsEndNotAfterStart(t *testing.T) {
	_, _, err := ParseTimeRange("12:00 - 12:00")
	assert.Error(t, err)

	_, _, err = ParseTimeRange("13:00 - 11:00")
	assert.Error(t, err)
}

func TestBookingHorizon(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	horizon := BookingHorizon(now)
	assert.Equal(t, time.Date(2025, 3, 11, 23, 59, 59, 0, time.UTC), horizon)
}

func TestWithinHorizon(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	assert.True(t, WithinHorizon(now, now))
	assert.True(t, WithinHorizon(now, now.Add(2*time.Hour)))
	assert.True(t, WithinHorizon(now, time.Date(2025, 3, 11, 23, 0, 0, 0, time.UTC)))

	assert.False(t, WithinHorizon(now, now.Add(-time.Minute)), "past start")
	assert.False(t, WithinHorizon(now, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)), "day after tomorrow")
}

func TestIntervalsOverlap(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC)
	}

	// Existing 10:00-12:00 vs requested 11:00-13:00: requested starts inside.
	assert.True(t, IntervalsOverlap(at(11), at(13), at(10), at(12)))
	// Requested ends inside existing.
	assert.True(t, IntervalsOverlap(at(9), at(11), at(10), at(12)))
	// Requested fully contains existing.
	assert.True(t, IntervalsOverlap(at(9), at(13), at(10), at(12)))
	// Identical windows.
	assert.True(t, IntervalsOverlap(at(10), at(12), at(10), at(12)))

	// Disjoint before and after.
	assert.False(t, IntervalsOverlap(at(7), at(9), at(10), at(12)))
	assert.False(t, IntervalsOverlap(at(13), at(15), at(10), at(12)))
	// Touching boundaries do not overlap: [10,12) then [12,14).
	assert.False(t, IntervalsOverlap(at(12), at(14), at(10), at(12)))
	assert.False(t, IntervalsOverlap(at(8), at(10), at(10), at(12)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/03/2025")
	assert.Error(t, err)
}
