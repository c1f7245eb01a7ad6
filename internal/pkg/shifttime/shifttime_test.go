package shifttime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"16:30", 990},
		{"23:59", 1439},
	}

	for _, tc := range cases {
		got, err := MinutesOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestMinutesOfDayInvalid(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "ab:cd"} {
		_, err := MinutesOfDay(in)
		assert.Error(t, err, in)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "09:00", "17:00", "09:00", "17:00", true},
		{"partial", "09:00", "17:00", "16:00", "20:00", true},
		{"contained", "09:00", "17:00", "10:00", "12:00", true},
		{"back to back", "09:00", "17:00", "17:00", "21:00", false},
		{"disjoint", "09:00", "12:00", "13:00", "17:00", false},
		{"evening then graveyard", "16:00", "00:00", "00:00", "08:00", false},
		{"graveyard inside evening", "16:00", "00:00", "22:00", "23:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Overlap is symmetric.
			rev, err := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rev)
		})
	}
}

func TestDurationHours(t *testing.T) {
	d, err := DurationHours("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	d, err = DurationHours("16:00", "00:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	d, err = DurationHours("09:00", "09:30")
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	_, err = DurationHours("17:00", "09:00")
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	loc := time.FixedZone("GMT+3", 3*3600)

	start, err := Combine("2025-03-10", "09:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, loc), start)

	end, err := CombineEnd("2025-03-10", "00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), end)
}

func TestLateness(t *testing.T) {
	loc := time.FixedZone("GMT+3", 3*3600)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	grace := 15 * time.Minute

	late, by := Lateness(start.Add(10*time.Minute), start, grace)
	assert.False(t, late)
	assert.Zero(t, by)

	// Exactly at the grace boundary is still on time.
	late, by = Lateness(start.Add(15*time.Minute), start, grace)
	assert.False(t, late)
	assert.Zero(t, by)

	late, by = Lateness(start.Add(20*time.Minute), start, grace)
	assert.True(t, late)
	assert.Equal(t, 20, by)
}
