package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultRules() Rules {
	return Rules{
		LateWarningCount:    2,
		LatePenaltyFactor:   0.5,
		NoShowPenaltyFactor: 2.0,
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, 5.0, defaultRules())

	assert.Zero(t, s.HoursWorked)
	assert.Zero(t, s.GrossEarnings)
	assert.Zero(t, s.NetEarnings)
}

func TestComputeZeroRateZeroesSummary(t *testing.T) {
	lines := []Line{
		{Hours: 40, ShiftHours: 8},
		{NoShow: true, ShiftHours: 8},
	}

	s := Compute(lines, 0, defaultRules())

	assert.Zero(t, s.HoursWorked)
	assert.Zero(t, s.NoShowCount)
	assert.Zero(t, s.GrossEarnings)
	assert.Zero(t, s.NetEarnings)

	assert.Equal(t, Summary{}, Compute(lines, -3, defaultRules()))
}

func TestComputeFortyHoursWithOnePenalizedLate(t *testing.T) {
	// 40 hours at 5.0/h with one penalty-eligible late on an 8h shift:
	// gross 200.00, late penalty 0.5*8*5 = 20.00, net 180.00.
	lines := []Line{
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8},
		{Hours: 8, ShiftHours: 8},
	}

	s := Compute(lines, 5.0, defaultRules())

	assert.Equal(t, 40.0, s.HoursWorked)
	assert.Equal(t, 200.0, s.GrossEarnings)
	assert.Equal(t, 3, s.LateCount)
	assert.Equal(t, 4.0, s.LatePenaltyHours)
	assert.Equal(t, 20.0, s.LatePenalty)
	assert.Equal(t, 0, s.NoShowCount)
	assert.Equal(t, 180.0, s.NetEarnings)
}

func TestComputeFirstTwoLatesAreWarnings(t *testing.T) {
	lines := []Line{
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
	}

	s := Compute(lines, 5.0, defaultRules())

	assert.Equal(t, 2, s.LateCount)
	assert.Zero(t, s.LatePenaltyHours)
	assert.Zero(t, s.LatePenalty)
	assert.Equal(t, 80.0, s.NetEarnings)
}

func TestComputeThirdLateTriggersPenalty(t *testing.T) {
	lines := []Line{
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
		{Hours: 8, ShiftHours: 8, IsLate: true},
	}

	s := Compute(lines, 5.0, defaultRules())

	assert.Equal(t, 4, s.LateCount)
	// 3rd and 4th lates penalized: 2 * 0.5 * 8 = 8h.
	assert.Equal(t, 8.0, s.LatePenaltyHours)
}

func TestComputeNoShowPenalty(t *testing.T) {
	lines := []Line{
		{Hours: 8, ShiftHours: 8},
		{NoShow: true, ShiftHours: 8},
	}

	s := Compute(lines, 5.0, defaultRules())

	assert.Equal(t, 1, s.NoShowCount)
	assert.Equal(t, 16.0, s.NoShowPenaltyHours)
	assert.Equal(t, 80.0, s.NoShowPenalty)
	assert.Equal(t, 8.0, s.HoursWorked)
	assert.Equal(t, 40.0, s.GrossEarnings)
	assert.Equal(t, -40.0, s.NetEarnings)
}

func TestComputeNoShowDoesNotAddHours(t *testing.T) {
	s := Compute([]Line{{NoShow: true, ShiftHours: 8, Hours: 8}}, 5.0, defaultRules())

	assert.Zero(t, s.HoursWorked)
	assert.Zero(t, s.GrossEarnings)
}

func TestComputePaidUnpaidSplit(t *testing.T) {
	lines := []Line{
		{Hours: 8, ShiftHours: 8, Paid: true},
		{Hours: 6, ShiftHours: 8},
	}

	s := Compute(lines, 5.0, defaultRules())

	assert.Equal(t, 8.0, s.PaidHours)
	assert.Equal(t, 6.0, s.UnpaidHours)
	assert.Equal(t, 14.0, s.HoursWorked)
}

func TestComputePerFieldRounding(t *testing.T) {
	// 7h37m at 7.77/h: each derived amount is rounded on its own, then net
	// is computed from the rounded parts.
	lines := []Line{
		{Hours: 7.6167, ShiftHours: 8, IsLate: true},
		{Hours: 0, ShiftHours: 8, IsLate: true},
		{Hours: 0, ShiftHours: 8, IsLate: true},
	}

	s := Compute(lines, 7.77, defaultRules())

	assert.Equal(t, Round2(7.6167*7.77), s.GrossEarnings)
	assert.Equal(t, Round2(4.0*7.77), s.LatePenalty)
	assert.Equal(t, Round2(s.GrossEarnings-s.LatePenalty-s.NoShowPenalty), s.NetEarnings)
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 0.12, Round2(0.124))
	assert.Equal(t, 0.0, Round2(0))
}
