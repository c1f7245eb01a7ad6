package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleableSkipsPaidAndOpenRows(t *testing.T) {
	rows := []earningsRow{
		{AttendanceID: 1, Hours: 8, Paid: true},
		{AttendanceID: 2, Hours: 8, Open: true},
		{AttendanceID: 3, Hours: 8},
	}

	unpaid, ids, hasWork := settleable(rows)

	require.Len(t, unpaid, 1)
	assert.Equal(t, 3, unpaid[0].AttendanceID)
	assert.Equal(t, []int{3}, ids)
	assert.True(t, hasWork)
}

func TestSettleablePenaltyOnlyPeriodIsNotSettleable(t *testing.T) {
	rows := []earningsRow{
		{AttendanceID: 4, ShiftHours: 8, NoShow: true},
		{AttendanceID: 5, ShiftHours: 8, NoShow: true},
	}

	unpaid, ids, hasWork := settleable(rows)

	assert.Len(t, unpaid, 2)
	assert.Equal(t, []int{4, 5}, ids)
	assert.False(t, hasWork)
}

func TestSettleableEmptyPeriod(t *testing.T) {
	unpaid, ids, hasWork := settleable(nil)

	assert.Empty(t, unpaid)
	assert.Empty(t, ids)
	assert.False(t, hasWork)
}
