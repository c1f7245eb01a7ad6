package report

import (
	"strings"
	"testing"
	"time"

	"workforce/backend/internal/pkg/payroll"
	repo "workforce/backend/internal/repository/postgres/payroll"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestWorkbook(t *testing.T) {
	list := []repo.EarningsResponse{
		{
			EmployeeID:   7,
			EmployeeName: strp("Lina Haddad"),
			HourlyRate:   5.0,
			Month:        8,
			Year:         2026,
			Summary: payroll.Summary{
				HoursWorked:   40,
				GrossEarnings: 200,
				NetEarnings:   180,
				LateCount:     3,
				LatePenalty:   20,
			},
		},
	}

	content, err := Workbook(list)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	// xlsx is a zip container
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}

func TestWorkbookEmpty(t *testing.T) {
	content, err := Workbook(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestCSV(t *testing.T) {
	list := []repo.EarningsResponse{
		{
			EmployeeID:   7,
			EmployeeName: strp("Lina Haddad"),
			HourlyRate:   5.0,
			Month:        8,
			Year:         2026,
			Summary: payroll.Summary{
				HoursWorked:   40,
				GrossEarnings: 200,
				NetEarnings:   180,
				LateCount:     3,
				LatePenalty:   20,
			},
		},
	}

	content, err := CSV(list)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Employee ID")
	assert.Equal(t, "7,Lina Haddad,5.00,40.00,3,20.00,0,0.00,200.00,180.00", strings.TrimSpace(lines[1]))
}

func TestCSVEmpty(t *testing.T) {
	content, err := CSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 1)
}

func TestReceipt(t *testing.T) {
	detail := repo.HistoryResponse{
		ID:           12,
		EmployeeID:   7,
		EmployeeName: strp("Lina Haddad"),
		Month:        8,
		Year:         2026,
		TotalHours:   40,
		Gross:        200,
		LateCount:    3,
		LatePenalty:  20,
		Net:          180,
		PaymentDate:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		PaidByName:   strp("Owner"),
	}

	content, err := Receipt(detail)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	assert.Equal(t, []byte("%PDF"), content[:4])
}
