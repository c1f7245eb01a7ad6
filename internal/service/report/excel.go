// Package report renders payroll exports: the monthly workbook and the
// per-payment receipt.
package report

import (
	"bytes"
	"fmt"
	"net/http"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/payroll"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Payroll"

var headers = []string{
	"Employee ID", "Employee", "Hourly Rate", "Hours Worked", "Late Count",
	"Late Penalty", "No-Show Count", "No-Show Penalty", "Gross", "Net",
}

// Workbook writes the period's earnings into an xlsx file.
func Workbook(list []payroll.EarningsResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "creating sheet"), http.StatusInternalServerError)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "creating style"), http.StatusInternalServerError)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, item := range list {
		name := ""
		if item.EmployeeName != nil {
			name = *item.EmployeeName
		}
		values := []interface{}{
			item.EmployeeID,
			name,
			item.HourlyRate,
			item.HoursWorked,
			item.LateCount,
			item.LatePenalty,
			item.NoShowCount,
			item.NoShowPenalty,
			item.GrossEarnings,
			item.NetEarnings,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "J", 16)

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "writing workbook"), http.StatusInternalServerError)
	}

	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
