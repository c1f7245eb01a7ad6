package report

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/payroll"

	"github.com/pkg/errors"
)

// CSV writes the period's earnings as a plain CSV file with the same columns
// as the workbook.
func CSV(list []payroll.EarningsResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "writing csv header"), http.StatusInternalServerError)
	}

	for _, item := range list {
		name := ""
		if item.EmployeeName != nil {
			name = *item.EmployeeName
		}
		record := []string{
			strconv.Itoa(item.EmployeeID),
			name,
			money(item.HourlyRate),
			money(item.HoursWorked),
			strconv.Itoa(item.LateCount),
			money(item.LatePenalty),
			strconv.Itoa(item.NoShowCount),
			money(item.NoShowPenalty),
			money(item.GrossEarnings),
			money(item.NetEarnings),
		}
		if err := w.Write(record); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "writing csv row"), http.StatusInternalServerError)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "flushing csv"), http.StatusInternalServerError)
	}

	return buf.Bytes(), nil
}
