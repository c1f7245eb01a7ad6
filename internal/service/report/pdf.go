package report

import (
	"bytes"
	"fmt"
	"net/http"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/payroll"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
)

// Receipt renders the settlement receipt for one payment_history row.
func Receipt(detail payroll.HistoryResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Payment Receipt")
	pdf.Ln(16)

	name := ""
	if detail.EmployeeName != nil {
		name = *detail.EmployeeName
	}
	payer := ""
	if detail.PaidByName != nil {
		payer = *detail.PaidByName
	}

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Receipt #", fmt.Sprintf("%d", detail.ID)},
		{"Employee", name},
		{"Period", fmt.Sprintf("%02d/%d", detail.Month, detail.Year)},
		{"Hours Worked", money(detail.TotalHours)},
		{"Gross Earnings", money(detail.Gross)},
		{"Late Count", fmt.Sprintf("%d", detail.LateCount)},
		{"Late Penalty", money(detail.LatePenalty)},
		{"No-Show Count", fmt.Sprintf("%d", detail.NoShowCount)},
		{"No-Show Penalty", money(detail.NoShowPenalty)},
		{"Paid By", payer},
		{"Payment Date", detail.PaymentDate.Format("2006-01-02 15:04")},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(50, 10, "Net Paid", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, money(detail.Net), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "writing receipt pdf"), http.StatusInternalServerError)
	}

	return buf.Bytes(), nil
}
