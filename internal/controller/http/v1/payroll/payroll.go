package payroll

import (
	"fmt"
	"net/http"
	"reflect"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/payroll"
	"workforce/backend/internal/service/report"
)

type Controller struct {
	payroll Payroll
}

func NewController(payroll Payroll) *Controller {
	return &Controller{payroll}
}

func (uc Controller) periodFromQuery(c *web.Context) (payroll.PeriodRequest, error) {
	var request payroll.PeriodRequest

	if month, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		request.Month = month
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		request.Year = year
	}
	if err := c.ValidQuery(); err != nil {
		return payroll.PeriodRequest{}, err
	}

	return request, nil
}

func (uc Controller) MyEarnings(c *web.Context) error {
	request, err := uc.periodFromQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payroll.MyEarnings(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) AllEarnings(c *web.Context) error {
	request, err := uc.periodFromQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.payroll.AllEarnings(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UnpaidEarnings(c *web.Context) error {
	request, err := uc.periodFromQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.payroll.UnpaidEarnings(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkAsPaid(c *web.Context) error {
	var request payroll.MarkAsPaidRequest
	if err := c.BindFunc(&request, "EmployeeID,Month,Year"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payroll.MarkAsPaid(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) PaymentHistory(c *web.Context) error {
	var filter payroll.HistoryFilter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if employeeID, ok := c.GetQueryFunc(reflect.Int, "employee_id").(*int); ok {
		filter.EmployeeID = employeeID
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.payroll.PaymentHistory(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

// ExportWorkbook streams the period's earnings as an xlsx file.
func (uc Controller) ExportWorkbook(c *web.Context) error {
	request, err := uc.periodFromQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.payroll.ExportRows(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	content, err := report.Workbook(list)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="payroll.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
	return nil
}

// ExportCSV streams the period's earnings as a CSV file.
func (uc Controller) ExportCSV(c *web.Context) error {
	request, err := uc.periodFromQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.payroll.ExportRows(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	content, err := report.CSV(list)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="payroll.csv"`)
	c.Data(http.StatusOK, "text/csv", content)
	return nil
}

// Receipt streams the PDF receipt of a settled payment.
func (uc Controller) Receipt(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.payroll.HistoryById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	content, err := report.Receipt(detail)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_%d.pdf"`, detail.ID))
	c.Data(http.StatusOK, "application/pdf", content)
	return nil
}
