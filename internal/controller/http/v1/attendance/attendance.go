package attendance

import (
	"net/http"
	"reflect"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/attendance"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

func (uc Controller) ClockIn(c *web.Context) error {
	var request attendance.ClockInRequest
	if err := c.BindFunc(&request, "ShiftID,Latitude,Longitude"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.ClockIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ClockOut(c *web.Context) error {
	var request attendance.ClockOutRequest
	if err := c.BindFunc(&request, "AttendanceID,Latitude,Longitude"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.ClockOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if employeeID, ok := c.GetQueryFunc(reflect.Int, "employee_id").(*int); ok {
		filter.EmployeeID = employeeID
	}
	if storeID, ok := c.GetQueryFunc(reflect.Int, "store_id").(*int); ok {
		filter.StoreID = storeID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if dateFrom, ok := c.GetQueryFunc(reflect.String, "date_from").(*string); ok {
		filter.DateFrom = dateFrom
	}
	if dateTo, ok := c.GetQueryFunc(reflect.String, "date_to").(*string); ok {
		filter.DateTo = dateTo
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

func (uc Controller) CurrentlyWorking(c *web.Context) error {
	storeID := c.GetParam(reflect.Int, "store_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.CurrentlyWorking(c.Ctx, storeID)
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

// Sweep is the internal maintenance endpoint driven by the scheduler.
func (uc Controller) Sweep(c *web.Context) error {
	result, err := uc.attendance.Sweep(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   result,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) SetOvertime(c *web.Context) error {
	var request attendance.SetOvertimeRequest
	if err := c.BindFunc(&request, "WorkDay,Enabled"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.SetOvertime(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.attendance.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
