package entity

import (
	"github.com/uptrace/bun"
)

// Shift times are wall-clock "15:04" strings in the business timezone;
// work_day is the calendar day the shift starts on. An end_time of "00:00"
// means the following midnight.
type Shift struct {
	bun.BaseModel `bun:"table:shifts"`

	BasicEntity
	EmployeeID     *int    `json:"employee_id" bun:"employee_id"`
	EmployeeName   *string `json:"employee_name" bun:"employee_name"`
	StoreID        *int    `json:"store_id" bun:"store_id"`
	StoreName      *string `json:"store_name" bun:"store_name"`
	SupervisorID   *int    `json:"supervisor_id" bun:"supervisor_id"`
	SupervisorName *string `json:"supervisor_name" bun:"supervisor_name"`
	WorkDay        *string `json:"work_day" bun:"work_day"`
	StartTime      *string `json:"start_time" bun:"start_time"`
	EndTime        *string `json:"end_time" bun:"end_time"`
}
