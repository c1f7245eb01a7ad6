package shift

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *int
	StoreID    *int
	DateFrom   *string
	DateTo     *string
}

type GetListResponse struct {
	ID             int        `json:"id"`
	EmployeeID     *int       `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name"`
	StoreID        *int       `json:"store_id"`
	StoreName      *string    `json:"store_name"`
	SupervisorID   *int       `json:"supervisor_id"`
	SupervisorName *string    `json:"supervisor_name"`
	WorkDay        *date.Date `json:"work_day"`
	StartTime      *string    `json:"start_time"`
	EndTime        *string    `json:"end_time"`
}

type CreateRequest struct {
	EmployeeID   *int    `json:"employee_id" form:"employee_id"`
	StoreID      *int    `json:"store_id" form:"store_id"`
	SupervisorID *int    `json:"supervisor_id" form:"supervisor_id"`
	WorkDay      *string `json:"work_day" form:"work_day"`
	StartTime    *string `json:"start_time" form:"start_time"`
	EndTime      *string `json:"end_time" form:"end_time"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:shifts"`

	ID             int       `json:"id" bun:"-"`
	EmployeeID     *int      `json:"employee_id" bun:"employee_id"`
	EmployeeName   *string   `json:"employee_name" bun:"employee_name"`
	StoreID        *int      `json:"store_id" bun:"store_id"`
	StoreName      *string   `json:"store_name" bun:"store_name"`
	SupervisorID   *int      `json:"supervisor_id" bun:"supervisor_id"`
	SupervisorName *string   `json:"supervisor_name" bun:"supervisor_name"`
	WorkDay        *string   `json:"work_day" bun:"work_day"`
	StartTime      *string   `json:"start_time" bun:"start_time"`
	EndTime        *string   `json:"end_time" bun:"end_time"`
	CreatedAt      time.Time `json:"-" bun:"created_at"`
	CreatedBy      int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	SupervisorID *int    `json:"supervisor_id" form:"supervisor_id"`
	StartTime    *string `json:"start_time" form:"start_time"`
	EndTime      *string `json:"end_time" form:"end_time"`
}
