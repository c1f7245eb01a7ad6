package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses. A record is created CLOCKED_IN by a worker or NO_SHOW
// by the sweep, and only ever moves CLOCKED_IN -> CLOCKED_OUT.
const (
	StatusClockedIn  = "CLOCKED_IN"
	StatusClockedOut = "CLOCKED_OUT"
	StatusNoShow     = "NO_SHOW"
)

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID   *int    `json:"employee_id" bun:"employee_id"`
	EmployeeName *string `json:"employee_name" bun:"employee_name"`
	ShiftID      *int    `json:"shift_id" bun:"shift_id"`
	StoreID      *int    `json:"store_id" bun:"store_id"`
	StoreName    *string `json:"store_name" bun:"store_name"`

	Status       *string    `json:"status" bun:"status"`
	ClockInTime  *time.Time `json:"clock_in_time" bun:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time" bun:"clock_out_time"`
	ClockInLat   *float64   `json:"clock_in_lat" bun:"clock_in_lat"`
	ClockInLng   *float64   `json:"clock_in_lng" bun:"clock_in_lng"`
	ClockOutLat  *float64   `json:"clock_out_lat" bun:"clock_out_lat"`
	ClockOutLng  *float64   `json:"clock_out_lng" bun:"clock_out_lng"`

	IsLate        *bool `json:"is_late" bun:"is_late"`
	LateByMinutes *int  `json:"late_by_minutes" bun:"late_by_minutes"`
	NoShow        *bool `json:"no_show" bun:"no_show"`
	AutoClockOut  *bool `json:"auto_clock_out" bun:"auto_clock_out"`
	AutoDetected  *bool `json:"auto_detected" bun:"auto_detected"`

	Paid   *bool      `json:"paid" bun:"paid"`
	PaidAt *time.Time `json:"paid_at" bun:"paid_at"`
	PaidBy *int       `json:"paid_by" bun:"paid_by"`
}
