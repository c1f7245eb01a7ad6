package attendance

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *int
	StoreID    *int
	Status     *string
	DateFrom   *string
	DateTo     *string
}

type ClockInRequest struct {
	ShiftID   *int     `json:"shift_id" form:"shift_id"`
	Latitude  *float64 `json:"lat" form:"lat"`
	Longitude *float64 `json:"lng" form:"lng"`
}

type ClockInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID            int        `json:"id" bun:"-"`
	EmployeeID    int        `json:"employee_id" bun:"employee_id"`
	EmployeeName  *string    `json:"employee_name" bun:"employee_name"`
	ShiftID       int        `json:"shift_id" bun:"shift_id"`
	StoreID       int        `json:"store_id" bun:"store_id"`
	StoreName     *string    `json:"store_name" bun:"store_name"`
	Status        string     `json:"status" bun:"status"`
	ClockInTime   *time.Time `json:"clock_in_time" bun:"clock_in_time"`
	ClockInLat    *float64   `json:"clock_in_lat" bun:"clock_in_lat"`
	ClockInLng    *float64   `json:"clock_in_lng" bun:"clock_in_lng"`
	IsLate        bool       `json:"is_late" bun:"is_late"`
	LateByMinutes int        `json:"late_by_minutes" bun:"late_by_minutes"`
	CreatedAt     time.Time  `json:"-" bun:"created_at"`
	CreatedBy     int        `json:"-" bun:"created_by"`
}

type ClockOutRequest struct {
	AttendanceID *int     `json:"attendance_id" form:"attendance_id"`
	Latitude     *float64 `json:"lat" form:"lat"`
	Longitude    *float64 `json:"lng" form:"lng"`
}

type ClockOutResponse struct {
	ID           int        `json:"id"`
	EmployeeID   int        `json:"employee_id"`
	Status       string     `json:"status"`
	ClockInTime  *time.Time `json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time"`
	HoursWorked  float64    `json:"hours_worked"`
}

type GetListResponse struct {
	ID            int        `json:"id"`
	EmployeeID    *int       `json:"employee_id"`
	EmployeeName  *string    `json:"employee_name"`
	ShiftID       *int       `json:"shift_id"`
	StoreID       *int       `json:"store_id"`
	StoreName     *string    `json:"store_name"`
	Status        *string    `json:"status"`
	ClockInTime   *time.Time `json:"clock_in_time"`
	ClockOutTime  *time.Time `json:"clock_out_time"`
	IsLate        *bool      `json:"is_late"`
	LateByMinutes *int       `json:"late_by_minutes"`
	NoShow        *bool      `json:"no_show"`
	AutoClockOut  *bool      `json:"auto_clock_out"`
	Paid          *bool      `json:"paid"`
}

type CurrentlyWorkingResponse struct {
	EmployeeID   int        `json:"employee_id"`
	EmployeeName *string    `json:"employee_name"`
	StoreID      *int       `json:"store_id"`
	StoreName    *string    `json:"store_name"`
	ClockInTime  *time.Time `json:"clock_in_time"`
	IsLate       *bool      `json:"is_late"`
}

type UpdateRequest struct {
	ID           int        `json:"id" form:"id"`
	ClockInTime  *time.Time `json:"clock_in_time" form:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time" form:"clock_out_time"`
	Status       *string    `json:"status" form:"status"`
	IsLate       *bool      `json:"is_late" form:"is_late"`
	NoShow       *bool      `json:"no_show" form:"no_show"`
}

type SetOvertimeRequest struct {
	WorkDay *string `json:"work_day" form:"work_day"`
	Enabled *bool   `json:"enabled" form:"enabled"`
}

type SweepResult struct {
	AutoClockedOut []SweepAutoClockOutItem `json:"auto_clocked_out"`
	NoShows        []SweepNoShowItem       `json:"no_shows"`
	Skipped        bool                    `json:"skipped"`
}

// SweepAutoClockOutItem is one forgotten clock-in the sweep force-closed.
type SweepAutoClockOutItem struct {
	AttendanceID int       `json:"attendance_id"`
	ShiftID      int       `json:"shift_id"`
	EmployeeID   *int      `json:"employee_id"`
	EmployeeName *string   `json:"employee_name"`
	StoreID      *int      `json:"store_id"`
	StoreName    *string   `json:"store_name"`
	ClockOutTime time.Time `json:"clock_out_time"`
}

// SweepNoShowItem is one shift the sweep newly flagged as a no-show.
type SweepNoShowItem struct {
	ShiftID      int     `json:"shift_id"`
	EmployeeID   int     `json:"employee_id"`
	EmployeeName *string `json:"employee_name"`
	StoreID      int     `json:"store_id"`
	StoreName    *string `json:"store_name"`
	WorkDay      string  `json:"work_day"`
	StartTime    string  `json:"start_time"`
}

// sweepCandidate is an open attendance row joined to its shift.
type sweepCandidate struct {
	AttendanceID int
	ShiftID      int
	EmployeeID   *int
	EmployeeName *string
	StoreID      *int
	StoreName    *string
	WorkDay      string
	EndTime      string
}

// noShowCandidate is a past shift with no attendance against it.
type noShowCandidate struct {
	ShiftID      int
	EmployeeID   int
	EmployeeName *string
	StoreID      int
	StoreName    *string
	WorkDay      string
	StartTime    string
}
