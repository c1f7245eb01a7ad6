package payroll

import (
	"time"

	"workforce/backend/internal/pkg/payroll"
)

type PeriodRequest struct {
	Month *int `json:"month" form:"month"`
	Year  *int `json:"year" form:"year"`
}

type EarningsResponse struct {
	EmployeeID   int     `json:"employee_id"`
	EmployeeName *string `json:"employee_name"`
	HourlyRate   float64 `json:"hourly_rate"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	Message      string  `json:"message,omitempty"`
	payroll.Summary
}

type MarkAsPaidRequest struct {
	EmployeeID *int `json:"employee_id" form:"employee_id"`
	Month      *int `json:"month" form:"month"`
	Year       *int `json:"year" form:"year"`
}

type MarkAsPaidResponse struct {
	PaymentID    int       `json:"payment_id"`
	EmployeeID   int       `json:"employee_id"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	NetEarnings  float64   `json:"netEarnings"`
	RecordsPaid  int       `json:"records_paid"`
	PaymentDate  time.Time `json:"payment_date"`
}

type HistoryFilter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *int
	Year       *int
}

type HistoryResponse struct {
	ID            int       `json:"id"`
	EmployeeID    int       `json:"employee_id"`
	EmployeeName  *string   `json:"employee_name"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	TotalHours    float64   `json:"totalHours"`
	Gross         float64   `json:"grossEarnings"`
	LateCount     int       `json:"lateCount"`
	LatePenalty   float64   `json:"latePenalty"`
	NoShowCount   int       `json:"noShowCount"`
	NoShowPenalty float64   `json:"noShowPenalty"`
	Net           float64   `json:"netEarnings"`
	PaymentDate   time.Time `json:"payment_date"`
	PaidBy        *int      `json:"paid_by"`
	PaidByName    *string   `json:"paid_by_name"`
}

// earningsRow is one attendance or inferred no-show line before aggregation.
type earningsRow struct {
	AttendanceID int
	ShiftID      *int
	When         time.Time
	Hours        float64
	ShiftHours   float64
	IsLate       bool
	NoShow       bool
	Paid         bool
	Open         bool
	Inferred     bool
}
