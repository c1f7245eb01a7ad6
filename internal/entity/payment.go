package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// PaymentRecord is the immutable settlement snapshot. Its existence for an
// (employee, month, year) tuple means that period is settled.
type PaymentRecord struct {
	bun.BaseModel `bun:"table:payment_history"`

	ID            int       `json:"id" bun:"id,pk,autoincrement"`
	EmployeeID    int       `json:"employee_id" bun:"employee_id"`
	EmployeeName  string    `json:"employee_name" bun:"employee_name"`
	Month         int       `json:"month" bun:"month"`
	Year          int       `json:"year" bun:"year"`
	TotalHours    float64   `json:"total_hours" bun:"total_hours"`
	Gross         float64   `json:"gross_earnings" bun:"gross_earnings"`
	LateCount     int       `json:"late_count" bun:"late_count"`
	LatePenalty   float64   `json:"late_penalty" bun:"late_penalty"`
	NoShowCount   int       `json:"no_show_count" bun:"no_show_count"`
	NoShowPenalty float64   `json:"no_show_penalty" bun:"no_show_penalty"`
	Net           float64   `json:"net_earnings" bun:"net_earnings"`
	PaymentDate   time.Time `json:"payment_date" bun:"payment_date"`
	PaidBy        int       `json:"paid_by" bun:"paid_by"`
	PaidByName    string    `json:"paid_by_name" bun:"paid_by_name"`
}

// BusinessDay carries per-date flags; overtime_enabled suspends the
// auto-clock-out pass for that day.
type BusinessDay struct {
	bun.BaseModel `bun:"table:business_calendar"`

	WorkDay         string     `json:"work_day" bun:"work_day,pk"`
	OvertimeEnabled bool       `json:"overtime_enabled" bun:"overtime_enabled"`
	SetBy           *int       `json:"set_by" bun:"set_by"`
	SetAt           *time.Time `json:"set_at" bun:"set_at"`
}
