package attendance

import (
	"context"

	"workforce/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	ClockIn(ctx context.Context, request attendance.ClockInRequest) (attendance.ClockInResponse, error)
	ClockOut(ctx context.Context, request attendance.ClockOutRequest) (attendance.ClockOutResponse, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	CurrentlyWorking(ctx context.Context, storeID int) ([]attendance.CurrentlyWorkingResponse, error)
	Sweep(ctx context.Context) (attendance.SweepResult, error)
	SetOvertime(ctx context.Context, request attendance.SetOvertimeRequest) error
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
