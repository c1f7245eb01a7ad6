package payroll

import (
	"context"

	"workforce/backend/internal/repository/postgres/payroll"
)

type Payroll interface {
	MyEarnings(ctx context.Context, request payroll.PeriodRequest) (payroll.EarningsResponse, error)
	AllEarnings(ctx context.Context, request payroll.PeriodRequest) ([]payroll.EarningsResponse, error)
	UnpaidEarnings(ctx context.Context, request payroll.PeriodRequest) ([]payroll.EarningsResponse, error)
	MarkAsPaid(ctx context.Context, request payroll.MarkAsPaidRequest) (payroll.MarkAsPaidResponse, error)
	PaymentHistory(ctx context.Context, filter payroll.HistoryFilter) ([]payroll.HistoryResponse, int, error)
	HistoryById(ctx context.Context, id int) (payroll.HistoryResponse, error)
	ExportRows(ctx context.Context, request payroll.PeriodRequest) ([]payroll.EarningsResponse, error)
}
