package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sort"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/payroll"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/pkg/shifttime"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
	rules config.Rules
}

func NewRepository(database *postgresql.Database, rules config.Rules) *Repository {
	return &Repository{Database: database, rules: rules}
}

// MyEarnings computes the caller's period summary.
func (r Repository) MyEarnings(ctx context.Context, request PeriodRequest) (EarningsResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return EarningsResponse{}, err
	}

	month, year, err := r.period(request)
	if err != nil {
		return EarningsResponse{}, err
	}

	return r.earningsFor(ctx, claims.UserId, month, year)
}

// AllEarnings computes the period summary for every payable employee.
func (r Repository) AllEarnings(ctx context.Context, request PeriodRequest) ([]EarningsResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleAccountant)
	if err != nil {
		return nil, err
	}

	month, year, err := r.period(request)
	if err != nil {
		return nil, err
	}

	ids, err := r.payableEmployees(ctx)
	if err != nil {
		return nil, err
	}

	var list []EarningsResponse
	for _, id := range ids {
		detail, err := r.earningsFor(ctx, id, month, year)
		if err != nil {
			return nil, err
		}
		list = append(list, detail)
	}

	return list, nil
}

// UnpaidEarnings is AllEarnings restricted to records not yet settled.
// Employees with nothing outstanding are omitted.
func (r Repository) UnpaidEarnings(ctx context.Context, request PeriodRequest) ([]EarningsResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleAccountant)
	if err != nil {
		return nil, err
	}

	month, year, err := r.period(request)
	if err != nil {
		return nil, err
	}

	ids, err := r.payableEmployees(ctx)
	if err != nil {
		return nil, err
	}

	var list []EarningsResponse
	for _, id := range ids {
		rows, err := r.periodRows(ctx, id, month, year)
		if err != nil {
			return nil, err
		}

		unpaid := rows[:0]
		for _, row := range rows {
			if !row.Paid {
				unpaid = append(unpaid, row)
			}
		}
		if len(unpaid) == 0 {
			continue
		}

		detail, err := r.summarize(ctx, id, month, year, unpaid)
		if err != nil {
			return nil, err
		}
		list = append(list, detail)
	}

	return list, nil
}

// MarkAsPaid settles an employee's outstanding records for a period. The
// summary is recomputed inside the transaction, every unpaid record is
// flagged, and an immutable payment_history row snapshots the result. The
// unique index on (employee_id, month, year) rejects a second settlement.
func (r Repository) MarkAsPaid(ctx context.Context, request MarkAsPaidRequest) (MarkAsPaidResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleAccountant)
	if err != nil {
		return MarkAsPaidResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Month", "Year"); err != nil {
		return MarkAsPaidResponse{}, err
	}
	month, year, err := r.period(PeriodRequest{Month: request.Month, Year: request.Year})
	if err != nil {
		return MarkAsPaidResponse{}, err
	}

	employee, hourlyRate, err := r.employeeRate(ctx, *request.EmployeeID)
	if err != nil {
		return MarkAsPaidResponse{}, err
	}

	var payerName *string
	if payer, _, err := r.employeeRate(ctx, claims.UserId); err == nil {
		payerName = payer.FullName
	}

	now := time.Now().In(r.rules.Location())
	var response MarkAsPaidResponse

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := r.persistInferredNoShows(ctx, tx, *request.EmployeeID, month, year, now); err != nil {
			return err
		}

		rows, err := r.periodRowsTx(ctx, tx, *request.EmployeeID, month, year)
		if err != nil {
			return err
		}

		unpaid, ids, hasWork := settleable(rows)
		if !hasWork {
			return web.NewRequestError(errors.New("no unpaid clocked-out attendance for this period"), http.StatusBadRequest)
		}

		summary := payroll.Compute(toLines(unpaid), hourlyRate, payroll.Rules{
			LateWarningCount:    r.rules.LateWarningCount,
			LatePenaltyFactor:   r.rules.LatePenaltyFactor,
			NoShowPenaltyFactor: r.rules.NoShowPenaltyFactor,
		})

		q := tx.NewUpdate().Table("attendance").
			Where("id IN (?) AND paid = false AND deleted_at IS NULL", bun.In(ids))
		q.Set("paid = ?", true)
		q.Set("paid_at = ?", now)
		q.Set("paid_by = ?", claims.UserId)
		result, err := q.Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "flagging records paid")
		}
		affected, _ := result.RowsAffected()
		if int(affected) != len(ids) {
			return web.NewRequestError(errors.New("records changed during settlement"), http.StatusConflict)
		}

		record := entity.PaymentRecord{
			EmployeeID:    *request.EmployeeID,
			EmployeeName:  stringOrEmpty(employee.FullName),
			Month:         month,
			Year:          year,
			TotalHours:    summary.HoursWorked,
			Gross:         summary.GrossEarnings,
			LateCount:     summary.LateCount,
			LatePenalty:   summary.LatePenalty,
			NoShowCount:   summary.NoShowCount,
			NoShowPenalty: summary.NoShowPenalty,
			Net:           summary.NetEarnings,
			PaymentDate:   now,
			PaidBy:        claims.UserId,
			PaidByName:    stringOrEmpty(payerName),
		}
		if _, err = tx.NewInsert().Model(&record).Returning("id").Exec(ctx, &record.ID); err != nil {
			return err
		}

		response = MarkAsPaidResponse{
			PaymentID:   record.ID,
			EmployeeID:  *request.EmployeeID,
			Month:       month,
			Year:        year,
			NetEarnings: summary.NetEarnings,
			RecordsPaid: len(ids),
			PaymentDate: now,
		}
		return nil
	})
	if postgresql.IsUniqueViolation(err) {
		return MarkAsPaidResponse{}, web.NewRequestError(postgres.ErrAlreadyPaid, http.StatusConflict)
	}
	if err != nil {
		var webErr *web.Error
		if errors.As(err, &webErr) {
			return MarkAsPaidResponse{}, err
		}
		return MarkAsPaidResponse{}, web.NewRequestError(errors.Wrap(err, "settling period"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) PaymentHistory(ctx context.Context, filter HistoryFilter) ([]HistoryResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE true`

	if claims.Role == auth.RoleEmployee {
		whereQuery += fmt.Sprintf(` AND p.employee_id = %d`, claims.UserId)
	} else if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND p.employee_id = %d`, *filter.EmployeeID)
	}
	if filter.Year != nil {
		whereQuery += fmt.Sprintf(` AND p.year = %d`, *filter.Year)
	}

	orderQuery := "ORDER BY p.year desc, p.month desc, p.payment_date desc"

	var limitQuery, offsetQuery string
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			p.id,
			p.employee_id,
			p.employee_name,
			p.month,
			p.year,
			p.total_hours,
			p.gross_earnings,
			p.late_count,
			p.late_penalty,
			p.no_show_count,
			p.no_show_penalty,
			p.net_earnings,
			p.payment_date,
			p.paid_by,
			p.paid_by_name
		FROM payment_history p
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting payment history"), http.StatusInternalServerError)
	}

	var list []HistoryResponse
	for rows.Next() {
		var detail HistoryResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.EmployeeName,
			&detail.Month,
			&detail.Year,
			&detail.TotalHours,
			&detail.Gross,
			&detail.LateCount,
			&detail.LatePenalty,
			&detail.NoShowCount,
			&detail.NoShowPenalty,
			&detail.Net,
			&detail.PaymentDate,
			&detail.PaidBy,
			&detail.PaidByName); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning payment history"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(p.id)
		FROM payment_history p
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning payment history count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) HistoryById(ctx context.Context, id int) (HistoryResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return HistoryResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			p.id,
			p.employee_id,
			p.employee_name,
			p.month,
			p.year,
			p.total_hours,
			p.gross_earnings,
			p.late_count,
			p.late_penalty,
			p.no_show_count,
			p.no_show_penalty,
			p.net_earnings,
			p.payment_date,
			p.paid_by,
			p.paid_by_name
		FROM payment_history p
		WHERE p.id = %d
	`, id)

	var detail HistoryResponse
	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.EmployeeName,
		&detail.Month,
		&detail.Year,
		&detail.TotalHours,
		&detail.Gross,
		&detail.LateCount,
		&detail.LatePenalty,
		&detail.NoShowCount,
		&detail.NoShowPenalty,
		&detail.Net,
		&detail.PaymentDate,
		&detail.PaidBy,
		&detail.PaidByName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return HistoryResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return HistoryResponse{}, web.NewRequestError(errors.Wrap(err, "selecting payment"), http.StatusInternalServerError)
	}

	if claims.Role == auth.RoleEmployee && claims.UserId != detail.EmployeeID {
		return HistoryResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	return detail, nil
}

// ExportRows returns the full-company summaries used by the workbook and
// receipt generators.
func (r Repository) ExportRows(ctx context.Context, request PeriodRequest) ([]EarningsResponse, error) {
	return r.AllEarnings(ctx, request)
}

func (r Repository) period(request PeriodRequest) (int, int, error) {
	now := time.Now().In(r.rules.Location())
	month := int(now.Month())
	year := now.Year()

	if request.Month != nil {
		month = *request.Month
	}
	if request.Year != nil {
		year = *request.Year
	}
	if month < 1 || month > 12 {
		return 0, 0, web.NewRequestError(errors.New("month out of range"), http.StatusBadRequest)
	}
	if year < 2000 || year > 2100 {
		return 0, 0, web.NewRequestError(errors.New("year out of range"), http.StatusBadRequest)
	}

	return month, year, nil
}

func (r Repository) payableEmployees(ctx context.Context) ([]int, error) {
	rows, err := r.QueryContext(ctx, fmt.Sprintf(
		`SELECT id FROM users WHERE deleted_at IS NULL AND role IN ('%s', '%s') ORDER BY full_name`,
		auth.RoleEmployee, auth.RoleSupervisor))
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting payable employees"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning employee id"), http.StatusInternalServerError)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r Repository) employeeRate(ctx context.Context, employeeID int) (entity.User, float64, error) {
	var employee entity.User
	err := r.NewSelect().Model(&employee).Where("id = ? AND deleted_at IS NULL", employeeID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, 0, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	rate := 0.0
	if employee.HourlyRate != nil {
		rate = *employee.HourlyRate
	}
	return employee, rate, nil
}

func (r Repository) earningsFor(ctx context.Context, employeeID, month, year int) (EarningsResponse, error) {
	rows, err := r.periodRows(ctx, employeeID, month, year)
	if err != nil {
		return EarningsResponse{}, err
	}
	return r.summarize(ctx, employeeID, month, year, rows)
}

func (r Repository) summarize(ctx context.Context, employeeID, month, year int, rows []earningsRow) (EarningsResponse, error) {
	employee, rate, err := r.employeeRate(ctx, employeeID)
	if err != nil {
		return EarningsResponse{}, err
	}

	summary := payroll.Compute(toLines(rows), rate, payroll.Rules{
		LateWarningCount:    r.rules.LateWarningCount,
		LatePenaltyFactor:   r.rules.LatePenaltyFactor,
		NoShowPenaltyFactor: r.rules.NoShowPenaltyFactor,
	})

	message := ""
	if rate <= 0 {
		message = "no salary configured"
	}

	return EarningsResponse{
		EmployeeID:   employeeID,
		EmployeeName: employee.FullName,
		HourlyRate:   rate,
		Month:        month,
		Year:         year,
		Message:      message,
		Summary:      summary,
	}, nil
}

// periodRows collects the employee's attendance lines for a month, plus
// inferred no-shows for past shifts the sweep has not yet persisted.
func (r Repository) periodRows(ctx context.Context, employeeID, month, year int) ([]earningsRow, error) {
	return r.periodRowsTx(ctx, r.DB, employeeID, month, year)
}

func (r Repository) periodRowsTx(ctx context.Context, db bun.IDB, employeeID, month, year int) ([]earningsRow, error) {
	loc := r.rules.Location()
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.shift_id,
			a.clock_in_time,
			a.clock_out_time,
			a.status,
			a.is_late,
			a.no_show,
			a.paid,
			sh.start_time,
			sh.end_time,
			sh.work_day
		FROM attendance a
		LEFT JOIN shifts sh ON sh.id = a.shift_id
		WHERE a.deleted_at IS NULL
		  AND a.employee_id = %d
		  AND (
			(a.clock_in_time >= '%s' AND a.clock_in_time < '%s')
			OR (sh.work_day >= '%s' AND sh.work_day < '%s')
		  )
	`, employeeID,
		monthStart.Format(time.RFC3339), monthEnd.Format(time.RFC3339),
		monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))

	sqlRows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting period attendance"), http.StatusInternalServerError)
	}

	var rows []earningsRow
	shiftsSeen := map[int]bool{}

	for sqlRows.Next() {
		var (
			row       earningsRow
			clockIn   *time.Time
			clockOut  *time.Time
			status    string
			isLate    *bool
			noShow    *bool
			paid      *bool
			startTime *string
			endTime   *string
			workDay   *string
		)
		if err = sqlRows.Scan(&row.AttendanceID, &row.ShiftID, &clockIn, &clockOut, &status,
			&isLate, &noShow, &paid, &startTime, &endTime, &workDay); err != nil {
			sqlRows.Close()
			return nil, web.NewRequestError(errors.Wrap(err, "scanning period attendance"), http.StatusInternalServerError)
		}

		if row.ShiftID != nil {
			shiftsSeen[*row.ShiftID] = true
		}

		if clockIn != nil && clockOut != nil {
			row.Hours = clockOut.Sub(*clockIn).Hours()
		}
		if startTime != nil && endTime != nil {
			if h, err := shifttime.DurationHours(*startTime, *endTime); err == nil {
				row.ShiftHours = h
			}
		}
		if row.ShiftHours == 0 {
			row.ShiftHours = row.Hours
		}

		row.IsLate = isLate != nil && *isLate
		row.NoShow = (noShow != nil && *noShow) || status == entity.StatusNoShow
		row.Paid = paid != nil && *paid
		row.Open = status == entity.StatusClockedIn

		switch {
		case clockIn != nil:
			row.When = *clockIn
		case workDay != nil && startTime != nil:
			if t, err := shifttime.Combine(*workDay, *startTime, loc); err == nil {
				row.When = t
			}
		}

		// a still-open record earns nothing until it is closed
		if status == entity.StatusClockedIn {
			row.Hours = 0
		}

		rows = append(rows, row)
	}
	sqlRows.Close()
	if err = sqlRows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading period attendance"), http.StatusInternalServerError)
	}

	inferred, err := r.inferredNoShows(ctx, db, employeeID, monthStart, monthEnd, shiftsSeen)
	if err != nil {
		return nil, err
	}
	rows = append(rows, inferred...)

	sort.Slice(rows, func(i, j int) bool { return rows[i].When.Before(rows[j].When) })

	return rows, nil
}

// inferredNoShows is the fallback for past shifts the sweep has not reached:
// a shift whose grace window has passed without any attendance counts as a
// no-show in the aggregate even before a record exists.
func (r Repository) inferredNoShows(ctx context.Context, db bun.IDB, employeeID int, monthStart, monthEnd time.Time, shiftsSeen map[int]bool) ([]earningsRow, error) {
	loc := r.rules.Location()
	now := time.Now().In(loc)

	query := fmt.Sprintf(`
		SELECT sh.id, sh.work_day, sh.start_time, sh.end_time
		FROM shifts sh
		WHERE sh.deleted_at IS NULL
		  AND sh.employee_id = %d
		  AND sh.work_day >= '%s' AND sh.work_day < '%s'
	`, employeeID, monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))

	sqlRows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting period shifts"), http.StatusInternalServerError)
	}
	defer sqlRows.Close()

	var rows []earningsRow
	for sqlRows.Next() {
		var (
			shiftID             int
			workDay, start, end string
		)
		if err = sqlRows.Scan(&shiftID, &workDay, &start, &end); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning period shift"), http.StatusInternalServerError)
		}
		if shiftsSeen[shiftID] {
			continue
		}

		shiftStart, err := shifttime.Combine(workDay, start, loc)
		if err != nil {
			continue
		}
		if now.Before(shiftStart.Add(r.rules.NoShowGrace())) {
			continue
		}

		shiftHours := 0.0
		if h, err := shifttime.DurationHours(start, end); err == nil {
			shiftHours = h
		}

		id := shiftID
		rows = append(rows, earningsRow{
			ShiftID:    &id,
			When:       shiftStart,
			ShiftHours: shiftHours,
			NoShow:     true,
			Inferred:   true,
		})
	}

	return rows, sqlRows.Err()
}

// persistInferredNoShows writes attendance records for any inferred no-shows
// so settlement can flag them paid like every other line.
func (r Repository) persistInferredNoShows(ctx context.Context, tx bun.Tx, employeeID, month, year int, now time.Time) error {
	loc := r.rules.Location()
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	rows, err := r.periodRowsTx(ctx, tx, employeeID, month, year)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if !row.Inferred || row.ShiftID == nil {
			continue
		}
		if row.When.Before(monthStart) || !row.When.Before(monthEnd) {
			continue
		}

		var shift entity.Shift
		if err := tx.NewSelect().Model(&shift).Where("id = ?", *row.ShiftID).Scan(ctx); err != nil {
			continue
		}

		record := entity.Attendance{
			EmployeeID:   &employeeID,
			EmployeeName: shift.EmployeeName,
			ShiftID:      row.ShiftID,
			StoreID:      shift.StoreID,
			StoreName:    shift.StoreName,
			Status:       strPtr(entity.StatusNoShow),
			IsLate:       boolPtr(false),
			NoShow:       boolPtr(true),
			AutoDetected: boolPtr(true),
			Paid:         boolPtr(false),
		}
		record.CreatedAt = now

		if _, err := tx.NewInsert().Model(&record).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return errors.Wrap(err, "persisting inferred no-show")
		}
	}

	return nil
}

// settleable splits a period's rows into the set a settlement covers: unpaid
// closed rows only. Still-open records stay unpaid until they close. The bool
// reports whether any clocked-out work is present; a period holding nothing
// but no-show penalties is not settleable.
func settleable(rows []earningsRow) ([]earningsRow, []int, bool) {
	var unpaid []earningsRow
	var ids []int
	hasWork := false

	for _, row := range rows {
		if row.Paid || row.Open {
			continue
		}
		unpaid = append(unpaid, row)
		if row.AttendanceID != 0 {
			ids = append(ids, row.AttendanceID)
		}
		if !row.NoShow {
			hasWork = true
		}
	}

	return unpaid, ids, hasWork
}

func toLines(rows []earningsRow) []payroll.Line {
	lines := make([]payroll.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, payroll.Line{
			Hours:      row.Hours,
			ShiftHours: row.ShiftHours,
			IsLate:     row.IsLate,
			NoShow:     row.NoShow,
			Paid:       row.Paid,
		})
	}
	return lines
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
