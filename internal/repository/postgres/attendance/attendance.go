package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/geodist"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/pkg/shifttime"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const (
	sweepLockKey    = "attendance:sweep:lock"
	workingCacheKey = "attendance:working:store:%d"
	workingCacheTTL = 30 * time.Second
)

type Repository struct {
	*postgresql.Database
	rules config.Rules
	redis *redis.Client
}

func NewRepository(database *postgresql.Database, rules config.Rules, rdb *redis.Client) *Repository {
	return &Repository{Database: database, rules: rules, redis: rdb}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Attendance{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	return detail, nil
}

// ClockIn opens an attendance record for the requested shift. The geofence of
// the shift's store and the active-record invariant are both enforced; a
// concurrent duplicate loses on the partial unique index.
func (r Repository) ClockIn(ctx context.Context, request ClockInRequest) (ClockInResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleSupervisor)
	if err != nil {
		return ClockInResponse{}, err
	}

	if err := r.ValidateStruct(&request, "ShiftID", "Latitude", "Longitude"); err != nil {
		return ClockInResponse{}, err
	}

	loc := r.rules.Location()
	now := time.Now().In(loc)

	shift, err := r.shiftForClockIn(ctx, *request.ShiftID, claims.UserId, now)
	if err != nil {
		return ClockInResponse{}, err
	}

	var store entity.Store
	err = r.NewSelect().Model(&store).Where("id = ? AND deleted_at IS NULL", *shift.StoreID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ClockInResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "selecting shift store"), http.StatusInternalServerError)
	}

	if err := r.checkGeofence(*request.Latitude, *request.Longitude, store); err != nil {
		return ClockInResponse{}, err
	}

	shiftStart, err := shifttime.Combine(*shift.WorkDay, *shift.StartTime, loc)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "resolving shift start"), http.StatusInternalServerError)
	}
	isLate, lateBy := shifttime.Lateness(now, shiftStart, r.rules.LateGrace())

	clockIn := now
	response := ClockInResponse{
		EmployeeID:    claims.UserId,
		EmployeeName:  shift.EmployeeName,
		ShiftID:       shift.ID,
		StoreID:       *shift.StoreID,
		StoreName:     shift.StoreName,
		Status:        entity.StatusClockedIn,
		ClockInTime:   &clockIn,
		ClockInLat:    request.Latitude,
		ClockInLng:    request.Longitude,
		IsLate:        isLate,
		LateByMinutes: lateBy,
		CreatedAt:     now,
		CreatedBy:     claims.UserId,
	}

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		open := 0
		err := tx.QueryRowContext(ctx, fmt.Sprintf(
			`SELECT count(id) FROM attendance WHERE employee_id = %d AND status = '%s' AND deleted_at IS NULL`,
			claims.UserId, entity.StatusClockedIn)).Scan(&open)
		if err != nil {
			return errors.Wrap(err, "checking open attendance")
		}
		if open > 0 {
			return postgres.ErrAlreadyClockedIn
		}

		_, err = tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
		return err
	})
	if errors.Is(err, postgres.ErrAlreadyClockedIn) || postgresql.IsUniqueViolation(err) {
		return ClockInResponse{}, web.NewRequestError(postgres.ErrAlreadyClockedIn, http.StatusConflict)
	}
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusBadRequest)
	}

	r.invalidateWorkingCache(ctx, *shift.StoreID)

	return response, nil
}

// ClockOut closes the named attendance record after the same geofence check
// as clock-in. The UPDATE is conditional on status so a concurrent sweep and
// a manual clock-out cannot both close the same record.
func (r Repository) ClockOut(ctx context.Context, request ClockOutRequest) (ClockOutResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleSupervisor)
	if err != nil {
		return ClockOutResponse{}, err
	}

	if err := r.ValidateStruct(&request, "AttendanceID", "Latitude", "Longitude"); err != nil {
		return ClockOutResponse{}, err
	}

	open, err := r.GetById(ctx, *request.AttendanceID)
	if err != nil {
		return ClockOutResponse{}, err
	}

	if err := clockOutGuard(open, claims.UserId); err != nil {
		return ClockOutResponse{}, err
	}

	if open.StoreID == nil {
		return ClockOutResponse{}, web.NewRequestError(errors.New("attendance has no store"), http.StatusInternalServerError)
	}
	var store entity.Store
	err = r.NewSelect().Model(&store).Where("id = ? AND deleted_at IS NULL", *open.StoreID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ClockOutResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return ClockOutResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance store"), http.StatusInternalServerError)
	}

	if err := r.checkGeofence(*request.Latitude, *request.Longitude, store); err != nil {
		return ClockOutResponse{}, err
	}

	now := time.Now().In(r.rules.Location())

	q := r.NewUpdate().Table("attendance").
		Where("id = ? AND status = ? AND deleted_at IS NULL", open.ID, entity.StatusClockedIn)
	q.Set("status = ?", entity.StatusClockedOut)
	q.Set("clock_out_time = ?", now)
	q.Set("clock_out_lat = ?", request.Latitude)
	q.Set("clock_out_lng = ?", request.Longitude)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return ClockOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ClockOutResponse{}, web.NewRequestError(postgres.ErrAlreadyClockedOut, http.StatusBadRequest)
	}

	hours := 0.0
	if open.ClockInTime != nil {
		hours = now.Sub(*open.ClockInTime).Hours()
	}

	if open.StoreID != nil {
		r.invalidateWorkingCache(ctx, *open.StoreID)
	}

	return ClockOutResponse{
		ID:           open.ID,
		EmployeeID:   claims.UserId,
		Status:       entity.StatusClockedOut,
		ClockInTime:  open.ClockInTime,
		ClockOutTime: &now,
		HoursWorked:  hours,
	}, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE a.deleted_at IS NULL`

	if claims.Role == auth.RoleEmployee {
		whereQuery += fmt.Sprintf(` AND a.employee_id = %d`, claims.UserId)
	} else if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND a.employee_id = %d`, *filter.EmployeeID)
	}
	if filter.StoreID != nil {
		whereQuery += fmt.Sprintf(` AND a.store_id = %d`, *filter.StoreID)
	}
	if filter.Status != nil {
		switch *filter.Status {
		case entity.StatusClockedIn, entity.StatusClockedOut, entity.StatusNoShow:
			whereQuery += fmt.Sprintf(` AND a.status = '%s'`, *filter.Status)
		default:
			return nil, 0, web.NewRequestError(errors.New("invalid status filter"), http.StatusBadRequest)
		}
	}
	if filter.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *filter.DateFrom)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "parsing date_from"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND a.created_at >= '%s'`, from.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		to, err := time.Parse("2006-01-02", *filter.DateTo)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "parsing date_to"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND a.created_at < '%s'`, to.AddDate(0, 0, 1).Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.created_at desc"

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
			a.id,
			a.employee_id,
			a.employee_name,
			a.shift_id,
			a.store_id,
			a.store_name,
			a.status,
			a.clock_in_time,
			a.clock_out_time,
			a.is_late,
			a.late_by_minutes,
			a.no_show,
			a.auto_clock_out,
			a.paid
		FROM attendance a
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.EmployeeName,
			&detail.ShiftID,
			&detail.StoreID,
			&detail.StoreName,
			&detail.Status,
			&detail.ClockInTime,
			&detail.ClockOutTime,
			&detail.IsLate,
			&detail.LateByMinutes,
			&detail.NoShow,
			&detail.AutoClockOut,
			&detail.Paid); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(a.id)
		FROM attendance a
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// CurrentlyWorking lists the open attendance records of a store. The result
// is cached briefly; clock-in and clock-out invalidate it.
func (r Repository) CurrentlyWorking(ctx context.Context, storeID int) ([]CurrentlyWorkingResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(workingCacheKey, storeID)
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var list []CurrentlyWorkingResponse
			if err = json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
		}
	}

	query := fmt.Sprintf(`
		SELECT
			a.employee_id,
			a.employee_name,
			a.store_id,
			a.store_name,
			a.clock_in_time,
			a.is_late
		FROM attendance a
		WHERE a.deleted_at IS NULL AND a.status = '%s' AND a.store_id = %d
		ORDER BY a.clock_in_time
	`, entity.StatusClockedIn, storeID)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting working employees"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []CurrentlyWorkingResponse
	for rows.Next() {
		var detail CurrentlyWorkingResponse
		if err = rows.Scan(
			&detail.EmployeeID,
			&detail.EmployeeName,
			&detail.StoreID,
			&detail.StoreName,
			&detail.ClockInTime,
			&detail.IsLate); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning working employee"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading working employees"), http.StatusInternalServerError)
	}

	if r.redis != nil {
		if payload, err := json.Marshal(list); err == nil {
			r.redis.Set(ctx, cacheKey, payload, workingCacheTTL)
		}
	}

	return list, nil
}

// Sweep runs the periodic pass: auto-close forgotten clock-ins and persist
// no-show records for unattended past shifts. A redis lock keeps concurrent
// instances from double-running.
func (r Repository) Sweep(ctx context.Context) (SweepResult, error) {
	loc := r.rules.Location()
	now := time.Now().In(loc)

	if r.redis != nil {
		ttl := time.Duration(r.rules.SweepLockTTLSeconds) * time.Second
		ok, err := r.redis.SetNX(ctx, sweepLockKey, now.Format(time.RFC3339), ttl).Result()
		if err == nil && !ok {
			return SweepResult{Skipped: true}, nil
		}
		defer r.redis.Del(context.WithoutCancel(ctx), sweepLockKey)
	}

	autoClosed, err := r.sweepAutoClockOut(ctx, now, loc)
	if err != nil {
		return SweepResult{}, err
	}

	noShows, err := r.sweepNoShows(ctx, now, loc)
	if err != nil {
		return SweepResult{}, err
	}

	return SweepResult{AutoClockedOut: autoClosed, NoShows: noShows}, nil
}

func (r Repository) sweepAutoClockOut(ctx context.Context, now time.Time, loc *time.Location) ([]SweepAutoClockOutItem, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.shift_id, a.employee_id, a.employee_name, a.store_id, a.store_name,
		       sh.work_day, sh.end_time
		FROM attendance a
		JOIN shifts sh ON sh.id = a.shift_id
		WHERE a.deleted_at IS NULL AND a.status = '%s'
	`, entity.StatusClockedIn)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting open attendance"), http.StatusInternalServerError)
	}

	var candidates []sweepCandidate
	for rows.Next() {
		var c sweepCandidate
		if err = rows.Scan(&c.AttendanceID, &c.ShiftID, &c.EmployeeID, &c.EmployeeName,
			&c.StoreID, &c.StoreName, &c.WorkDay, &c.EndTime); err != nil {
			rows.Close()
			return nil, web.NewRequestError(errors.Wrap(err, "scanning open attendance"), http.StatusInternalServerError)
		}
		candidates = append(candidates, c)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading open attendance"), http.StatusInternalServerError)
	}

	var closed []SweepAutoClockOutItem
	for _, c := range candidates {
		shiftEnd, err := shifttime.CombineEnd(c.WorkDay, c.EndTime, loc)
		if err != nil {
			log.Println("sweep: skipping shift", c.ShiftID, err)
			continue
		}
		if now.Before(shiftEnd.Add(r.rules.AutoClockOutGrace())) {
			continue
		}

		overtime, err := r.overtimeEnabled(ctx, c.WorkDay)
		if err != nil {
			return closed, err
		}
		if overtime {
			continue
		}

		// the record closes at the scheduled shift end, not at sweep time
		q := r.NewUpdate().Table("attendance").
			Where("id = ? AND status = ? AND deleted_at IS NULL", c.AttendanceID, entity.StatusClockedIn)
		q.Set("status = ?", entity.StatusClockedOut)
		q.Set("clock_out_time = ?", shiftEnd)
		q.Set("auto_clock_out = ?", true)
		q.Set("updated_at = ?", now)

		result, err := q.Exec(ctx)
		if err != nil {
			return closed, web.NewRequestError(errors.Wrap(err, "auto clock-out"), http.StatusInternalServerError)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			closed = append(closed, SweepAutoClockOutItem{
				AttendanceID: c.AttendanceID,
				ShiftID:      c.ShiftID,
				EmployeeID:   c.EmployeeID,
				EmployeeName: c.EmployeeName,
				StoreID:      c.StoreID,
				StoreName:    c.StoreName,
				ClockOutTime: shiftEnd,
			})
		}
	}

	return closed, nil
}

func (r Repository) sweepNoShows(ctx context.Context, now time.Time, loc *time.Location) ([]SweepNoShowItem, error) {
	lookback := now.AddDate(0, 0, -r.rules.NoShowLookbackDays).Format("2006-01-02")

	query := fmt.Sprintf(`
		SELECT sh.id, sh.employee_id, sh.employee_name, sh.store_id, sh.store_name,
		       sh.work_day, sh.start_time
		FROM shifts sh
		WHERE sh.deleted_at IS NULL
		  AND sh.work_day >= '%s'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.shift_id = sh.id AND a.deleted_at IS NULL
		  )
	`, lookback)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting unattended shifts"), http.StatusInternalServerError)
	}

	var candidates []noShowCandidate
	for rows.Next() {
		var c noShowCandidate
		if err = rows.Scan(&c.ShiftID, &c.EmployeeID, &c.EmployeeName, &c.StoreID, &c.StoreName, &c.WorkDay, &c.StartTime); err != nil {
			rows.Close()
			return nil, web.NewRequestError(errors.Wrap(err, "scanning unattended shift"), http.StatusInternalServerError)
		}
		candidates = append(candidates, c)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading unattended shifts"), http.StatusInternalServerError)
	}

	var marked []SweepNoShowItem
	for _, c := range candidates {
		shiftStart, err := shifttime.Combine(c.WorkDay, c.StartTime, loc)
		if err != nil {
			log.Println("sweep: skipping shift", c.ShiftID, err)
			continue
		}
		if now.Before(shiftStart.Add(r.rules.NoShowGrace())) {
			continue
		}

		record := entity.Attendance{
			EmployeeID:   &c.EmployeeID,
			EmployeeName: c.EmployeeName,
			ShiftID:      &c.ShiftID,
			StoreID:      &c.StoreID,
			StoreName:    c.StoreName,
			Status:       strPtr(entity.StatusNoShow),
			IsLate:       boolPtr(false),
			NoShow:       boolPtr(true),
			AutoDetected: boolPtr(true),
			Paid:         boolPtr(false),
		}
		record.CreatedAt = now

		// the partial unique index on (shift_id) WHERE no_show makes
		// the insert idempotent across concurrent sweeps
		result, err := r.NewInsert().Model(&record).On("CONFLICT DO NOTHING").Exec(ctx)
		if err != nil {
			return marked, web.NewRequestError(errors.Wrap(err, "inserting no-show"), http.StatusInternalServerError)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			marked = append(marked, SweepNoShowItem{
				ShiftID:      c.ShiftID,
				EmployeeID:   c.EmployeeID,
				EmployeeName: c.EmployeeName,
				StoreID:      c.StoreID,
				StoreName:    c.StoreName,
				WorkDay:      c.WorkDay,
				StartTime:    c.StartTime,
			})
		}
	}

	return marked, nil
}

// SetOvertime toggles the overtime flag for a calendar day. Days with
// overtime enabled are skipped by the auto clock-out pass.
func (r Repository) SetOvertime(ctx context.Context, request SetOvertimeRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "WorkDay", "Enabled"); err != nil {
		return err
	}

	day, err := time.Parse("2006-01-02", *request.WorkDay)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "parsing work_day"), http.StatusBadRequest)
	}

	_, err = r.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO business_calendar (work_day, overtime_enabled, set_by, set_at)
		VALUES ('%s', %t, %d, now())
		ON CONFLICT (work_day) DO UPDATE
		SET overtime_enabled = EXCLUDED.overtime_enabled, set_by = EXCLUDED.set_by, set_at = EXCLUDED.set_at
	`, day.Format("2006-01-02"), *request.Enabled, claims.UserId))
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "setting overtime"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) overtimeEnabled(ctx context.Context, workDay string) (bool, error) {
	enabled := false
	err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT overtime_enabled FROM business_calendar WHERE work_day = '%s'`, workDay)).
		Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "selecting business calendar"), http.StatusInternalServerError)
	}
	return enabled, nil
}

// UpdateColumns is the manager correction path for attendance records.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return err
	}

	current, err := r.GetById(ctx, request.ID)
	if err != nil {
		return err
	}
	if current.Paid != nil && *current.Paid {
		return web.NewRequestError(errors.New("settled records cannot be edited"), http.StatusConflict)
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.ClockInTime != nil {
		q.Set("clock_in_time = ?", request.ClockInTime)
	}
	if request.ClockOutTime != nil {
		q.Set("clock_out_time = ?", request.ClockOutTime)
	}
	if request.Status != nil {
		switch *request.Status {
		case entity.StatusClockedIn, entity.StatusClockedOut, entity.StatusNoShow:
			q.Set("status = ?", request.Status)
		default:
			return web.NewRequestError(errors.New("invalid status"), http.StatusBadRequest)
		}
	}
	if request.IsLate != nil {
		q.Set("is_late = ?", request.IsLate)
	}
	if request.NoShow != nil {
		q.Set("no_show = ?", request.NoShow)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return err
	}

	return r.DeleteRow(ctx, "attendance", id)
}

// shiftForClockIn resolves the requested shift and verifies it can still be
// clocked into: it belongs to the caller, has no attendance row, and has not
// passed beyond the auto clock-out grace.
func (r Repository) shiftForClockIn(ctx context.Context, shiftID, employeeID int, now time.Time) (entity.Shift, error) {
	var shift entity.Shift
	err := r.NewSelect().Model(&shift).Where("id = ? AND deleted_at IS NULL", shiftID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Shift{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "selecting shift"), http.StatusInternalServerError)
	}

	if shift.EmployeeID == nil || *shift.EmployeeID != employeeID {
		return entity.Shift{}, web.NewRequestError(errors.New("shift belongs to another employee"), http.StatusForbidden)
	}

	taken := 0
	err = r.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT count(id) FROM attendance WHERE shift_id = %d AND deleted_at IS NULL`, shift.ID)).Scan(&taken)
	if err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "checking shift attendance"), http.StatusInternalServerError)
	}
	if taken > 0 {
		return entity.Shift{}, web.NewRequestError(errors.New("shift already has an attendance record"), http.StatusConflict)
	}

	shiftEnd, err := shifttime.CombineEnd(*shift.WorkDay, *shift.EndTime, r.rules.Location())
	if err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "resolving shift end"), http.StatusInternalServerError)
	}
	if now.After(shiftEnd.Add(r.rules.AutoClockOutGrace())) {
		return entity.Shift{}, web.NewRequestError(errors.New("shift already ended"), http.StatusConflict)
	}

	return shift, nil
}

// checkGeofence applies the store's radius to a clock coordinate. Clock-in
// and clock-out share the rule.
func (r Repository) checkGeofence(lat, lng float64, store entity.Store) error {
	if store.Latitude == nil || store.Longitude == nil {
		return web.NewRequestError(errors.New("store has no coordinates"), http.StatusInternalServerError)
	}

	radius := r.rules.DefaultStoreRadius
	if store.Radius != nil && *store.Radius > 0 {
		radius = *store.Radius
	}

	distance := geodist.Meters(lat, lng, *store.Latitude, *store.Longitude)
	if distance > radius {
		return web.NewRequestError(
			errors.Wrapf(postgres.ErrOutsideGeofence, "%.1fm away, radius %.1fm", distance, radius),
			http.StatusBadRequest,
		)
	}

	return nil
}

// clockOutGuard enforces ownership and state before the clock-out mutation.
func clockOutGuard(record entity.Attendance, requesterID int) error {
	if record.EmployeeID == nil || *record.EmployeeID != requesterID {
		return web.NewRequestError(errors.New("attendance belongs to another employee"), http.StatusForbidden)
	}
	if record.Status != nil && *record.Status == entity.StatusClockedOut {
		return web.NewRequestError(postgres.ErrAlreadyClockedOut, http.StatusBadRequest)
	}
	if record.Status == nil || *record.Status != entity.StatusClockedIn {
		return web.NewRequestError(postgres.ErrNotClockedIn, http.StatusBadRequest)
	}
	return nil
}

func (r Repository) invalidateWorkingCache(ctx context.Context, storeID int) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf(workingCacheKey, storeID))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
