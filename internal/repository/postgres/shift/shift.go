package shift

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/pkg/shifttime"
	"workforce/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Shift, error) {
	var detail entity.Shift

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Shift{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "selecting shift"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleEmployee)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE sh.deleted_at IS NULL`

	// employees see only their own schedule
	if claims.Role == auth.RoleEmployee {
		whereQuery += fmt.Sprintf(` AND sh.employee_id = %d`, claims.UserId)
	} else if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND sh.employee_id = %d`, *filter.EmployeeID)
	}
	if filter.StoreID != nil {
		whereQuery += fmt.Sprintf(` AND sh.store_id = %d`, *filter.StoreID)
	}
	if filter.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *filter.DateFrom)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "parsing date_from"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND sh.work_day >= '%s'`, from.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		to, err := time.Parse("2006-01-02", *filter.DateTo)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "parsing date_to"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND sh.work_day <= '%s'`, to.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY sh.work_day, sh.start_time"

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
			sh.id,
			sh.employee_id,
			sh.employee_name,
			sh.store_id,
			sh.store_name,
			sh.supervisor_id,
			sh.supervisor_name,
			sh.work_day,
			sh.start_time,
			sh.end_time
		FROM shifts sh
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.EmployeeName,
			&detail.StoreID,
			&detail.StoreName,
			&detail.SupervisorID,
			&detail.SupervisorName,
			&workDayString,
			&detail.StartTime,
			&detail.EndTime); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning shift list"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(sh.id)
		FROM shifts sh
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning shift count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "StoreID", "WorkDay", "StartTime", "EndTime"); err != nil {
		return CreateResponse{}, err
	}

	workDay, err := time.Parse("2006-01-02", *request.WorkDay)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing work_day"), http.StatusBadRequest)
	}
	if _, err = shifttime.MinutesOfDay(*request.StartTime); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing start_time"), http.StatusBadRequest)
	}
	if _, err = shifttime.MinutesOfDay(*request.EndTime); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing end_time"), http.StatusBadRequest)
	}
	if _, err = shifttime.DurationHours(*request.StartTime, *request.EndTime); err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	var employeeName string
	err = r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT full_name FROM users WHERE id = %d AND deleted_at IS NULL`, *request.EmployeeID)).
		Scan(&employeeName)
	if errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	var storeName string
	err = r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT name FROM stores WHERE id = %d AND deleted_at IS NULL`, *request.StoreID)).
		Scan(&storeName)
	if errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(errors.New("store not found"), http.StatusNotFound)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting store"), http.StatusInternalServerError)
	}

	var supervisorName *string
	if request.SupervisorID != nil {
		var name string
		err = r.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT full_name FROM users WHERE id = %d AND deleted_at IS NULL`, *request.SupervisorID)).
			Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return CreateResponse{}, web.NewRequestError(errors.New("supervisor not found"), http.StatusNotFound)
		}
		if err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting supervisor"), http.StatusInternalServerError)
		}
		supervisorName = &name
	}

	if err = r.checkConflict(ctx, *request.EmployeeID, workDay, *request.StartTime, *request.EndTime, 0); err != nil {
		return CreateResponse{}, err
	}

	day := workDay.Format("2006-01-02")

	var response CreateResponse
	response.EmployeeID = request.EmployeeID
	response.EmployeeName = &employeeName
	response.StoreID = request.StoreID
	response.StoreName = &storeName
	response.SupervisorID = request.SupervisorID
	response.SupervisorName = supervisorName
	response.WorkDay = &day
	response.StartTime = request.StartTime
	response.EndTime = request.EndTime
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating shift"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor)
	if err != nil {
		return err
	}

	current, err := r.GetById(ctx, request.ID)
	if err != nil {
		return err
	}

	start := *current.StartTime
	end := *current.EndTime
	if request.StartTime != nil {
		start = *request.StartTime
	}
	if request.EndTime != nil {
		end = *request.EndTime
	}
	if request.StartTime != nil || request.EndTime != nil {
		if _, err = shifttime.DurationHours(start, end); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}
		workDay, err := time.Parse("2006-01-02", *current.WorkDay)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing work_day"), http.StatusBadRequest)
		}
		if err = r.checkConflict(ctx, *current.EmployeeID, workDay, start, end, request.ID); err != nil {
			return err
		}
	}

	q := r.NewUpdate().Table("shifts").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.EndTime != nil {
		q.Set("end_time = ?", request.EndTime)
	}
	if request.SupervisorID != nil {
		var name string
		err = r.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT full_name FROM users WHERE id = %d AND deleted_at IS NULL`, *request.SupervisorID)).
			Scan(&name)
		if err != nil {
			return web.NewRequestError(errors.New("supervisor not found"), http.StatusNotFound)
		}
		q.Set("supervisor_id = ?", request.SupervisorID)
		q.Set("supervisor_name = ?", name)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating shift"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor)
	if err != nil {
		return err
	}

	return r.DeleteRow(ctx, "shifts", id)
}

// checkConflict rejects a shift that overlaps any of the employee's other
// shifts on the same day. excludeID skips the shift being updated.
func (r Repository) checkConflict(ctx context.Context, employeeID int, workDay time.Time, start, end string, excludeID int) error {
	query := fmt.Sprintf(`
		SELECT id, store_name, start_time, end_time
		FROM shifts
		WHERE deleted_at IS NULL AND employee_id = %d AND work_day = '%s' AND id != %d
	`, employeeID, workDay.Format("2006-01-02"), excludeID)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting existing shifts"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                 int
			storeName          *string
			existStart, endStr string
		)
		if err = rows.Scan(&id, &storeName, &existStart, &endStr); err != nil {
			return web.NewRequestError(errors.Wrap(err, "scanning existing shift"), http.StatusInternalServerError)
		}

		overlaps, err := shifttime.Overlaps(start, end, existStart, endStr)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "comparing shift windows"), http.StatusBadRequest)
		}
		if overlaps {
			return conflictError(id, storeName, existStart, endStr)
		}
	}

	return rows.Err()
}

// conflictError names the existing shift's store and window so the caller
// knows what to reschedule around.
func conflictError(id int, storeName *string, start, end string) error {
	store := "unknown store"
	if storeName != nil {
		store = *storeName
	}
	return web.NewRequestError(
		errors.Wrapf(postgres.ErrShiftConflict, "shift %d at %s (%s)", id, store, shifttime.Window(start, end)),
		http.StatusConflict,
	)
}
