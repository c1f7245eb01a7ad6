package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
	rules config.Rules
}

func NewRepository(database *postgresql.Database, rules config.Rules) *Repository {
	return &Repository{Database: database, rules: rules}
}

func (r Repository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("lower(email) = lower(?) AND deleted_at IS NULL", email).Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found!"),
			Status: http.StatusUnauthorized,
		}
	}

	if detail.IsActive != nil && !*detail.IsActive {
		return entity.User{}, &web.Error{
			Err:    errors.New("account is deactivated"),
			Status: http.StatusForbidden,
		}
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE u.deleted_at IS NULL`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (u.full_name ilike '%s' OR u.email ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.Role != nil {
		role := strings.ToUpper(strings.Replace(*filter.Role, "'", "''", -1))
		whereQuery += fmt.Sprintf(` AND u.role = '%s'`, role)
	}
	if filter.StoreID != nil {
		whereQuery += fmt.Sprintf(` AND u.assigned_store_id = %d`, *filter.StoreID)
	}
	if filter.Active != nil {
		whereQuery += fmt.Sprintf(` AND u.is_active = %t`, *filter.Active)
	}

	// supervisors only see their own store's staff
	if claims.Role == auth.RoleSupervisor {
		whereQuery += fmt.Sprintf(` AND u.assigned_store_id = (SELECT assigned_store_id FROM users WHERE id = %d)`, claims.UserId)
	}

	orderQuery := "ORDER BY u.created_at desc"

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
			u.id,
			u.full_name,
			u.email,
			u.role,
			u.assigned_store_id,
			s.name,
			u.hourly_rate,
			u.phone,
			u.is_active
		FROM users u
		LEFT JOIN stores s ON s.id = u.assigned_store_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.Email,
			&detail.Role,
			&detail.AssignedStoreID,
			&detail.StoreName,
			&detail.HourlyRate,
			&detail.Phone,
			&detail.IsActive); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(u.id)
		FROM users u
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	// employees may only read their own profile
	if claims.Role == auth.RoleEmployee && claims.UserId != id {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.full_name,
			u.email,
			u.role,
			u.assigned_store_id,
			s.name,
			u.hourly_rate,
			u.phone,
			u.is_active
		FROM users u
		LEFT JOIN stores s ON s.id = u.assigned_store_id
		WHERE u.deleted_at IS NULL AND u.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.FullName,
		&detail.Email,
		&detail.Role,
		&detail.AssignedStoreID,
		&detail.StoreName,
		&detail.HourlyRate,
		&detail.Phone,
		&detail.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FullName", "Email", "Role"); err != nil {
		return CreateResponse{}, err
	}

	role := strings.ToUpper(*request.Role)
	if !auth.ValidRole(role) {
		return CreateResponse{}, web.NewRequestError(errors.New("invalid role"), http.StatusBadRequest)
	}
	// the owner account is created once by migration
	if role == auth.RoleOwner {
		return CreateResponse{}, web.NewRequestError(errors.New("owner account cannot be created"), http.StatusForbidden)
	}
	// managers cannot mint other managers or a co-owner
	if claims.Role == auth.RoleManager && (role == auth.RoleManager || role == auth.RoleCo) {
		return CreateResponse{}, web.NewRequestError(errors.New("forbidden role"), http.StatusForbidden)
	}

	exists := 0
	if err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT count(id) FROM users WHERE lower(email) = lower('%s') AND deleted_at IS NULL`,
			strings.Replace(*request.Email, "'", "''", -1))).Scan(&exists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking email"), http.StatusInternalServerError)
	}
	if exists > 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("email already in use"), http.StatusConflict)
	}

	password := r.rules.DefaultEmployeePass
	if request.Password != nil && *request.Password != "" {
		password = *request.Password
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashed := string(hash)

	var response CreateResponse
	response.FullName = request.FullName
	response.Email = request.Email
	response.Password = &hashed
	response.Role = &role
	response.AssignedStoreID = request.AssignedStoreID
	response.HourlyRate = request.HourlyRate
	response.Phone = request.Phone
	response.IsActive = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return err
	}

	target, err := r.GetById(ctx, request.ID)
	if err != nil {
		return err
	}
	if target.Role != nil && *target.Role == auth.RoleOwner && claims.Role != auth.RoleOwner {
		return web.NewRequestError(errors.New("cannot modify owner account"), http.StatusForbidden)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if !auth.ValidRole(role) || role == auth.RoleOwner {
			return web.NewRequestError(errors.New("invalid role"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}
	if request.AssignedStoreID != nil {
		q.Set("assigned_store_id = ?", request.AssignedStoreID)
	}
	if request.HourlyRate != nil {
		if *request.HourlyRate < 0 {
			return web.NewRequestError(errors.New("hourly rate cannot be negative"), http.StatusBadRequest)
		}
		q.Set("hourly_rate = ?", request.HourlyRate)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "OldPassword", "NewPassword"); err != nil {
		return err
	}

	detail, err := r.GetById(ctx, claims.UserId)
	if err != nil {
		return err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(request.OldPassword)); err != nil {
		return web.NewRequestError(errors.New("incorrect password"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", claims.UserId)
	q.Set("password = ?", string(hash))
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating password"), http.StatusBadRequest)
	}

	return nil
}

// ResetPassword sets the target account back to the default password.
func (r Repository) ResetPassword(ctx context.Context, request ResetPasswordRequest) (ResetPasswordResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return ResetPasswordResponse{}, err
	}

	if err := r.ValidateStruct(&request, "UserID"); err != nil {
		return ResetPasswordResponse{}, err
	}

	target, err := r.GetById(ctx, request.UserID)
	if err != nil {
		return ResetPasswordResponse{}, err
	}
	if target.Role != nil && *target.Role == auth.RoleOwner {
		return ResetPasswordResponse{}, web.NewRequestError(errors.New("cannot reset owner password"), http.StatusForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.rules.DefaultEmployeePass), bcrypt.DefaultCost)
	if err != nil {
		return ResetPasswordResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.UserID)
	q.Set("password = ?", string(hash))
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return ResetPasswordResponse{}, web.NewRequestError(errors.Wrap(err, "resetting password"), http.StatusBadRequest)
	}

	return ResetPasswordResponse{UserID: request.UserID, NewPassword: r.rules.DefaultEmployeePass}, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return err
	}

	target, err := r.GetById(ctx, id)
	if err != nil {
		return err
	}
	if target.Role != nil && *target.Role == auth.RoleOwner {
		return web.NewRequestError(errors.New("owner account cannot be deleted"), http.StatusForbidden)
	}
	if claims.UserId == id {
		return web.NewRequestError(errors.New("cannot delete own account"), http.StatusBadRequest)
	}

	return r.DeleteRow(ctx, "users", id)
}
