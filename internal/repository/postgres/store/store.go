package store

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
)

type Repository struct {
	*postgresql.Database
	rules config.Rules
}

func NewRepository(database *postgresql.Database, rules config.Rules) *Repository {
	return &Repository{Database: database, rules: rules}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Store, error) {
	var detail entity.Store

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Store{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Store{}, web.NewRequestError(errors.Wrap(err, "selecting store"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE s.deleted_at IS NULL`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (s.name ilike '%s' OR s.address ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}

	orderQuery := "ORDER BY s.created_at desc"

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
			s.id,
			s.name,
			s.address,
			s.phone,
			s.latitude,
			s.longitude,
			s.radius,
			s.logo_url
		FROM stores s
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting stores"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.Address,
			&detail.Phone,
			&detail.Latitude,
			&detail.Longitude,
			&detail.Radius,
			&detail.LogoUrl); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning store list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(s.id)
		FROM stores s
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning store count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant, auth.RoleEmployee)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			s.id,
			s.name,
			s.address,
			s.phone,
			s.latitude,
			s.longitude,
			s.radius,
			s.logo_url
		FROM stores s
		WHERE s.deleted_at IS NULL AND s.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Address,
		&detail.Phone,
		&detail.Latitude,
		&detail.Longitude,
		&detail.Radius,
		&detail.LogoUrl,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting store detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleCo, auth.RoleManager)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Latitude", "Longitude"); err != nil {
		return CreateResponse{}, err
	}

	if *request.Latitude < -90 || *request.Latitude > 90 || *request.Longitude < -180 || *request.Longitude > 180 {
		return CreateResponse{}, web.NewRequestError(errors.New("invalid coordinates"), http.StatusBadRequest)
	}

	count := 0
	if err := r.QueryRowContext(ctx, `SELECT count(id) FROM stores WHERE deleted_at IS NULL`).Scan(&count); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "counting stores"), http.StatusInternalServerError)
	}
	if count >= r.rules.MaxStores {
		return CreateResponse{}, web.NewRequestError(postgres.ErrStoreLimitReached, http.StatusConflict)
	}

	radius := r.rules.DefaultStoreRadius
	if request.Radius != nil {
		if *request.Radius <= 0 {
			return CreateResponse{}, web.NewRequestError(errors.New("radius must be positive"), http.StatusBadRequest)
		}
		radius = *request.Radius
	}

	var response CreateResponse
	response.Name = request.Name
	response.Address = request.Address
	response.Phone = request.Phone
	response.Latitude = request.Latitude
	response.Longitude = request.Longitude
	response.Radius = radius
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating store"), http.StatusBadRequest)
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

	q := r.NewUpdate().Table("stores").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Address != nil {
		q.Set("address = ?", request.Address)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Latitude != nil {
		if *request.Latitude < -90 || *request.Latitude > 90 {
			return web.NewRequestError(errors.New("invalid latitude"), http.StatusBadRequest)
		}
		q.Set("latitude = ?", request.Latitude)
	}
	if request.Longitude != nil {
		if *request.Longitude < -180 || *request.Longitude > 180 {
			return web.NewRequestError(errors.New("invalid longitude"), http.StatusBadRequest)
		}
		q.Set("longitude = ?", request.Longitude)
	}
	if request.Radius != nil {
		if *request.Radius <= 0 {
			return web.NewRequestError(errors.New("radius must be positive"), http.StatusBadRequest)
		}
		q.Set("radius = ?", request.Radius)
	}
	if request.LogoUrl != nil {
		q.Set("logo_url = ?", request.LogoUrl)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating store"), http.StatusBadRequest)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	_, err := r.CheckClaims(ctx, auth.RoleCo)
	if err != nil {
		return err
	}

	return r.DeleteRow(ctx, "stores", id)
}
