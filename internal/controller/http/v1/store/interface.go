package store

import (
	"context"

	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/store"
)

type Store interface {
	GetById(ctx context.Context, id int) (entity.Store, error)
	GetList(ctx context.Context, filter store.Filter) ([]store.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (store.GetDetailByIdResponse, error)
	Create(ctx context.Context, request store.CreateRequest) (store.CreateResponse, error)
	UpdateColumns(ctx context.Context, request store.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
