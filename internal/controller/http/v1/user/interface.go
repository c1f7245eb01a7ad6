package user

import (
	"context"

	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/user"
)

type User interface {
	GetById(ctx context.Context, id int) (entity.User, error)
	GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (user.GetDetailByIdResponse, error)
	Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error)
	UpdateColumns(ctx context.Context, request user.UpdateRequest) error
	ChangePassword(ctx context.Context, request user.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, request user.ResetPasswordRequest) (user.ResetPasswordResponse, error)
	Delete(ctx context.Context, id int) error
}
