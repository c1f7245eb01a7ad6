package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit   *int
	Offset  *int
	Page    *int
	Search  *string
	Role    *string
	StoreID *int
	Active  *bool
}

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID              int      `json:"id"`
	FullName        *string  `json:"full_name"`
	Email           *string  `json:"email"`
	Role            *string  `json:"role"`
	AssignedStoreID *int     `json:"assigned_store_id"`
	StoreName       *string  `json:"store_name"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Phone           *string  `json:"phone"`
	IsActive        *bool    `json:"is_active"`
}

type GetDetailByIdResponse struct {
	ID              int      `json:"id"`
	FullName        *string  `json:"full_name"`
	Email           *string  `json:"email"`
	Role            *string  `json:"role"`
	AssignedStoreID *int     `json:"assigned_store_id"`
	StoreName       *string  `json:"store_name"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Phone           *string  `json:"phone"`
	IsActive        *bool    `json:"is_active"`
}

type CreateRequest struct {
	FullName        *string  `json:"full_name" form:"full_name"`
	Email           *string  `json:"email" form:"email"`
	Password        *string  `json:"password" form:"password"`
	Role            *string  `json:"role" form:"role"`
	AssignedStoreID *int     `json:"assigned_store_id" form:"assigned_store_id"`
	HourlyRate      *float64 `json:"hourly_rate" form:"hourly_rate"`
	Phone           *string  `json:"phone" form:"phone"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID              int       `json:"id" bun:"-"`
	FullName        *string   `json:"full_name" bun:"full_name"`
	Email           *string   `json:"email" bun:"email"`
	Password        *string   `json:"-" bun:"password"`
	Role            *string   `json:"role" bun:"role"`
	AssignedStoreID *int      `json:"assigned_store_id" bun:"assigned_store_id"`
	HourlyRate      *float64  `json:"hourly_rate" bun:"hourly_rate"`
	Phone           *string   `json:"phone" bun:"phone"`
	IsActive        bool      `json:"is_active" bun:"is_active"`
	CreatedAt       time.Time `json:"-" bun:"created_at"`
	CreatedBy       int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID              int      `json:"id" form:"id"`
	FullName        *string  `json:"full_name" form:"full_name"`
	Email           *string  `json:"email" form:"email"`
	Role            *string  `json:"role" form:"role"`
	AssignedStoreID *int     `json:"assigned_store_id" form:"assigned_store_id"`
	HourlyRate      *float64 `json:"hourly_rate" form:"hourly_rate"`
	Phone           *string  `json:"phone" form:"phone"`
	IsActive        *bool    `json:"is_active" form:"is_active"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type ResetPasswordRequest struct {
	UserID int `json:"user_id" form:"user_id"`
}

type ResetPasswordResponse struct {
	UserID      int    `json:"user_id"`
	NewPassword string `json:"new_password"`
}
