package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	FullName        *string  `json:"full_name" bun:"full_name"`
	Email           *string  `json:"email" bun:"email"`
	Password        *string  `json:"-" bun:"password"`
	Role            *string  `json:"role" bun:"role"`
	AssignedStoreID *int     `json:"assigned_store_id" bun:"assigned_store_id"`
	HourlyRate      *float64 `json:"hourly_rate" bun:"hourly_rate"`
	Phone           *string  `json:"phone" bun:"phone"`
	IsActive        *bool    `json:"is_active" bun:"is_active"`
}
