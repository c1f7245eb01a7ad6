package store

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type GetListResponse struct {
	ID        int      `json:"id"`
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
	Radius    *float64 `json:"radius"`
	LogoUrl   *string  `json:"logo_url"`
}

type GetDetailByIdResponse struct {
	ID        int      `json:"id"`
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
	Radius    *float64 `json:"radius"`
	LogoUrl   *string  `json:"logo_url"`
}

type CreateRequest struct {
	Name      *string  `json:"name" form:"name"`
	Address   *string  `json:"address" form:"address"`
	Phone     *string  `json:"phone" form:"phone"`
	Latitude  *float64 `json:"lat" form:"lat"`
	Longitude *float64 `json:"lng" form:"lng"`
	Radius    *float64 `json:"radius" form:"radius"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:stores"`

	ID        int       `json:"id" bun:"-"`
	Name      *string   `json:"name" bun:"name"`
	Address   *string   `json:"address" bun:"address"`
	Phone     *string   `json:"phone" bun:"phone"`
	Latitude  *float64  `json:"lat" bun:"latitude"`
	Longitude *float64  `json:"lng" bun:"longitude"`
	Radius    float64   `json:"radius" bun:"radius"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID        int      `json:"id" form:"id"`
	Name      *string  `json:"name" form:"name"`
	Address   *string  `json:"address" form:"address"`
	Phone     *string  `json:"phone" form:"phone"`
	Latitude  *float64 `json:"lat" form:"lat"`
	Longitude *float64 `json:"lng" form:"lng"`
	Radius    *float64 `json:"radius" form:"radius"`
	LogoUrl   *string  `json:"logo_url" form:"logo_url"`
}
