package entity

import (
	"github.com/uptrace/bun"
)

type Store struct {
	bun.BaseModel `bun:"table:stores"`

	BasicEntity
	Name      *string  `json:"name" bun:"name"`
	Address   *string  `json:"address" bun:"address"`
	Phone     *string  `json:"phone" bun:"phone"`
	Latitude  *float64 `json:"lat" bun:"latitude"`
	Longitude *float64 `json:"lng" bun:"longitude"`
	Radius    *float64 `json:"radius" bun:"radius"`
	LogoUrl   *string  `json:"logo_url" bun:"logo_url"`
}
