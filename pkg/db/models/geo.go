package models

import "github.com/google/uuid"

// City is the root of the geo hierarchy.
type City struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null" json:"name"`
}

// Area belongs to exactly one City.
type Area struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	CityID uuid.UUID `gorm:"column:city_id;type:uuid;not null" json:"city_id"`
}

// Colony belongs to exactly one Area.
type Colony struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	AreaID uuid.UUID `gorm:"column:area_id;type:uuid;not null" json:"area_id"`
}

// Category is a flat classification with no parent.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null" json:"name"`
}

func (City) TableName() string     { return "cities" }
func (Area) TableName() string     { return "areas" }
func (Colony) TableName() string   { return "colonies" }
func (Category) TableName() string { return "categories" }
