package geo

import (
	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/db/models"
)

// CityDTO exposes a city reference entity in API responses.
type CityDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AreaDTO exposes an area and its parent city.
type AreaDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	CityID uuid.UUID `json:"city_id"`
}

// ColonyDTO exposes a colony and its parent area.
type ColonyDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	AreaID uuid.UUID `json:"area_id"`
}

// CategoryDTO exposes a flat category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func cityFromModel(m models.City) CityDTO {
	return CityDTO{ID: m.ID, Name: m.Name}
}

func areaFromModel(m models.Area) AreaDTO {
	return AreaDTO{ID: m.ID, Name: m.Name, CityID: m.CityID}
}

func colonyFromModel(m models.Colony) ColonyDTO {
	return ColonyDTO{ID: m.ID, Name: m.Name, AreaID: m.AreaID}
}

func categoryFromModel(m models.Category) CategoryDTO {
	return CategoryDTO{ID: m.ID, Name: m.Name}
}

func citiesFromModels(ms []models.City) []CityDTO {
	out := make([]CityDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, cityFromModel(m))
	}
	return out
}

func areasFromModels(ms []models.Area) []AreaDTO {
	out := make([]AreaDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, areaFromModel(m))
	}
	return out
}

func coloniesFromModels(ms []models.Colony) []ColonyDTO {
	out := make([]ColonyDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, colonyFromModel(m))
	}
	return out
}

func categoriesFromModels(ms []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, categoryFromModel(m))
	}
	return out
}
