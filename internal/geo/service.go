package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/pkg/db/models"
	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

type geoRepository interface {
	ListCities(ctx context.Context) ([]models.City, error)
	ListAreas(ctx context.Context, cityID *uuid.UUID) ([]models.Area, error)
	ListColonies(ctx context.Context, areaID *uuid.UUID) ([]models.Colony, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCity(ctx context.Context, id uuid.UUID) (*models.City, error)
	FindArea(ctx context.Context, id uuid.UUID) (*models.Area, error)
	FindColony(ctx context.Context, id uuid.UUID) (*models.Colony, error)
	NameExists(ctx context.Context, kind enums.GeoKind, name string, parentID *uuid.UUID) (bool, error)
	CreateCity(ctx context.Context, name string) (*models.City, error)
	CreateArea(ctx context.Context, name string, cityID uuid.UUID) (*models.Area, error)
	CreateColony(ctx context.Context, name string, areaID uuid.UUID) (*models.Colony, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

// Service answers geo hierarchy queries and owns reference-entity insertion.
type Service interface {
	ListCities(ctx context.Context) ([]CityDTO, error)
	ListAreas(ctx context.Context, cityID *uuid.UUID) ([]AreaDTO, error)
	ListColonies(ctx context.Context, areaID *uuid.UUID) ([]ColonyDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	AddEntity(ctx context.Context, input AddEntityInput) (uuid.UUID, error)
	ValidatePlacement(ctx context.Context, cityID, areaID, colonyID *uuid.UUID) error
}

// AddEntityInput captures the data required to insert a reference entity.
type AddEntityInput struct {
	Kind     enums.GeoKind
	Name     string
	ParentID *uuid.UUID
}

type service struct {
	repo  geoRepository
	cache *Cache
}

// NewService builds a geo service. The cache may be nil.
func NewService(repo geoRepository, cache *Cache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("geo repository required")
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) ListCities(ctx context.Context) ([]CityDTO, error) {
	var cached []CityDTO
	if s.cache.GetList(ctx, enums.GeoKindCity, nil, &cached) {
		return cached, nil
	}

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cities")
	}
	dtos := citiesFromModels(cities)
	s.cache.PutList(ctx, enums.GeoKindCity, nil, dtos)
	return dtos, nil
}

func (s *service) ListAreas(ctx context.Context, cityID *uuid.UUID) ([]AreaDTO, error) {
	var cached []AreaDTO
	if s.cache.GetList(ctx, enums.GeoKindArea, cityID, &cached) {
		return cached, nil
	}

	areas, err := s.repo.ListAreas(ctx, cityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list areas")
	}
	dtos := areasFromModels(areas)
	s.cache.PutList(ctx, enums.GeoKindArea, cityID, dtos)
	return dtos, nil
}

func (s *service) ListColonies(ctx context.Context, areaID *uuid.UUID) ([]ColonyDTO, error) {
	var cached []ColonyDTO
	if s.cache.GetList(ctx, enums.GeoKindColony, areaID, &cached) {
		return cached, nil
	}

	colonies, err := s.repo.ListColonies(ctx, areaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colonies")
	}
	dtos := coloniesFromModels(colonies)
	s.cache.PutList(ctx, enums.GeoKindColony, areaID, dtos)
	return dtos, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	var cached []CategoryDTO
	if s.cache.GetList(ctx, enums.GeoKindCategory, nil, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := categoriesFromModels(categories)
	s.cache.PutList(ctx, enums.GeoKindCategory, nil, dtos)
	return dtos, nil
}

func (s *service) AddEntity(ctx context.Context, input AddEntityInput) (uuid.UUID, error) {
	if !input.Kind.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity kind")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Kind.RequiresParent() && input.ParentID == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s requires a parent", input.Kind))
	}

	if err := s.checkParentExists(ctx, input.Kind, input.ParentID); err != nil {
		return uuid.Nil, err
	}

	exists, err := s.repo.NameExists(ctx, input.Kind, name, input.ParentID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check name uniqueness")
	}
	if exists {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeDuplicateName, fmt.Sprintf("%s %q already exists", input.Kind, name))
	}

	id, err := s.createEntity(ctx, input.Kind, name, input.ParentID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create geo entity")
	}

	_ = s.cache.Invalidate(ctx, input.Kind, input.ParentID)
	return id, nil
}

func (s *service) checkParentExists(ctx context.Context, kind enums.GeoKind, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	var err error
	switch kind {
	case enums.GeoKindArea:
		_, err = s.repo.FindCity(ctx, *parentID)
	case enums.GeoKindColony:
		_, err = s.repo.FindArea(ctx, *parentID)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s does not take a parent", kind))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "parent entity not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent entity")
	}
	return nil
}

func (s *service) createEntity(ctx context.Context, kind enums.GeoKind, name string, parentID *uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case enums.GeoKindCity:
		city, err := s.repo.CreateCity(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return city.ID, nil
	case enums.GeoKindArea:
		area, err := s.repo.CreateArea(ctx, name, *parentID)
		if err != nil {
			return uuid.Nil, err
		}
		return area.ID, nil
	case enums.GeoKindColony:
		colony, err := s.repo.CreateColony(ctx, name, *parentID)
		if err != nil {
			return uuid.Nil, err
		}
		return colony.ID, nil
	case enums.GeoKindCategory:
		category, err := s.repo.CreateCategory(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return category.ID, nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported kind %q", kind)
	}
}

// ValidatePlacement checks that a geo selection forms a consistent chain. The
// chain must be contiguous down to the deepest non-nil level: a colony needs
// its area, an area needs its city. A city alone is fine.
func (s *service) ValidatePlacement(ctx context.Context, cityID, areaID, colonyID *uuid.UUID) error {
	if colonyID != nil && areaID == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "colony selected without an area")
	}
	if areaID != nil && cityID == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "area selected without a city")
	}

	if areaID != nil {
		area, err := s.repo.FindArea(ctx, *areaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "unknown area")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load area")
		}
		if area.CityID != *cityID {
			return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "area does not belong to the selected city")
		}
	}

	if colonyID != nil {
		colony, err := s.repo.FindColony(ctx, *colonyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "unknown colony")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load colony")
		}
		if colony.AreaID != *areaID {
			return pkgerrors.New(pkgerrors.CodeInvalidPlacement, "colony does not belong to the selected area")
		}
	}

	return nil
}
