package geo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/pkg/db/models"
	"github.com/storelane/storelane-backend/pkg/enums"
)

// Repository handles geo reference-data persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to geo hierarchy operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCities returns every city ordered by name.
func (r *Repository) ListCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// ListAreas returns areas, restricted to a city when cityID is provided.
func (r *Repository) ListAreas(ctx context.Context, cityID *uuid.UUID) ([]models.Area, error) {
	q := r.db.WithContext(ctx).Order("name asc")
	if cityID != nil {
		q = q.Where("city_id = ?", *cityID)
	}
	var areas []models.Area
	if err := q.Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// ListColonies returns colonies, restricted to an area when areaID is provided.
func (r *Repository) ListColonies(ctx context.Context, areaID *uuid.UUID) ([]models.Colony, error) {
	q := r.db.WithContext(ctx).Order("name asc")
	if areaID != nil {
		q = q.Where("area_id = ?", *areaID)
	}
	var colonies []models.Colony
	if err := q.Find(&colonies).Error; err != nil {
		return nil, err
	}
	return colonies, nil
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCity loads a city by ID.
func (r *Repository) FindCity(ctx context.Context, id uuid.UUID) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// FindArea loads an area by ID.
func (r *Repository) FindArea(ctx context.Context, id uuid.UUID) (*models.Area, error) {
	var area models.Area
	if err := r.db.WithContext(ctx).First(&area, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// FindColony loads a colony by ID.
func (r *Repository) FindColony(ctx context.Context, id uuid.UUID) (*models.Colony, error) {
	var colony models.Colony
	if err := r.db.WithContext(ctx).First(&colony, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &colony, nil
}

// FindCategory loads a category by ID.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// NameExists reports whether an entity of the given kind already carries the
// name (case-insensitive) under the same parent.
func (r *Repository) NameExists(ctx context.Context, kind enums.GeoKind, name string, parentID *uuid.UUID) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	q := r.db.WithContext(ctx)
	switch kind {
	case enums.GeoKindCity:
		q = q.Model(&models.City{}).Where("LOWER(name) = ?", normalized)
	case enums.GeoKindArea:
		q = q.Model(&models.Area{}).Where("LOWER(name) = ?", normalized)
		if parentID != nil {
			q = q.Where("city_id = ?", *parentID)
		}
	case enums.GeoKindColony:
		q = q.Model(&models.Colony{}).Where("LOWER(name) = ?", normalized)
		if parentID != nil {
			q = q.Where("area_id = ?", *parentID)
		}
	case enums.GeoKindCategory:
		q = q.Model(&models.Category{}).Where("LOWER(name) = ?", normalized)
	default:
		return false, gorm.ErrInvalidData
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateCity persists a new city.
func (r *Repository) CreateCity(ctx context.Context, name string) (*models.City, error) {
	city := &models.City{ID: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		return nil, err
	}
	return city, nil
}

// CreateArea persists a new area under the given city.
func (r *Repository) CreateArea(ctx context.Context, name string, cityID uuid.UUID) (*models.Area, error) {
	area := &models.Area{ID: uuid.New(), Name: name, CityID: cityID}
	if err := r.db.WithContext(ctx).Create(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

// CreateColony persists a new colony under the given area.
func (r *Repository) CreateColony(ctx context.Context, name string, areaID uuid.UUID) (*models.Colony, error) {
	colony := &models.Colony{ID: uuid.New(), Name: name, AreaID: areaID}
	if err := r.db.WithContext(ctx).Create(colony).Error; err != nil {
		return nil, err
	}
	return colony, nil
}

// CreateCategory persists a new category.
func (r *Repository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{ID: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}
