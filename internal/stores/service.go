package stores

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
	"github.com/storelane/storelane-backend/pkg/pagination"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByStoreID(ctx context.Context, storeID string) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	List(ctx context.Context, filter StoreFilter, page pagination.Request) ([]models.Store, int64, error)
}

type placementValidator interface {
	ValidatePlacement(ctx context.Context, cityID, areaID, colonyID *uuid.UUID) error
}

// Service exposes the store directory operations.
type Service interface {
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	GetByStoreID(ctx context.Context, storeID string) (*StoreDTO, error)
	Update(ctx context.Context, storeID string, patch UpdateStoreInput) (*StoreDTO, error)
	SetStatus(ctx context.Context, storeID string, next enums.ApprovalStatus) (*StoreDTO, error)
	List(ctx context.Context, filter StoreFilter, page pagination.Request) (*StorePage, error)
}

type service struct {
	repo storeRepository
	geo  placementValidator
}

// NewService builds a store service with the provided collaborators.
func NewService(repo storeRepository, geo placementValidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if geo == nil {
		return nil, fmt.Errorf("placement validator required")
	}
	return &service{repo: repo, geo: geo}, nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	input.StoreName = strings.TrimSpace(input.StoreName)
	if input.StoreName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}

	channel := input.Channel
	if channel == "" {
		channel = enums.SubmissionChannelPublic
	}
	if !channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid submission channel %q", channel))
	}

	status := channel.DefaultStatus()
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid approval status %q", *input.Status))
		}
		status = *input.Status
	}

	if err := s.geo.ValidatePlacement(ctx, input.CityID, input.AreaID, input.ColonyID); err != nil {
		return nil, err
	}

	store := input.ToModel(status)
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) GetByStoreID(ctx context.Context, storeID string) (*StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, storeID string, patch UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if patch.StoreName != nil {
		name := strings.TrimSpace(*patch.StoreName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be emptied")
		}
		store.StoreName = name
	}
	applyStringPtr(&store.OwnerName, patch.OwnerName)
	applyStringPtr(&store.ContactNumber, patch.ContactNumber)
	applyStringPtr(&store.WhatsappNumber, patch.WhatsappNumber)
	applyStringPtr(&store.FullAddress, patch.FullAddress)
	applyStringPtr(&store.Description, patch.Description)
	applyStringPtr(&store.InstagramLink, patch.InstagramLink)
	applyStringPtr(&store.OpenDays, patch.OpenDays)
	applyStringPtr(&store.OpenTime, patch.OpenTime)
	applyStringPtr(&store.CloseTime, patch.CloseTime)
	applyStringPtr(&store.MapsURL, patch.MapsURL)
	applyStringPtr(&store.SubmittedBy, patch.SubmittedBy)

	if patch.Tags != nil {
		store.Tags = toStringArray(*patch.Tags)
	}
	if patch.Highlights != nil {
		store.Highlights = toStringArray(*patch.Highlights)
	}
	if patch.IsPremium != nil {
		store.IsPremium = *patch.IsPremium
	}
	if patch.Latitude != nil {
		store.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		store.Longitude = *patch.Longitude
	}
	if patch.RatingSum != nil {
		store.RatingSum = clampNonNegative(*patch.RatingSum)
	}
	if patch.RatingCount != nil {
		store.RatingCount = clampNonNegative(*patch.RatingCount)
	}

	if patch.CityID.Valid {
		store.CityID = cloneUUIDPtr(patch.CityID.Value)
	}
	if patch.AreaID.Valid {
		store.AreaID = cloneUUIDPtr(patch.AreaID.Value)
	}
	if patch.ColonyID.Valid {
		store.ColonyID = cloneUUIDPtr(patch.ColonyID.Value)
	}
	if patch.CategoryID.Valid {
		store.CategoryID = cloneUUIDPtr(patch.CategoryID.Value)
	}

	// the effective placement after the patch must still form a valid chain
	if err := s.geo.ValidatePlacement(ctx, store.CityID, store.AreaID, store.ColonyID); err != nil {
		return nil, err
	}

	// an implicit status change rides the same transition check as SetStatus
	if patch.Status != nil && *patch.Status != store.ApprovalStatus {
		if err := CheckTransition(store.ApprovalStatus, *patch.Status); err != nil {
			return nil, err
		}
		store.ApprovalStatus = *patch.Status
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) SetStatus(ctx context.Context, storeID string, next enums.ApprovalStatus) (*StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(store.ApprovalStatus, next); err != nil {
		return nil, err
	}

	store.ApprovalStatus = next
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store status")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context, filter StoreFilter, page pagination.Request) (*StorePage, error) {
	if !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid approval status %q", filter.Status))
	}

	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	return &StorePage{
		Items:      storesFromModels(items),
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: pagination.TotalPages(total, page.Size),
	}, nil
}

func (s *service) loadStore(ctx context.Context, storeID string) (*models.Store, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	store, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}

func applyStringPtr(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
