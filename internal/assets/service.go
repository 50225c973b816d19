package assets

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/stores"
	"github.com/storelane/storelane-backend/pkg/db/models"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
	"github.com/storelane/storelane-backend/pkg/logger"
)

const imageKeyPrefix = "store_images"

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type storeRepository interface {
	FindByStoreID(ctx context.Context, storeID string) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

type assetStore interface {
	Put(ctx context.Context, object string, data []byte, contentType string) (string, error)
	ObjectFromURL(rawURL string) (string, bool)
}

type cleanupPublisher interface {
	PublishCleanup(ctx context.Context, event CleanupEvent) error
}

// Service owns the image reference lifecycle on store records. The asset
// store and the record store are not transactional with each other: the new
// object is uploaded first, the record is updated second, and removal of the
// superseded object is a published instruction, never a precondition.
type Service interface {
	ReplaceImage(ctx context.Context, storeID, filename string, data []byte, contentType string) (*stores.StoreDTO, error)
	ClearImage(ctx context.Context, storeID string) (*stores.StoreDTO, error)
}

type service struct {
	repo      storeRepository
	store     assetStore
	publisher cleanupPublisher
	logg      *logger.Logger
	maxBytes  int64
}

// NewService builds the asset reference manager. The publisher may be nil, in
// which case superseded objects are simply left behind.
func NewService(repo storeRepository, store assetStore, publisher cleanupPublisher, logg *logger.Logger, maxBytes int64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("asset store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		repo:      repo,
		store:     store,
		publisher: publisher,
		logg:      logg,
		maxBytes:  maxBytes,
	}, nil
}

func (s *service) ReplaceImage(ctx context.Context, storeID, filename string, data []byte, contentType string) (*stores.StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image payload is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds %d bytes", s.maxBytes))
	}
	name := sanitizeFilename(filename)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}

	object := fmt.Sprintf("%s/%s_%s", imageKeyPrefix, store.StoreID, name)
	url, err := s.store.Put(ctx, object, data, contentType)
	if err != nil {
		// record untouched on upload failure
		return nil, pkgerrors.Wrap(pkgerrors.CodeUploadFailed, err, "upload store image")
	}

	previous := store.ImageURL
	store.ImageURL = &url
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store image reference")
	}

	if previous != nil && *previous != url {
		s.requestCleanup(ctx, store.StoreID, *previous, "image replaced")
	}
	return stores.FromModel(store), nil
}

func (s *service) ClearImage(ctx context.Context, storeID string) (*stores.StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	// already absent is fine
	if store.ImageURL == nil {
		return stores.FromModel(store), nil
	}

	previous := *store.ImageURL
	store.ImageURL = nil
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear store image reference")
	}

	s.requestCleanup(ctx, store.StoreID, previous, "image cleared")
	return stores.FromModel(store), nil
}

// requestCleanup publishes a removal instruction for the superseded asset.
// Failures are logged and swallowed; the record update already succeeded.
func (s *service) requestCleanup(ctx context.Context, storeID, assetURL, reason string) {
	if s.publisher == nil {
		return
	}
	object, ok := s.store.ObjectFromURL(assetURL)
	if !ok {
		s.logg.Warn(s.logg.WithField(ctx, "asset_url", assetURL), "cannot derive object from asset url, skipping cleanup")
		return
	}
	event := CleanupEvent{
		Object:     object,
		StoreID:    storeID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishCleanup(ctx, event); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "object", object), "failed to publish asset cleanup", err)
	}
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

func sanitizeFilename(filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" {
		return ""
	}
	return filenameSanitizeRe.ReplaceAllString(base, "_")
}
