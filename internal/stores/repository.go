package stores

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/pkg/db/models"
	"github.com/storelane/storelane-backend/pkg/enums"
	"github.com/storelane/storelane-backend/pkg/pagination"
)

// storeIDAlphabet omits easily-confused characters (0/O, 1/I/L).
const storeIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const defaultStoreIDLength = 8

// Repository owns store persistence. It is the only component that assigns
// store_id and refreshes last_updated.
type Repository struct {
	db       *gorm.DB
	idLength int
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB, idLength int) *Repository {
	if idLength <= 0 {
		idLength = defaultStoreIDLength
	}
	return &Repository{db: db, idLength: idLength}
}

// Create persists a new store row, assigning identity and timestamps.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	now := time.Now().UTC()
	store.CreatedAt = now
	store.LastUpdated = now

	// store_id carries a unique index; retry a few times on the unlikely
	// collision before giving up.
	for attempt := 0; attempt < 3; attempt++ {
		if store.StoreID == "" {
			id, err := newStoreID(r.idLength)
			if err != nil {
				return fmt.Errorf("generate store id: %w", err)
			}
			store.StoreID = id
		}
		err := r.db.WithContext(ctx).Create(store).Error
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			store.StoreID = ""
			continue
		}
		return err
	}
	return fmt.Errorf("could not assign a unique store id")
}

// FindByStoreID loads a store by its external identifier.
func (r *Repository) FindByStoreID(ctx context.Context, storeID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "store_id = ?", storeID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update saves the provided store, refreshing last_updated.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	store.LastUpdated = time.Now().UTC()
	return r.db.WithContext(ctx).Save(store).Error
}

// List executes a status-scoped, filtered, offset-paginated query. The
// returned count covers the full filtered set before pagination.
func (r *Repository) List(ctx context.Context, filter StoreFilter, page pagination.Request) ([]models.Store, int64, error) {
	page = page.Normalize()

	q := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("approval_status = ?", filter.Status)

	if filter.CityID != nil {
		q = q.Where("city_id = ?", *filter.CityID)
	}
	if filter.AreaID != nil {
		q = q.Where("area_id = ?", *filter.AreaID)
	}
	if filter.ColonyID != nil {
		q = q.Where("colony_id = ?", *filter.ColonyID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(store_name) LIKE ? OR LOWER(store_id) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Review queues read newest first; the public-facing statuses keep
	// stable creation order.
	order := "created_at asc"
	if filter.Status == enums.ApprovalStatusPending {
		order = "created_at desc"
	}

	var items []models.Store
	if err := q.Order(order).Offset(page.Offset()).Limit(page.Limit()).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func newStoreID(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(storeIDAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(storeIDAlphabet[n.Int64()])
	}
	return b.String(), nil
}
