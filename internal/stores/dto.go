package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/storelane/storelane-backend/pkg/db/models"
	"github.com/storelane/storelane-backend/pkg/enums"
	"github.com/storelane/storelane-backend/pkg/types"
)

// StoreDTO exposes a store listing in API responses.
type StoreDTO struct {
	ID             uuid.UUID            `json:"id"`
	StoreID        string               `json:"store_id"`
	StoreName      string               `json:"store_name"`
	OwnerName      string               `json:"owner_name,omitempty"`
	ContactNumber  string               `json:"contact_number,omitempty"`
	WhatsappNumber string               `json:"whatsapp_number,omitempty"`
	FullAddress    string               `json:"full_address,omitempty"`
	Description    string               `json:"description,omitempty"`
	InstagramLink  string               `json:"instagram_link,omitempty"`
	OpenDays       string               `json:"open_days,omitempty"`
	OpenTime       string               `json:"open_time,omitempty"`
	CloseTime      string               `json:"close_time,omitempty"`
	Tags           []string             `json:"tags"`
	Highlights     []string             `json:"highlights"`
	CityID         *uuid.UUID           `json:"city_id,omitempty"`
	AreaID         *uuid.UUID           `json:"area_id,omitempty"`
	ColonyID       *uuid.UUID           `json:"colony_id,omitempty"`
	CategoryID     *uuid.UUID           `json:"category_id,omitempty"`
	ApprovalStatus enums.ApprovalStatus `json:"approval_status"`
	IsPremium      bool                 `json:"is_premium"`
	ImageURL       *string              `json:"image_url,omitempty"`
	MapsURL        string               `json:"maps_url,omitempty"`
	SubmittedBy    string               `json:"submitted_by,omitempty"`
	Latitude       float64              `json:"latitude"`
	Longitude      float64              `json:"longitude"`
	RatingSum      int                  `json:"rating_sum"`
	RatingCount    int                  `json:"rating_count"`
	CreatedAt      time.Time            `json:"created_at"`
	LastUpdated    time.Time            `json:"last_updated"`
}

// CreateStoreInput holds a store draft. Numeric fields arrive already coerced
// by the transport layer; the service only clamps and defaults.
type CreateStoreInput struct {
	StoreName      string
	OwnerName      string
	ContactNumber  string
	WhatsappNumber string
	FullAddress    string
	Description    string
	InstagramLink  string
	OpenDays       string
	OpenTime       string
	CloseTime      string
	Tags           []string
	Highlights     []string
	CityID         *uuid.UUID
	AreaID         *uuid.UUID
	ColonyID       *uuid.UUID
	CategoryID     *uuid.UUID
	Status         *enums.ApprovalStatus
	Channel        enums.SubmissionChannel
	IsPremium      bool
	MapsURL        string
	SubmittedBy    string
	Latitude       float64
	Longitude      float64
	RatingSum      int
	RatingCount    int
}

// UpdateStoreInput is a typed partial patch. Nil pointers mean "leave as is";
// geo and category references use NullableUUID so a patch can clear them.
// StoreID is deliberately absent, it is immutable after creation.
type UpdateStoreInput struct {
	StoreName      *string
	OwnerName      *string
	ContactNumber  *string
	WhatsappNumber *string
	FullAddress    *string
	Description    *string
	InstagramLink  *string
	OpenDays       *string
	OpenTime       *string
	CloseTime      *string
	Tags           *[]string
	Highlights     *[]string
	CityID         types.NullableUUID
	AreaID         types.NullableUUID
	ColonyID       types.NullableUUID
	CategoryID     types.NullableUUID
	Status         *enums.ApprovalStatus
	IsPremium      *bool
	MapsURL        *string
	SubmittedBy    *string
	Latitude       *float64
	Longitude      *float64
	RatingSum      *int
	RatingCount    *int
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:             m.ID,
		StoreID:        m.StoreID,
		StoreName:      m.StoreName,
		OwnerName:      m.OwnerName,
		ContactNumber:  m.ContactNumber,
		WhatsappNumber: m.WhatsappNumber,
		FullAddress:    m.FullAddress,
		Description:    m.Description,
		InstagramLink:  m.InstagramLink,
		OpenDays:       m.OpenDays,
		OpenTime:       m.OpenTime,
		CloseTime:      m.CloseTime,
		Tags:           cloneStrings(m.Tags),
		Highlights:     cloneStrings(m.Highlights),
		CityID:         cloneUUIDPtr(m.CityID),
		AreaID:         cloneUUIDPtr(m.AreaID),
		ColonyID:       cloneUUIDPtr(m.ColonyID),
		CategoryID:     cloneUUIDPtr(m.CategoryID),
		ApprovalStatus: m.ApprovalStatus,
		IsPremium:      m.IsPremium,
		ImageURL:       cloneStringPtr(m.ImageURL),
		MapsURL:        m.MapsURL,
		SubmittedBy:    m.SubmittedBy,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		RatingSum:      m.RatingSum,
		RatingCount:    m.RatingCount,
		CreatedAt:      m.CreatedAt,
		LastUpdated:    m.LastUpdated,
	}
}

func storesFromModels(ms []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

// ToModel prepares the GORM model from the draft, supplying defaults. The
// repository assigns identity and timestamps.
func (c CreateStoreInput) ToModel(status enums.ApprovalStatus) *models.Store {
	return &models.Store{
		StoreName:      c.StoreName,
		OwnerName:      c.OwnerName,
		ContactNumber:  c.ContactNumber,
		WhatsappNumber: c.WhatsappNumber,
		FullAddress:    c.FullAddress,
		Description:    c.Description,
		InstagramLink:  c.InstagramLink,
		OpenDays:       c.OpenDays,
		OpenTime:       c.OpenTime,
		CloseTime:      c.CloseTime,
		Tags:           toStringArray(c.Tags),
		Highlights:     toStringArray(c.Highlights),
		CityID:         cloneUUIDPtr(c.CityID),
		AreaID:         cloneUUIDPtr(c.AreaID),
		ColonyID:       cloneUUIDPtr(c.ColonyID),
		CategoryID:     cloneUUIDPtr(c.CategoryID),
		ApprovalStatus: status,
		IsPremium:      c.IsPremium,
		MapsURL:        c.MapsURL,
		SubmittedBy:    c.SubmittedBy,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		RatingSum:      clampNonNegative(c.RatingSum),
		RatingCount:    clampNonNegative(c.RatingCount),
	}
}

func cloneStrings(value []string) []string {
	if value == nil {
		return []string{}
	}
	out := make([]string, len(value))
	copy(out, value)
	return out
}

func toStringArray(value []string) pq.StringArray {
	if value == nil {
		return pq.StringArray{}
	}
	out := make(pq.StringArray, len(value))
	copy(out, value)
	return out
}

func cloneUUIDPtr(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
