package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/storelane/storelane-backend/pkg/enums"
)

// Store is the central listing record. StoreID is the stable external
// identifier assigned by the repository at creation; LastUpdated is refreshed
// by the repository on every mutation and nowhere else.
type Store struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID string    `gorm:"column:store_id;uniqueIndex;not null"`

	StoreName      string `gorm:"column:store_name;not null"`
	OwnerName      string `gorm:"column:owner_name"`
	ContactNumber  string `gorm:"column:contact_number"`
	WhatsappNumber string `gorm:"column:whatsapp_number"`
	FullAddress    string `gorm:"column:full_address"`
	Description    string `gorm:"column:description"`
	InstagramLink  string `gorm:"column:instagram_link"`
	OpenDays       string `gorm:"column:open_days"`
	OpenTime       string `gorm:"column:open_time"`
	CloseTime      string `gorm:"column:close_time"`

	Tags       pq.StringArray `gorm:"column:tags;type:text[]"`
	Highlights pq.StringArray `gorm:"column:highlights;type:text[]"`

	CityID     *uuid.UUID `gorm:"column:city_id;type:uuid"`
	AreaID     *uuid.UUID `gorm:"column:area_id;type:uuid"`
	ColonyID   *uuid.UUID `gorm:"column:colony_id;type:uuid"`
	CategoryID *uuid.UUID `gorm:"column:category_id;type:uuid"`

	ApprovalStatus enums.ApprovalStatus `gorm:"column:approval_status;type:store_approval_status;not null;default:'pending'"`
	IsPremium      bool                 `gorm:"column:is_premium;not null;default:false"`

	ImageURL    *string `gorm:"column:image_url"`
	MapsURL     string  `gorm:"column:maps_url"`
	SubmittedBy string  `gorm:"column:submitted_by"`

	Latitude  float64 `gorm:"column:latitude;not null;default:0"`
	Longitude float64 `gorm:"column:longitude;not null;default:0"`

	RatingSum   int `gorm:"column:rating_sum;not null;default:0"`
	RatingCount int `gorm:"column:rating_count;not null;default:0"`

	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	LastUpdated time.Time `gorm:"column:last_updated;not null"`
}

func (Store) TableName() string { return "stores" }
