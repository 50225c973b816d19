package stores

import (
	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/enums"
)

// StoreFilter scopes a store query to exactly one approval status plus
// optional geo, category and free-text constraints. The staff screens are
// status-scoped (pending, approved, closed), so Status is always required.
type StoreFilter struct {
	Status     enums.ApprovalStatus `json:"status"`
	CityID     *uuid.UUID           `json:"city_id,omitempty"`
	AreaID     *uuid.UUID           `json:"area_id,omitempty"`
	ColonyID   *uuid.UUID           `json:"colony_id,omitempty"`
	CategoryID *uuid.UUID           `json:"category_id,omitempty"`
	Search     string               `json:"search,omitempty"`
}

// StorePage is one page of a filtered store query. TotalCount covers the full
// filtered set before pagination so callers can compute page counts.
type StorePage struct {
	Items      []StoreDTO `json:"items"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Size       int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
