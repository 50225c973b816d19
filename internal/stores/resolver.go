package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

// Selection is the raw, caller-supplied filter state. The resolver is
// stateless: changing a higher level of the hierarchy invalidates everything
// below it, and callers must clear those selections before resolving again.
type Selection struct {
	Status     enums.ApprovalStatus
	CityID     *uuid.UUID
	AreaID     *uuid.UUID
	ColonyID   *uuid.UUID
	CategoryID *uuid.UUID
	Search     string
}

// FilterResolver validates a selection against the geo hierarchy and produces
// the query filter. An inconsistent geo selection is rejected, never silently
// dropped.
type FilterResolver struct {
	geo placementValidator
}

// NewFilterResolver builds a resolver over the given placement validator.
func NewFilterResolver(geo placementValidator) (*FilterResolver, error) {
	if geo == nil {
		return nil, fmt.Errorf("placement validator required")
	}
	return &FilterResolver{geo: geo}, nil
}

// Resolve checks the selection and returns the corresponding StoreFilter.
func (r *FilterResolver) Resolve(ctx context.Context, sel Selection) (StoreFilter, error) {
	if !sel.Status.IsValid() {
		return StoreFilter{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid approval status %q", sel.Status))
	}

	if err := r.geo.ValidatePlacement(ctx, sel.CityID, sel.AreaID, sel.ColonyID); err != nil {
		return StoreFilter{}, err
	}

	return StoreFilter{
		Status:     sel.Status,
		CityID:     cloneUUIDPtr(sel.CityID),
		AreaID:     cloneUUIDPtr(sel.AreaID),
		ColonyID:   cloneUUIDPtr(sel.ColonyID),
		CategoryID: cloneUUIDPtr(sel.CategoryID),
		Search:     strings.TrimSpace(sel.Search),
	}, nil
}
