package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

func TestNewFilterResolverRequiresValidator(t *testing.T) {
	if _, err := NewFilterResolver(nil); err == nil {
		t.Fatal("expected error creating resolver without validator")
	}
}

func TestResolveProducesFilter(t *testing.T) {
	resolver, err := NewFilterResolver(stubPlacement{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	cityID := uuid.New()
	categoryID := uuid.New()
	filter, err := resolver.Resolve(context.Background(), Selection{
		Status:     enums.ApprovalStatusApproved,
		CityID:     &cityID,
		CategoryID: &categoryID,
		Search:     "  mocha  ",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filter.Status != enums.ApprovalStatusApproved {
		t.Fatalf("unexpected status %s", filter.Status)
	}
	if filter.CityID == nil || *filter.CityID != cityID {
		t.Fatalf("city not carried over: %v", filter.CityID)
	}
	if filter.Search != "mocha" {
		t.Fatalf("expected trimmed search, got %q", filter.Search)
	}
}

func TestResolveRejectsInvalidStatus(t *testing.T) {
	resolver, err := NewFilterResolver(stubPlacement{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), Selection{Status: "bogus"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveRejectsInconsistentGeoSelection(t *testing.T) {
	placementErr := pkgerrors.New(pkgerrors.CodeInvalidPlacement, "area does not belong to the selected city")
	resolver, err := NewFilterResolver(stubPlacement{err: placementErr})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), Selection{Status: enums.ApprovalStatusApproved})
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidPlacement) {
		t.Fatalf("expected invalid placement, got %v", err)
	}
}
