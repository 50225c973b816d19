package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/pkg/db/models"
	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
	"github.com/storelane/storelane-backend/pkg/pagination"
	"github.com/storelane/storelane-backend/pkg/types"
)

type stubStoreRepo struct {
	store   *models.Store
	items   []models.Store
	total   int64
	err     error
	created *models.Store
	updated *models.Store
}

func (s *stubStoreRepo) Create(ctx context.Context, store *models.Store) error {
	if s.err != nil {
		return s.err
	}
	store.ID = uuid.New()
	store.StoreID = "ABCD2345"
	now := time.Now().UTC()
	store.CreatedAt = now
	store.LastUpdated = now
	s.created = store
	return nil
}

func (s *stubStoreRepo) FindByStoreID(ctx context.Context, storeID string) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil || s.store.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.store
	return &cpy, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	if s.err != nil {
		return s.err
	}
	store.LastUpdated = time.Now().UTC()
	s.updated = store
	return nil
}

func (s *stubStoreRepo) List(ctx context.Context, filter StoreFilter, page pagination.Request) ([]models.Store, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.items, s.total, nil
}

type stubPlacement struct {
	err error
}

func (s stubPlacement) ValidatePlacement(ctx context.Context, cityID, areaID, colonyID *uuid.UUID) error {
	return s.err
}

func baseStore() *models.Store {
	now := time.Now().UTC().Add(-time.Hour)
	return &models.Store{
		ID:             uuid.New(),
		StoreID:        "WXYZ6789",
		StoreName:      "Cafe Mocha",
		ApprovalStatus: enums.ApprovalStatusPending,
		CreatedAt:      now,
		LastUpdated:    now,
	}
}

func mustStoreService(t *testing.T, repo storeRepository, geo placementValidator) Service {
	t.Helper()
	svc, err := NewService(repo, geo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	if _, err := NewService(nil, stubPlacement{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubStoreRepo{}, nil); err == nil {
		t.Fatal("expected error creating service without placement validator")
	}
}

func TestCreateRequiresStoreName(t *testing.T) {
	svc := mustStoreService(t, &stubStoreRepo{}, stubPlacement{})

	_, err := svc.Create(context.Background(), CreateStoreInput{StoreName: "   "})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateDefaultsStatusByChannel(t *testing.T) {
	cases := []struct {
		channel enums.SubmissionChannel
		want    enums.ApprovalStatus
	}{
		{enums.SubmissionChannelPublic, enums.ApprovalStatusPending},
		{enums.SubmissionChannelStaff, enums.ApprovalStatusApproved},
		{"", enums.ApprovalStatusPending},
	}

	for _, tc := range cases {
		repo := &stubStoreRepo{}
		svc := mustStoreService(t, repo, stubPlacement{})

		dto, err := svc.Create(context.Background(), CreateStoreInput{StoreName: "Cafe Mocha", Channel: tc.channel})
		if err != nil {
			t.Fatalf("create (%q): %v", tc.channel, err)
		}
		if dto.ApprovalStatus != tc.want {
			t.Fatalf("channel %q: expected status %s got %s", tc.channel, tc.want, dto.ApprovalStatus)
		}
	}
}

func TestCreateHonorsExplicitStatus(t *testing.T) {
	repo := &stubStoreRepo{}
	svc := mustStoreService(t, repo, stubPlacement{})

	status := enums.ApprovalStatusApproved
	dto, err := svc.Create(context.Background(), CreateStoreInput{
		StoreName: "Cafe Mocha",
		Channel:   enums.SubmissionChannelPublic,
		Status:    &status,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ApprovalStatus != enums.ApprovalStatusApproved {
		t.Fatalf("expected explicit status honored, got %s", dto.ApprovalStatus)
	}

	bogus := enums.ApprovalStatus("bogus")
	_, err = svc.Create(context.Background(), CreateStoreInput{StoreName: "Cafe Mocha", Status: &bogus})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bogus status, got %v", err)
	}
}

func TestCreateClampsNegativeRatings(t *testing.T) {
	repo := &stubStoreRepo{}
	svc := mustStoreService(t, repo, stubPlacement{})

	dto, err := svc.Create(context.Background(), CreateStoreInput{
		StoreName:   "Cafe Mocha",
		RatingSum:   -5,
		RatingCount: -1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.RatingSum != 0 || dto.RatingCount != 0 {
		t.Fatalf("expected ratings clamped to 0, got %d/%d", dto.RatingSum, dto.RatingCount)
	}
}

func TestCreateRejectsInvalidPlacement(t *testing.T) {
	placementErr := pkgerrors.New(pkgerrors.CodeInvalidPlacement, "area does not belong to the selected city")
	repo := &stubStoreRepo{}
	svc := mustStoreService(t, repo, stubPlacement{err: placementErr})

	_, err := svc.Create(context.Background(), CreateStoreInput{StoreName: "Cafe Mocha"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidPlacement) {
		t.Fatalf("expected invalid placement, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("expected no store persisted")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := mustStoreService(t, &stubStoreRepo{}, stubPlacement{})

	_, err := svc.Update(context.Background(), "NOPE1234", UpdateStoreInput{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAppliesPatchAndKeepsStoreID(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := mustStoreService(t, repo, stubPlacement{})

	name := "Cafe Mocha Deluxe"
	premium := true
	tags := []string{"coffee", "snacks"}
	dto, err := svc.Update(context.Background(), store.StoreID, UpdateStoreInput{
		StoreName: &name,
		IsPremium: &premium,
		Tags:      &tags,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.StoreID != store.StoreID {
		t.Fatalf("store_id changed: %s -> %s", store.StoreID, dto.StoreID)
	}
	if dto.StoreName != name || !dto.IsPremium {
		t.Fatalf("patch not applied: %+v", dto)
	}
	if len(dto.Tags) != 2 {
		t.Fatalf("expected tags applied, got %v", dto.Tags)
	}
	if !dto.LastUpdated.After(store.LastUpdated) {
		t.Fatal("expected last_updated to increase")
	}
}

func TestUpdateCanClearGeoReferences(t *testing.T) {
	store := baseStore()
	cityID := uuid.New()
	store.CityID = &cityID
	repo := &stubStoreRepo{store: store}
	svc := mustStoreService(t, repo, stubPlacement{})

	dto, err := svc.Update(context.Background(), store.StoreID, UpdateStoreInput{
		CityID: types.NullableUUID{Valid: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.CityID != nil {
		t.Fatalf("expected city cleared, got %v", dto.CityID)
	}
}

func TestUpdateRejectsEmptyName(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := mustStoreService(t, repo, stubPlacement{})

	empty := "  "
	_, err := svc.Update(context.Background(), store.StoreID, UpdateStoreInput{StoreName: &empty})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateImplicitStatusChangeChecked(t *testing.T) {
	store := baseStore()
	store.ApprovalStatus = enums.ApprovalStatusClosed
	repo := &stubStoreRepo{store: store}
	svc := mustStoreService(t, repo, stubPlacement{})

	next := enums.ApprovalStatusApproved
	_, err := svc.Update(context.Background(), store.StoreID, UpdateStoreInput{Status: &next})
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected record left unchanged")
	}
}

func TestSetStatusTransitions(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := mustStoreService(t, repo, stubPlacement{})

	dto, err := svc.SetStatus(context.Background(), store.StoreID, enums.ApprovalStatusApproved)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if dto.ApprovalStatus != enums.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", dto.ApprovalStatus)
	}

	repo.store = repo.updated
	dto, err = svc.SetStatus(context.Background(), store.StoreID, enums.ApprovalStatusClosed)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if dto.ApprovalStatus != enums.ApprovalStatusClosed {
		t.Fatalf("expected closed, got %s", dto.ApprovalStatus)
	}

	repo.store = repo.updated
	_, err = svc.SetStatus(context.Background(), store.StoreID, enums.ApprovalStatusApproved)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict out of closed, got %v", err)
	}
}

func TestListRequiresValidStatus(t *testing.T) {
	svc := mustStoreService(t, &stubStoreRepo{}, stubPlacement{})

	_, err := svc.List(context.Background(), StoreFilter{Status: "bogus"}, pagination.Request{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListComputesTotalPages(t *testing.T) {
	repo := &stubStoreRepo{items: []models.Store{*baseStore()}, total: 75}
	svc := mustStoreService(t, repo, stubPlacement{})

	page, err := svc.List(context.Background(), StoreFilter{Status: enums.ApprovalStatusApproved}, pagination.Request{Page: 2, Size: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 75 {
		t.Fatalf("expected total 75, got %d", page.TotalCount)
	}
	if page.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.TotalPages)
	}
	if page.Page != 2 || page.Size != 50 {
		t.Fatalf("unexpected page request echo %d/%d", page.Page, page.Size)
	}
}

func TestListDependencyError(t *testing.T) {
	repo := &stubStoreRepo{err: errors.New("boom")}
	svc := mustStoreService(t, repo, stubPlacement{})

	_, err := svc.List(context.Background(), StoreFilter{Status: enums.ApprovalStatusApproved}, pagination.Request{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
