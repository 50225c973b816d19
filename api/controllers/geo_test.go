package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/internal/geo"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

type stubGeoService struct {
	cities     []geo.CityDTO
	areas      []geo.AreaDTO
	colonies   []geo.ColonyDTO
	categories []geo.CategoryDTO
	addedID    uuid.UUID
	err        error

	areasCityID *uuid.UUID
	addInput    geo.AddEntityInput
}

func (s *stubGeoService) ListCities(context.Context) ([]geo.CityDTO, error) {
	return s.cities, s.err
}

func (s *stubGeoService) ListAreas(_ context.Context, cityID *uuid.UUID) ([]geo.AreaDTO, error) {
	s.areasCityID = cityID
	return s.areas, s.err
}

func (s *stubGeoService) ListColonies(context.Context, *uuid.UUID) ([]geo.ColonyDTO, error) {
	return s.colonies, s.err
}

func (s *stubGeoService) ListCategories(context.Context) ([]geo.CategoryDTO, error) {
	return s.categories, s.err
}

func (s *stubGeoService) AddEntity(_ context.Context, input geo.AddEntityInput) (uuid.UUID, error) {
	s.addInput = input
	return s.addedID, s.err
}

func (s *stubGeoService) ValidatePlacement(context.Context, *uuid.UUID, *uuid.UUID, *uuid.UUID) error {
	return s.err
}

func TestGeoCities(t *testing.T) {
	svc := &stubGeoService{cities: []geo.CityDTO{{ID: uuid.New(), Name: "Guadalajara"}}}
	handler := GeoCities(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geo/cities", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []geo.CityDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Guadalajara" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestGeoAreasScopedToCity(t *testing.T) {
	cityID := uuid.New()
	svc := &stubGeoService{areas: []geo.AreaDTO{{ID: uuid.New(), Name: "Centro", CityID: cityID}}}
	handler := GeoAreas(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geo/areas?city_id="+cityID.String(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.areasCityID == nil || *svc.areasCityID != cityID {
		t.Fatalf("expected city scope to reach the service")
	}
}

func TestGeoAreasBadCityID(t *testing.T) {
	handler := GeoAreas(&stubGeoService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geo/areas?city_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGeoAddEntity(t *testing.T) {
	cityID := uuid.New()
	svc := &stubGeoService{addedID: uuid.New()}
	handler := GeoAddEntity(svc, nil)

	payload := []byte(`{"kind":"area","name":"Centro","parent_id":"` + cityID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/geo/entities", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.addInput.Name != "Centro" {
		t.Fatalf("expected name Centro got %q", svc.addInput.Name)
	}
	if svc.addInput.ParentID == nil || *svc.addInput.ParentID != cityID {
		t.Fatalf("expected parent id carried through")
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["id"] != svc.addedID.String() {
		t.Fatalf("expected new id in payload got %q", envelope.Data["id"])
	}
}

func TestGeoAddEntityRejectsUnknownKind(t *testing.T) {
	handler := GeoAddEntity(&stubGeoService{}, nil)

	payload := []byte(`{"kind":"district","name":"Centro"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/geo/entities", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGeoAddEntityDuplicate(t *testing.T) {
	svc := &stubGeoService{err: pkgerrors.New(pkgerrors.CodeDuplicateName, "name already exists")}
	handler := GeoAddEntity(svc, nil)

	payload := []byte(`{"kind":"city","name":"Guadalajara"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/geo/entities", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
