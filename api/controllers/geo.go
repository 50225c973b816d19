package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/api/responses"
	"github.com/storelane/storelane-backend/api/validators"
	"github.com/storelane/storelane-backend/internal/geo"
	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
	"github.com/storelane/storelane-backend/pkg/logger"
)

// GeoCities lists every city, name ascending.
func GeoCities(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		cities, err := svc.ListCities(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cities)
	}
}

// GeoAreas lists areas, optionally scoped to a city via ?city_id=.
func GeoAreas(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		cityID, err := validators.ParseQueryUUID(r, "city_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		areas, err := svc.ListAreas(r.Context(), cityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, areas)
	}
}

// GeoColonies lists colonies, optionally scoped to an area via ?area_id=.
func GeoColonies(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		areaID, err := validators.ParseQueryUUID(r, "area_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		colonies, err := svc.ListColonies(r.Context(), areaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, colonies)
	}
}

// GeoCategories lists the flat category set.
func GeoCategories(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

type geoEntityRequest struct {
	Kind     string  `json:"kind" validate:"required,oneof=city area colony category"`
	Name     string  `json:"name" validate:"required,min=1"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// GeoAddEntity inserts a reference entity of any kind.
func GeoAddEntity(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		var payload geoEntityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseGeoKind(payload.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entity kind"))
			return
		}

		var parentID *uuid.UUID
		if payload.ParentID != nil {
			id, err := uuid.Parse(*payload.ParentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent id"))
				return
			}
			parentID = &id
		}

		id, err := svc.AddEntity(r.Context(), geo.AddEntityInput{
			Kind:     kind,
			Name:     payload.Name,
			ParentID: parentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"id": id.String()})
	}
}
