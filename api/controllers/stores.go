package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/api/responses"
	"github.com/storelane/storelane-backend/api/validators"
	"github.com/storelane/storelane-backend/internal/stores"
	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
	"github.com/storelane/storelane-backend/pkg/logger"
	"github.com/storelane/storelane-backend/pkg/pagination"
	"github.com/storelane/storelane-backend/pkg/types"
)

// StoreList serves the directory listing: status-scoped, geo/category
// filtered, searchable, offset paginated.
func StoreList(resolver *stores.FilterResolver, svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		sel := stores.Selection{
			Status: enums.ApprovalStatus(strings.ToLower(validators.ParseQueryString(r, "status"))),
			Search: validators.ParseQueryString(r, "q"),
		}

		var err error
		if sel.CityID, err = validators.ParseQueryUUID(r, "city_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sel.AreaID, err = validators.ParseQueryUUID(r, "area_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sel.ColonyID, err = validators.ParseQueryUUID(r, "colony_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sel.CategoryID, err = validators.ParseQueryUUID(r, "category_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "page_size", 0, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := resolver.Resolve(r.Context(), sel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter, pagination.Request{Page: page, Size: size})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// StoreGet returns a single listing by its public store id.
func StoreGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		store, err := svc.GetByStoreID(r.Context(), chi.URLParam(r, "storeID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

type storeCreateRequest struct {
	StoreName      string             `json:"store_name" validate:"required,min=1"`
	OwnerName      string             `json:"owner_name,omitempty"`
	ContactNumber  string             `json:"contact_number,omitempty"`
	WhatsappNumber string             `json:"whatsapp_number,omitempty"`
	FullAddress    string             `json:"full_address,omitempty"`
	Description    string             `json:"description,omitempty"`
	InstagramLink  string             `json:"instagram_link,omitempty"`
	OpenDays       string             `json:"open_days,omitempty"`
	OpenTime       string             `json:"open_time,omitempty"`
	CloseTime      string             `json:"close_time,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	Highlights     []string           `json:"highlights,omitempty"`
	CityID         *string            `json:"city_id,omitempty" validate:"omitempty,uuid"`
	AreaID         *string            `json:"area_id,omitempty" validate:"omitempty,uuid"`
	ColonyID       *string            `json:"colony_id,omitempty" validate:"omitempty,uuid"`
	CategoryID     *string            `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Status         *string            `json:"status,omitempty"`
	Channel        string             `json:"channel,omitempty" validate:"omitempty,oneof=public staff"`
	IsPremium      bool               `json:"is_premium,omitempty"`
	MapsURL        string             `json:"maps_url,omitempty"`
	SubmittedBy    string             `json:"submitted_by,omitempty"`
	Latitude       types.LenientFloat `json:"latitude,omitempty"`
	Longitude      types.LenientFloat `json:"longitude,omitempty"`
	RatingSum      types.LenientInt   `json:"rating_sum,omitempty"`
	RatingCount    types.LenientInt   `json:"rating_count,omitempty"`
}

func (req storeCreateRequest) toInput() (stores.CreateStoreInput, error) {
	input := stores.CreateStoreInput{
		StoreName:      req.StoreName,
		OwnerName:      req.OwnerName,
		ContactNumber:  req.ContactNumber,
		WhatsappNumber: req.WhatsappNumber,
		FullAddress:    req.FullAddress,
		Description:    req.Description,
		InstagramLink:  req.InstagramLink,
		OpenDays:       req.OpenDays,
		OpenTime:       req.OpenTime,
		CloseTime:      req.CloseTime,
		Tags:           req.Tags,
		Highlights:     req.Highlights,
		Channel:        enums.SubmissionChannel(req.Channel),
		IsPremium:      req.IsPremium,
		MapsURL:        req.MapsURL,
		SubmittedBy:    req.SubmittedBy,
		Latitude:       req.Latitude.Float64(),
		Longitude:      req.Longitude.Float64(),
		RatingSum:      req.RatingSum.Int(),
		RatingCount:    req.RatingCount.Int(),
	}

	var err error
	if input.CityID, err = parseOptionalUUID(req.CityID, "city_id"); err != nil {
		return stores.CreateStoreInput{}, err
	}
	if input.AreaID, err = parseOptionalUUID(req.AreaID, "area_id"); err != nil {
		return stores.CreateStoreInput{}, err
	}
	if input.ColonyID, err = parseOptionalUUID(req.ColonyID, "colony_id"); err != nil {
		return stores.CreateStoreInput{}, err
	}
	if input.CategoryID, err = parseOptionalUUID(req.CategoryID, "category_id"); err != nil {
		return stores.CreateStoreInput{}, err
	}

	if req.Status != nil {
		status, err := enums.ParseApprovalStatus(*req.Status)
		if err != nil {
			return stores.CreateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid approval status")
		}
		input.Status = &status
	}

	return input, nil
}

// StoreCreate accepts a listing draft from either submission channel.
func StoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload storeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

type storeUpdateRequest struct {
	StoreName      *string             `json:"store_name,omitempty" validate:"omitempty,min=1"`
	OwnerName      *string             `json:"owner_name,omitempty"`
	ContactNumber  *string             `json:"contact_number,omitempty"`
	WhatsappNumber *string             `json:"whatsapp_number,omitempty"`
	FullAddress    *string             `json:"full_address,omitempty"`
	Description    *string             `json:"description,omitempty"`
	InstagramLink  *string             `json:"instagram_link,omitempty"`
	OpenDays       *string             `json:"open_days,omitempty"`
	OpenTime       *string             `json:"open_time,omitempty"`
	CloseTime      *string             `json:"close_time,omitempty"`
	Tags           *[]string           `json:"tags,omitempty"`
	Highlights     *[]string           `json:"highlights,omitempty"`
	CityID         types.NullableUUID  `json:"city_id,omitempty"`
	AreaID         types.NullableUUID  `json:"area_id,omitempty"`
	ColonyID       types.NullableUUID  `json:"colony_id,omitempty"`
	CategoryID     types.NullableUUID  `json:"category_id,omitempty"`
	Status         *string             `json:"status,omitempty"`
	IsPremium      *bool               `json:"is_premium,omitempty"`
	MapsURL        *string             `json:"maps_url,omitempty"`
	SubmittedBy    *string             `json:"submitted_by,omitempty"`
	Latitude       *types.LenientFloat `json:"latitude,omitempty"`
	Longitude      *types.LenientFloat `json:"longitude,omitempty"`
	RatingSum      *types.LenientInt   `json:"rating_sum,omitempty"`
	RatingCount    *types.LenientInt   `json:"rating_count,omitempty"`
}

func (req storeUpdateRequest) toInput() (stores.UpdateStoreInput, error) {
	input := stores.UpdateStoreInput{
		StoreName:      req.StoreName,
		OwnerName:      req.OwnerName,
		ContactNumber:  req.ContactNumber,
		WhatsappNumber: req.WhatsappNumber,
		FullAddress:    req.FullAddress,
		Description:    req.Description,
		InstagramLink:  req.InstagramLink,
		OpenDays:       req.OpenDays,
		OpenTime:       req.OpenTime,
		CloseTime:      req.CloseTime,
		Tags:           req.Tags,
		Highlights:     req.Highlights,
		CityID:         req.CityID,
		AreaID:         req.AreaID,
		ColonyID:       req.ColonyID,
		CategoryID:     req.CategoryID,
		IsPremium:      req.IsPremium,
		MapsURL:        req.MapsURL,
		SubmittedBy:    req.SubmittedBy,
	}

	if req.Status != nil {
		status, err := enums.ParseApprovalStatus(*req.Status)
		if err != nil {
			return stores.UpdateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid approval status")
		}
		input.Status = &status
	}
	if req.Latitude != nil {
		v := req.Latitude.Float64()
		input.Latitude = &v
	}
	if req.Longitude != nil {
		v := req.Longitude.Float64()
		input.Longitude = &v
	}
	if req.RatingSum != nil {
		v := req.RatingSum.Int()
		input.RatingSum = &v
	}
	if req.RatingCount != nil {
		v := req.RatingCount.Int()
		input.RatingCount = &v
	}

	return input, nil
}

// StoreUpdate applies a typed partial patch. The public store id never
// changes; any status field in the patch goes through the approval workflow.
func StoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), chi.URLParam(r, "storeID"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

type storeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved closed rejected"`
}

// StoreSetStatus drives the approval workflow.
func StoreSetStatus(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload storeStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseApprovalStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid approval status"))
			return
		}

		store, err := svc.SetStatus(r.Context(), chi.URLParam(r, "storeID"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uuid").WithDetails(map[string]any{"field": field})
	}
	return &id, nil
}
