package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lemarche/marketplace-backend/internal/domain"
	"github.com/lemarche/marketplace-backend/internal/service/siae"
)

// siaeService defines the minimal interface needed by SiaeHandler.
type siaeService interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Siae, error)
	Search(ctx context.Context, input siae.SearchInput) ([]*domain.Siae, error)
}

// SiaeHandler serves inclusive-enterprise REST endpoints.
type SiaeHandler struct {
	svc siaeService
	log *slog.Logger
}

// NewSiaeHandler creates a SiaeHandler.
func NewSiaeHandler(svc siaeService, logger *slog.Logger) *SiaeHandler {
	return &SiaeHandler{svc: svc, log: logger.With("handler", "siae")}
}

type siaeResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Brand string `json:"brand,omitempty"`

	Siret       string   `json:"siret,omitempty"`
	Naf         string   `json:"naf,omitempty"`
	Kind        string   `json:"kind"`
	Nature      string   `json:"nature,omitempty"`
	PrestaTypes []string `json:"presta_types"`

	Website    string   `json:"website,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	PostCode   string   `json:"post_code,omitempty"`
	Department string   `json:"department,omitempty"`
	Region     string   `json:"region,omitempty"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	GeoRange               string `json:"geo_range,omitempty"`
	GeoRangeCustomDistance *int   `json:"geo_range_custom_distance"`

	Description string  `json:"description,omitempty"`
	ImageName   *string `json:"image_name"`

	IsActive    bool `json:"is_active"`
	IsFirstPage bool `json:"is_first_page"`
	IsQPV       bool `json:"is_qpv"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type siaeListResponse struct {
	Results []siaeResponse `json:"results"`
	Count   int            `json:"count"`
}

// Get handles GET /api/siaes/{slug}.
func (h *SiaeHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiaeResponse(found))
}

// Search handles GET /api/siaes.
func (h *SiaeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := siae.SearchInput{
		Kinds:         toSiaeKinds(q["kind"]),
		PrestaType:    domain.PrestaType(q.Get("presta_type")),
		PerimeterSlug: q.Get("perimeter"),
	}

	var err error
	if input.Limit, err = parseUintParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "limit: expected a non-negative integer")
		return
	}
	if input.Offset, err = parseUintParam(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "offset: expected a non-negative integer")
		return
	}

	siaes, err := h.svc.Search(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	results := make([]siaeResponse, len(siaes))
	for i, s := range siaes {
		results[i] = toSiaeResponse(s)
	}
	writeJSON(w, http.StatusOK, siaeListResponse{Results: results, Count: len(results)})
}

func (h *SiaeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSiaeResponse(s *domain.Siae) siaeResponse {
	resp := siaeResponse{
		ID:                     s.ID,
		Name:                   s.Name,
		Slug:                   s.Slug,
		Brand:                  s.Brand,
		Siret:                  s.Siret,
		Naf:                    s.Naf,
		Kind:                   s.Kind.String(),
		Nature:                 s.Nature.String(),
		PrestaTypes:            fromPrestaTypes(s.PrestaTypes),
		Website:                s.Website,
		Email:                  s.Email,
		Phone:                  s.Phone,
		Address:                s.Address,
		City:                   s.City,
		PostCode:               s.PostCode,
		Department:             s.Department,
		Region:                 s.Region,
		GeoRange:               s.GeoRange.String(),
		GeoRangeCustomDistance: s.GeoRangeCustomDistance,
		Description:            s.Description,
		ImageName:              s.ImageName,
		IsActive:               s.IsActive,
		IsFirstPage:            s.IsFirstPage,
		IsQPV:                  s.IsQPV,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
	if s.Coords != nil {
		lat, lng := s.Coords.Latitude, s.Coords.Longitude
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	return resp
}
