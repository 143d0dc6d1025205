package rest

import (
	"context"
	"net/http"

	"github.com/lemarche/marketplace-backend/internal/adapter/geocoding"
)

// geocoder resolves a free-form address, best effort.
type geocoder interface {
	Search(ctx context.Context, address, postCode string) (*geocoding.Result, error)
}

// AddressHandler serves the address-search endpoint.
type AddressHandler struct {
	geo geocoder
}

// NewAddressHandler creates an AddressHandler.
func NewAddressHandler(geo geocoder) *AddressHandler {
	return &AddressHandler{geo: geo}
}

type addressResponse struct {
	Score        float64 `json:"score"`
	AddressLine1 string  `json:"address_line_1"`
	HouseNumber  string  `json:"house_number,omitempty"`
	Street       string  `json:"street,omitempty"`
	PostCode     string  `json:"post_code"`
	InseeCode    string  `json:"insee_code"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Search handles GET /api/addresses. Geocoding is best effort; an address
// the BAN API cannot resolve yields 404, never 5xx.
func (h *AddressHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	address := q.Get("q")
	if address == "" {
		writeError(w, http.StatusBadRequest, "q: required")
		return
	}

	result, err := h.geo.Search(r.Context(), address, q.Get("post_code"))
	if err != nil || result == nil {
		writeError(w, http.StatusNotFound, "address not found")
		return
	}

	writeJSON(w, http.StatusOK, addressResponse{
		Score:        result.Score,
		AddressLine1: result.AddressLine1,
		HouseNumber:  result.HouseNumber,
		Street:       result.Street,
		PostCode:     result.PostCode,
		InseeCode:    result.InseeCode,
		City:         result.City,
		Latitude:     result.Latitude,
		Longitude:    result.Longitude,
	})
}
