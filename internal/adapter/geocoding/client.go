// Package geocoding resolves addresses against the BAN (Base Adresse
// Nationale) search API.
package geocoding

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

const defaultBaseURL = "https://api-adresse.data.gouv.fr"

// Result is a normalized geocoding hit.
type Result struct {
	Score        float64
	AddressLine1 string
	HouseNumber  string
	Street       string
	PostCode     string
	InseeCode    string
	City         string
	Latitude     float64
	Longitude    float64
	Coords       domain.Point
}

// Client fetches geocoding data from the BAN API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client with the default BAN API URL.
func New(logger *slog.Logger) *Client {
	return NewWithURL(defaultBaseURL, 10*time.Second, logger)
}

// NewWithURL creates a Client with a custom base URL (config or testing).
func NewWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "geocoding"),
	}
}

// Search geocodes the given address. postCode narrows the search when
// non-empty; when it yields no result the search is retried once without it,
// since legacy addresses sometimes carry a CEDEX code the API does not know.
// Geocoding is best effort: any transport or decode error returns nil, nil so
// callers can proceed without coordinates.
func (c *Client) Search(ctx context.Context, address, postCode string) (*Result, error) {
	feature, ok := c.callAPI(ctx, address, postCode)
	if !ok {
		return nil, nil
	}
	if feature == nil && postCode != "" {
		feature, ok = c.callAPI(ctx, address, "")
		if !ok {
			return nil, nil
		}
	}
	if feature == nil {
		c.log.InfoContext(ctx, "geocoding: no result", slog.String("address", address))
		return nil, nil
	}

	return mapFeature(*feature), nil
}

// callAPI performs one search call. It returns (nil, true) when the API
// answered with an empty feature list and (nil, false) on hard errors.
func (c *Client) callAPI(ctx context.Context, address, postCode string) (*apiFeature, bool) {
	args := url.Values{}
	args.Set("q", address)
	args.Set("limit", strconv.Itoa(1))
	if postCode != "" {
		args.Set("postcode", postCode)
	}
	reqURL := c.baseURL + "/search/?" + args.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.InfoContext(ctx, "geocoding: create request failed", slog.String("error", err.Error()))
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.InfoContext(ctx, "geocoding: request failed",
			slog.String("url", reqURL), slog.String("error", err.Error()))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.InfoContext(ctx, "geocoding: unexpected status",
			slog.String("url", reqURL), slog.Int("status", resp.StatusCode))
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.InfoContext(ctx, "geocoding: read body failed", slog.String("error", err.Error()))
		return nil, false
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.InfoContext(ctx, "geocoding: decode json failed",
			slog.String("url", reqURL), slog.String("error", err.Error()))
		return nil, false
	}

	if len(payload.Features) == 0 {
		return nil, true
	}
	return &payload.Features[0], true
}

// mapFeature converts a GeoJSON feature into a Result. Coordinates come in
// [longitude, latitude] order.
func mapFeature(f apiFeature) *Result {
	var lon, lat float64
	if len(f.Geometry.Coordinates) >= 2 {
		lon, lat = f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
	}

	return &Result{
		Score:        f.Properties.Score,
		AddressLine1: f.Properties.Name,
		HouseNumber:  f.Properties.HouseNumber,
		Street:       f.Properties.Street,
		PostCode:     f.Properties.PostCode,
		InseeCode:    f.Properties.CityCode,
		City:         f.Properties.City,
		Latitude:     lat,
		Longitude:    lon,
		Coords:       domain.NewPoint(lon, lat),
	}
}

type apiResponse struct {
	Features []apiFeature `json:"features"`
}

type apiFeature struct {
	Properties apiProperties `json:"properties"`
	Geometry   apiGeometry   `json:"geometry"`
}

type apiProperties struct {
	Score       float64 `json:"score"`
	Name        string  `json:"name"`
	HouseNumber string  `json:"housenumber"`
	Street      string  `json:"street"`
	PostCode    string  `json:"postcode"`
	CityCode    string  `json:"citycode"`
	City        string  `json:"city"`
}

type apiGeometry struct {
	Coordinates []float64 `json:"coordinates"`
}
