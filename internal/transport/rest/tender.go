package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lemarche/marketplace-backend/internal/domain"
	"github.com/lemarche/marketplace-backend/internal/service/tender"
)

// tenderService defines the minimal interface needed by TenderHandler.
type tenderService interface {
	Create(ctx context.Context, input tender.CreateInput) (*domain.Tender, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tender, error)
	List(ctx context.Context, input tender.ListInput) ([]*domain.Tender, error)
}

// TenderHandler serves tender REST endpoints.
type TenderHandler struct {
	svc tenderService
	log *slog.Logger
}

// NewTenderHandler creates a TenderHandler.
func NewTenderHandler(svc tenderService, logger *slog.Logger) *TenderHandler {
	return &TenderHandler{svc: svc, log: logger.With("handler", "tender")}
}

type createTenderRequest struct {
	Kind          string   `json:"kind"`
	Title         string   `json:"title"`
	Sectors       []string `json:"sectors"`
	PrestaTypes   []string `json:"presta_types"`
	Location      string   `json:"location"`
	IsCountryArea bool     `json:"is_country_area"`

	Description         string   `json:"description"`
	StartWorkingDate    string   `json:"start_working_date"`
	ExternalLink        string   `json:"external_link"`
	Constraints         string   `json:"constraints"`
	Amount              string   `json:"amount"`
	WhyAmountIsBlank    string   `json:"why_amount_is_blank"`
	AcceptShareAmount   bool     `json:"accept_share_amount"`
	AcceptCocontracting bool     `json:"accept_cocontracting"`
	SiaeKind            []string `json:"siae_kind"`

	ContactFirstName   string   `json:"contact_first_name"`
	ContactLastName    string   `json:"contact_last_name"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	ContactCompanyName string   `json:"contact_company_name"`
	ResponseKind       []string `json:"response_kind"`
	DeadlineDate       string   `json:"deadline_date"`

	ExtraData map[string]any `json:"extra_data"`
}

type tenderResponse struct {
	ID            int64    `json:"id"`
	Slug          string   `json:"slug"`
	Kind          string   `json:"kind"`
	Title         string   `json:"title"`
	Sectors       []string `json:"sectors"`
	PrestaTypes   []string `json:"presta_types"`
	Location      string   `json:"location,omitempty"`
	IsCountryArea bool     `json:"is_country_area"`

	Description         string   `json:"description"`
	StartWorkingDate    *string  `json:"start_working_date"`
	ExternalLink        string   `json:"external_link,omitempty"`
	Constraints         string   `json:"constraints,omitempty"`
	Amount              string   `json:"amount,omitempty"`
	WhyAmountIsBlank    string   `json:"why_amount_is_blank,omitempty"`
	AcceptShareAmount   bool     `json:"accept_share_amount"`
	AcceptCocontracting bool     `json:"accept_cocontracting"`
	SiaeKind            []string `json:"siae_kind"`

	ContactFirstName   string   `json:"contact_first_name,omitempty"`
	ContactLastName    string   `json:"contact_last_name,omitempty"`
	ContactEmail       string   `json:"contact_email,omitempty"`
	ContactPhone       string   `json:"contact_phone,omitempty"`
	ContactCompanyName string   `json:"contact_company_name,omitempty"`
	ResponseKind       []string `json:"response_kind"`
	DeadlineDate       *string  `json:"deadline_date"`

	ExtraData map[string]any `json:"extra_data,omitempty"`

	AuthorID  *int64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type tenderListResponse struct {
	Results []tenderResponse `json:"results"`
	Count   int              `json:"count"`
}

// Create handles POST /api/tenders.
func (h *TenderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := tender.CreateInput{
		Kind:                domain.TenderKind(req.Kind),
		Title:               req.Title,
		SectorSlugs:         req.Sectors,
		PrestaTypes:         toPrestaTypes(req.PrestaTypes),
		LocationSlug:        req.Location,
		IsCountryArea:       req.IsCountryArea,
		Description:         req.Description,
		ExternalLink:        req.ExternalLink,
		Constraints:         req.Constraints,
		Amount:              req.Amount,
		WhyAmountIsBlank:    req.WhyAmountIsBlank,
		AcceptShareAmount:   req.AcceptShareAmount,
		AcceptCocontracting: req.AcceptCocontracting,
		SiaeKind:            toSiaeKinds(req.SiaeKind),
		ContactFirstName:    req.ContactFirstName,
		ContactLastName:     req.ContactLastName,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
		ContactCompanyName:  req.ContactCompanyName,
		ResponseKind:        toResponseKinds(req.ResponseKind),
		ExtraData:           req.ExtraData,
	}

	var err error
	if input.StartWorkingDate, err = parseDate(req.StartWorkingDate); err != nil {
		writeError(w, http.StatusBadRequest, "start_working_date: expected YYYY-MM-DD")
		return
	}
	if input.DeadlineDate, err = parseDate(req.DeadlineDate); err != nil {
		writeError(w, http.StatusBadRequest, "deadline_date: expected YYYY-MM-DD")
		return
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTenderResponse(created))
}

// Get handles GET /api/tenders/{slug}.
func (h *TenderHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenderResponse(found))
}

// List handles GET /api/tenders.
func (h *TenderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := tender.ListInput{
		Kind: domain.TenderKind(q.Get("kind")),
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
	if raw := q.Get("author_id"); raw != "" {
		if input.AuthorID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "author_id: expected an integer")
			return
		}
	}

	tenders, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	results := make([]tenderResponse, len(tenders))
	for i, t := range tenders {
		results[i] = toTenderResponse(t)
	}
	writeJSON(w, http.StatusOK, tenderListResponse{Results: results, Count: len(results)})
}

func (h *TenderHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
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

func toTenderResponse(t *domain.Tender) tenderResponse {
	resp := tenderResponse{
		ID:                  t.ID,
		Slug:                t.Slug,
		Kind:                t.Kind.String(),
		Title:               t.Title,
		Sectors:             t.SectorSlugs(),
		PrestaTypes:         fromPrestaTypes(t.PrestaTypes),
		IsCountryArea:       t.IsCountryArea,
		Description:         t.Description,
		StartWorkingDate:    formatDate(t.StartWorkingDate),
		ExternalLink:        t.ExternalLink,
		Constraints:         t.Constraints,
		Amount:              t.Amount,
		WhyAmountIsBlank:    t.WhyAmountIsBlank,
		AcceptShareAmount:   t.AcceptShareAmount,
		AcceptCocontracting: t.AcceptCocontracting,
		SiaeKind:            fromSiaeKinds(t.SiaeKind),
		ContactFirstName:    t.ContactFirstName,
		ContactLastName:     t.ContactLastName,
		ContactEmail:        t.ContactEmail,
		ContactPhone:        t.ContactPhone,
		ContactCompanyName:  t.ContactCompanyName,
		ResponseKind:        fromResponseKinds(t.ResponseKind),
		DeadlineDate:        formatDate(t.DeadlineDate),
		ExtraData:           t.ExtraData,
		AuthorID:            t.AuthorID,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
	if t.Location != nil {
		resp.Location = t.Location.Slug
	}
	return resp
}

// parseDate parses an optional YYYY-MM-DD value.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func parseUintParam(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

func toPrestaTypes(values []string) []domain.PrestaType {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.PrestaType, len(values))
	for i, v := range values {
		out[i] = domain.PrestaType(v)
	}
	return out
}

func fromPrestaTypes(values []domain.PrestaType) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func toSiaeKinds(values []string) []domain.SiaeKind {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.SiaeKind, len(values))
	for i, v := range values {
		out[i] = domain.SiaeKind(v)
	}
	return out
}

func fromSiaeKinds(values []domain.SiaeKind) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func toResponseKinds(values []string) []domain.ResponseKind {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.ResponseKind, len(values))
	for i, v := range values {
		out[i] = domain.ResponseKind(v)
	}
	return out
}

func fromResponseKinds(values []domain.ResponseKind) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
