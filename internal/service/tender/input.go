package tender

import (
	"time"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

// CreateInput holds parameters for tender creation. Sectors and location are
// referenced by slug; numeric ids never cross the service boundary.
type CreateInput struct {
	// General
	Kind          domain.TenderKind
	Title         string
	SectorSlugs   []string
	PrestaTypes   []domain.PrestaType
	LocationSlug  string
	IsCountryArea bool

	// Description
	Description         string
	StartWorkingDate    *time.Time
	ExternalLink        string
	Constraints         string
	Amount              string
	WhyAmountIsBlank    string
	AcceptShareAmount   bool
	AcceptCocontracting bool
	SiaeKind            []domain.SiaeKind

	// Contact
	ContactFirstName   string
	ContactLastName    string
	ContactEmail       string
	ContactPhone       string
	ContactCompanyName string
	ResponseKind       []domain.ResponseKind
	DeadlineDate       *time.Time

	// ExtraData is free-form data attached by API consumers.
	ExtraData map[string]any
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Kind == "" {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "required"})
	} else if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "unknown kind"})
	}

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if len(i.SectorSlugs) == 0 {
		errs = append(errs, domain.FieldError{Field: "sectors", Message: "required"})
	}

	if i.LocationSlug == "" && !i.IsCountryArea {
		errs = append(errs, domain.FieldError{Field: "location", Message: "location or is_country_area required"})
	}

	for _, p := range i.PrestaTypes {
		if !p.IsValid() {
			errs = append(errs, domain.FieldError{Field: "presta_types", Message: "unknown presta type"})
			break
		}
	}
	for _, k := range i.SiaeKind {
		if !k.IsValid() {
			errs = append(errs, domain.FieldError{Field: "siae_kind", Message: "unknown siae kind"})
			break
		}
	}
	for _, r := range i.ResponseKind {
		if !r.IsValid() {
			errs = append(errs, domain.FieldError{Field: "response_kind", Message: "unknown response kind"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput narrows the tender listing.
type ListInput struct {
	Kind     domain.TenderKind
	AuthorID int64
	Limit    uint64
	Offset   uint64
}
