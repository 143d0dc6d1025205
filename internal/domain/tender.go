package domain

import "time"

// Tender is a buyer request for quote or call for tenders.
type Tender struct {
	ID   int64
	Slug string

	// General
	Kind          TenderKind
	Title         string
	Sectors       []Sector
	PrestaTypes   []PrestaType
	Location      *Perimeter
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
	SiaeKind            []SiaeKind

	// Contact
	ContactFirstName   string
	ContactLastName    string
	ContactEmail       string
	ContactPhone       string
	ContactCompanyName string
	ResponseKind       []ResponseKind
	DeadlineDate       *time.Time

	// ExtraData is free-form data attached by API consumers.
	ExtraData map[string]any

	AuthorID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SectorSlugs returns the slugs of the tender's sectors, in order.
func (t *Tender) SectorSlugs() []string {
	slugs := make([]string, len(t.Sectors))
	for i, s := range t.Sectors {
		slugs[i] = s.Slug
	}
	return slugs
}
