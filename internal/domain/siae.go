package domain

import "time"

// Siae is an inclusive enterprise listed on the marketplace.
type Siae struct {
	ID    int64
	Name  string
	Slug  string
	Brand string

	Siret string
	Naf   string
	Kind  SiaeKind
	// Nature is empty when the legacy value was unknown or "n/a".
	Nature      SiaeNature
	PrestaTypes []PrestaType

	Website     string
	Email       string
	Phone       string
	Address     string
	City        string
	PostCode    string
	Department  string
	Region      string
	Coords      *Point
	GeoRange    GeoRange
	// GeoRangeCustomDistance is the intervention radius in km, only
	// meaningful when GeoRange is GeoRangeCustom.
	GeoRangeCustomDistance *int

	Description string
	// ImageName is the logo file name; at most one is carried over from the
	// legacy gallery (first position only).
	ImageName *string

	ContactFirstName string
	ContactLastName  string
	ContactEmail     string
	ContactPhone     string
	ContactWebsite   string

	IsActive    bool
	IsDelisted  bool
	IsFirstPage bool
	IsQPV       bool

	// C4IDOld is the enterprise id in the legacy database.
	C4IDOld *int64
	Source  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiaeOffer is a service offered by an enterprise ("prestations proposées").
type SiaeOffer struct {
	ID          int64
	SiaeID      int64
	Name        string
	Description string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SiaeLabel is a label or certification held by an enterprise.
type SiaeLabel struct {
	ID        int64
	SiaeID    int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiaeClientReference is a client logo displayed on an enterprise page.
type SiaeClientReference struct {
	ID     int64
	SiaeID int64
	// Name comes from the legacy description field; ImageName from the
	// legacy name field.
	Name      string
	ImageName string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiaeImage is a gallery image attached to an enterprise.
type SiaeImage struct {
	ID          int64
	SiaeID      int64
	Name        string
	Description string
	ImageName   string
	Order       int
	// C4ListingID is the legacy photo-gallery (listing) id the image came from.
	C4ListingID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
