package legacy

import "database/sql"

// Typed rows for every source table the migration reads. Each struct names
// the legacy columns explicitly so a schema drift fails at scan time instead
// of silently carrying a renamed field.

// DirectoryRow is one row of the `directory` table (an enterprise).
type DirectoryRow struct {
	ID    int64
	Name  sql.NullString
	Brand sql.NullString
	Siret sql.NullString
	Naf   sql.NullString
	Kind  sql.NullString

	// Nature holds "siege", "antenne" or "n/a".
	Nature sql.NullString

	// PrestaType is a byte-encoded bitmask code ("0".."14", even values).
	PrestaType []byte

	Website  sql.NullString
	Email    sql.NullString
	Phone    sql.NullString
	Address  sql.NullString
	City     sql.NullString
	PostCode sql.NullString

	Department sql.NullString
	Region     sql.NullString
	Latitude   sql.NullFloat64
	Longitude  sql.NullFloat64

	// PolRange is the geographic-range enum (0..3); GeoRange is, despite its
	// name, the custom intervention distance in km.
	PolRange sql.NullInt64
	GeoRange sql.NullInt64

	Description sql.NullString

	IsActive    Bool
	IsDelisted  Bool
	IsFirstPage Bool
	IsQPV       Bool

	C4ID     sql.NullInt64
	C1Source sql.NullString

	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// DirectoryImageRow is one row of `directory_image` (enterprise logos).
type DirectoryImageRow struct {
	ID          int64
	DirectoryID int64
	Name        string
	Position    int
}

// NetworkRow is one row of the `network` table.
type NetworkRow struct {
	ID        int64
	Name      string
	Brand     sql.NullString
	Website   sql.NullString
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// DirectoryNetworkRow links an enterprise to a network.
type DirectoryNetworkRow struct {
	DirectoryID int64
	NetworkID   int64
}

// ListingCategoryRow is one row of `listing_category` (sector hierarchy).
type ListingCategoryRow struct {
	ID       int64
	ParentID sql.NullInt64
}

// ListingCategoryTranslationRow carries the localized name and slug of a
// listing category.
type ListingCategoryTranslationRow struct {
	TranslatableID int64
	Locale         string
	Name           string
	Slug           string
}

// DirectoryListingCategoryRow links an enterprise to a sector (or, in broken
// legacy rows, to a sector group).
type DirectoryListingCategoryRow struct {
	DirectoryID       int64
	ListingCategoryID int64
}

// DirectoryOfferRow is one row of `directory_offer`.
type DirectoryOfferRow struct {
	ID          int64
	DirectoryID int64
	Name        string
	Description sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// DirectoryLabelRow is one row of `directory_label`.
type DirectoryLabelRow struct {
	ID          int64
	DirectoryID int64
	Name        string
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// DirectoryClientImageRow is one row of `directory_client_image` (client
// reference logos). Name is the image file; Description the display name.
type DirectoryClientImageRow struct {
	ID          int64
	DirectoryID int64
	Name        sql.NullString
	Description sql.NullString
	Position    int
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// ListingRow is one row of `listing` (a user's photo gallery).
type ListingRow struct {
	ID        int64
	UserID    int64
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// ListingTranslationRow carries the localized title and description of a
// listing.
type ListingTranslationRow struct {
	TranslatableID int64
	Locale         string
	Title          sql.NullString
	Description    sql.NullString
}

// ListingImageRow is one row of `listing_image`.
type ListingImageRow struct {
	ID        int64
	ListingID int64
	Name      string
	Position  int
}

// UserRow is one row of the `user` table.
type UserRow struct {
	ID          int64
	Email       string
	FirstName   sql.NullString
	LastName    sql.NullString
	Phone       sql.NullString
	CompanyName sql.NullString

	Enabled Bool

	// PersonType encodes the account kind (3 buyer, 4 siae, 5 admin, 6 partner).
	PersonType sql.NullInt64

	// Roles is a PHP-serialized array; staff and superuser flags are derived
	// from its prefix.
	Roles sql.NullString

	Website sql.NullString
	Siret   sql.NullString
	Naf     sql.NullString

	PhonePrefix sql.NullString
	TimeZone    sql.NullString

	PhoneVerified  Bool
	EmailVerified  Bool
	IDCardVerified Bool

	OffersForProSector Bool
	QuotePromise       Bool

	LastLogin sql.NullTime
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// UserImageRow is one row of `user_image` (user avatars).
type UserImageRow struct {
	ID       int64
	UserID   int64
	Name     string
	Position int
}

// DirectoryUserRow links an enterprise to a user.
type DirectoryUserRow struct {
	DirectoryID int64
	UserID      int64
}
