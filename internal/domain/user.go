package domain

import "time"

// User is a platform account (buyer, enterprise member, partner or admin).
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Kind      UserKind
	Phone     string

	// PasswordHash is empty for accounts carried over from the legacy
	// database; those users go through the password-reset flow.
	PasswordHash string

	// APIKey grants access to the REST API. Nil when the user has none.
	APIKey *string

	CompanyName string
	ImageName   *string

	IsActive    bool
	IsStaff     bool
	IsSuperuser bool

	AcceptOffersForProSector bool
	AcceptQuotePromise       bool

	// Legacy fields carried over as-is from the old schema.
	C4ID             *int64
	C4PhonePrefix    string
	C4TimeZone       string
	C4Website        string
	C4Siret          string
	C4Naf            string
	C4PhoneVerified  bool
	C4EmailVerified  bool
	C4IDCardVerified bool

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last", trimmed when either part is empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// HasAPIKey reports whether the user can authenticate API calls with a token.
func (u *User) HasAPIKey() bool {
	return u.APIKey != nil && *u.APIKey != ""
}
