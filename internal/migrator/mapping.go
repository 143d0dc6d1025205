package migrator

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// Row-to-domain mapping. Every legacy column is read from a named struct
// field so a rename in either schema is a compile error, not a silently
// dropped value.

func siaeFromRow(r legacy.DirectoryRow) *domain.Siae {
	s := &domain.Siae{
		ID:    r.ID,
		Name:  r.Name.String,
		Brand: r.Brand.String,
		Siret: r.Siret.String,
		Naf:   r.Naf.String,
		Kind:  domain.SiaeKind(r.Kind.String),

		Nature:      MapNature(r.Nature.String),
		PrestaTypes: MapPrestaTypes(r.PrestaType),

		Website:  r.Website.String,
		Email:    r.Email.String,
		Phone:    r.Phone.String,
		Address:  r.Address.String,
		City:     r.City.String,
		PostCode: r.PostCode.String,

		Department: r.Department.String,
		Region:     r.Region.String,

		Description: r.Description.String,

		IsActive:    r.IsActive.Or(true),
		IsDelisted:  r.IsDelisted.Or(false),
		IsFirstPage: r.IsFirstPage.Or(false),
		IsQPV:       r.IsQPV.Or(false),

		Source: r.C1Source.String,

		CreatedAt: timeOrZero(r.CreatedAt),
		UpdatedAt: timeOrZero(r.UpdatedAt),
	}

	s.Slug = domain.Slugify(s.Name)

	if r.Latitude.Valid && r.Longitude.Valid {
		p := domain.NewPoint(r.Longitude.Float64, r.Latitude.Float64)
		s.Coords = &p
	}
	if r.PolRange.Valid {
		s.GeoRange = MapGeoRange(r.PolRange.Int64)
	}
	if r.GeoRange.Valid {
		d := int(r.GeoRange.Int64)
		s.GeoRangeCustomDistance = &d
	}
	if r.C4ID.Valid {
		c4 := r.C4ID.Int64
		s.C4IDOld = &c4
	}
	return s
}

func networkFromRow(r legacy.NetworkRow) *domain.Network {
	return &domain.Network{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      domain.Slugify(r.Name),
		Brand:     r.Brand.String,
		Website:   r.Website.String,
		CreatedAt: timeOrZero(r.CreatedAt),
		UpdatedAt: timeOrZero(r.UpdatedAt),
	}
}

func offerFromRow(r legacy.DirectoryOfferRow) *domain.SiaeOffer {
	return &domain.SiaeOffer{
		SiaeID:      r.DirectoryID,
		Name:        r.Name,
		Description: r.Description.String,
		CreatedAt:   timeOrZero(r.CreatedAt),
		UpdatedAt:   timeOrZero(r.UpdatedAt),
	}
}

func labelFromRow(r legacy.DirectoryLabelRow) *domain.SiaeLabel {
	return &domain.SiaeLabel{
		SiaeID:    r.DirectoryID,
		Name:      r.Name,
		CreatedAt: timeOrZero(r.CreatedAt),
		UpdatedAt: timeOrZero(r.UpdatedAt),
	}
}

// clientReferenceFromRow carries the legacy renames: name is the image file,
// description the display name, position the ordering.
func clientReferenceFromRow(r legacy.DirectoryClientImageRow) *domain.SiaeClientReference {
	return &domain.SiaeClientReference{
		SiaeID:    r.DirectoryID,
		Name:      r.Description.String,
		ImageName: r.Name.String,
		Order:     r.Position,
		CreatedAt: timeOrZero(r.CreatedAt),
		UpdatedAt: timeOrZero(r.UpdatedAt),
	}
}

// userFromRow maps a legacy account. The boolean `ok` is false when the
// account has no recognizable kind; such users are not migrated.
func userFromRow(r legacy.UserRow) (*domain.User, bool) {
	var kind domain.UserKind
	if r.PersonType.Valid {
		kind = MapUserKind(r.PersonType.Int64)
	}
	if kind == "" {
		return nil, false
	}

	c4ID := r.ID
	u := &domain.User{
		Email:       r.Email,
		FirstName:   r.FirstName.String,
		LastName:    r.LastName.String,
		Kind:        kind,
		Phone:       r.Phone.String,
		CompanyName: r.CompanyName.String,

		IsActive: r.Enabled.Or(true),

		AcceptOffersForProSector: r.OffersForProSector.Or(false),
		AcceptQuotePromise:       r.QuotePromise.Or(false),

		C4ID:             &c4ID,
		C4PhonePrefix:    r.PhonePrefix.String,
		C4TimeZone:       r.TimeZone.String,
		C4Website:        r.Website.String,
		C4Siret:          r.Siret.String,
		C4Naf:            r.Naf.String,
		C4PhoneVerified:  r.PhoneVerified.Or(false),
		C4EmailVerified:  r.EmailVerified.Or(false),
		C4IDCardVerified: r.IDCardVerified.Or(false),

		CreatedAt: timeOrZero(r.CreatedAt),
		UpdatedAt: timeOrZero(r.UpdatedAt),
	}

	if r.LastLogin.Valid {
		t := r.LastLogin.Time
		u.LastLogin = &t
	}

	if r.Roles.Valid {
		if strings.HasPrefix(r.Roles.String, rolePrefixStaff) {
			u.IsStaff = true
		}
		if strings.HasPrefix(r.Roles.String, rolePrefixSuperuser) {
			u.IsSuperuser = true
		}
	}
	return u, true
}

func timeOrZero(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}
