package migrator

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func i64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func f64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func lbool(v bool) legacy.Bool {
	return legacy.Bool{Bool: v, Valid: true}
}

func TestSiaeFromRow(t *testing.T) {
	createdAt := time.Date(2019, 4, 1, 10, 0, 0, 0, time.UTC)

	row := legacy.DirectoryRow{
		ID:         42,
		Name:       str("Ateliers de l'Insertion"),
		Brand:      str("ADI"),
		Siret:      str("12345678901234"),
		Naf:        str("8899B"),
		Kind:       str("EI"),
		Nature:     str("siege"),
		PrestaType: []byte("6"),
		Website:    str("https://adi.example.com"),
		Email:      str("contact@adi.example.com"),
		Phone:      str("0102030405"),
		Address:    str("1 rue de la Paix"),
		City:       str("Paris"),
		PostCode:   str("75002"),
		Department: str("75"),
		Region:     str("Île-de-France"),
		Latitude:   f64(48.85),
		Longitude:  f64(2.35),
		// pol_range carries the range enum, geo_range the custom distance
		PolRange:    i64(1),
		GeoRange:    i64(30),
		Description: str("Atelier d'insertion parisien"),
		IsActive:    lbool(true),
		IsDelisted:  lbool(false),
		IsFirstPage: lbool(true),
		IsQPV:       legacy.Bool{},
		C4ID:        i64(42),
		C1Source:    str("C4"),
		CreatedAt:   sql.NullTime{Time: createdAt, Valid: true},
		UpdatedAt:   sql.NullTime{Time: createdAt.Add(time.Hour), Valid: true},
	}

	s := siaeFromRow(row)

	assert.Equal(t, int64(42), s.ID)
	assert.Equal(t, "Ateliers de l'Insertion", s.Name)
	assert.Equal(t, "ateliers-de-l-insertion", s.Slug)
	assert.Equal(t, domain.SiaeKindEI, s.Kind)
	assert.Equal(t, domain.SiaeNatureHeadOffice, s.Nature)
	assert.Equal(t, []domain.PrestaType{domain.PrestaTypeDisp, domain.PrestaTypePrest}, s.PrestaTypes)

	require.NotNil(t, s.Coords)
	assert.Equal(t, 48.85, s.Coords.Latitude)
	assert.Equal(t, 2.35, s.Coords.Longitude)

	assert.Equal(t, domain.GeoRangeDepartment, s.GeoRange)
	require.NotNil(t, s.GeoRangeCustomDistance)
	assert.Equal(t, 30, *s.GeoRangeCustomDistance)

	assert.True(t, s.IsActive)
	assert.False(t, s.IsDelisted)
	assert.True(t, s.IsFirstPage)
	assert.False(t, s.IsQPV, "NULL flag falls back to the destination default")

	require.NotNil(t, s.C4IDOld)
	assert.Equal(t, int64(42), *s.C4IDOld)
	assert.Equal(t, "C4", s.Source)

	assert.Equal(t, createdAt, s.CreatedAt)
}

func TestSiaeFromRow_Defaults(t *testing.T) {
	s := siaeFromRow(legacy.DirectoryRow{ID: 7, Name: str("X")})

	assert.True(t, s.IsActive, "NULL is_active defaults to active")
	assert.Nil(t, s.Coords)
	assert.Nil(t, s.GeoRangeCustomDistance)
	assert.Nil(t, s.C4IDOld)
	assert.Equal(t, domain.GeoRange(""), s.GeoRange)
	assert.Nil(t, s.PrestaTypes)
	assert.True(t, s.CreatedAt.IsZero())
}

func TestNetworkFromRow(t *testing.T) {
	n := networkFromRow(legacy.NetworkRow{ID: 3, Name: "Réseau Coorace", Brand: str("Coorace")})

	assert.Equal(t, int64(3), n.ID)
	assert.Equal(t, "Réseau Coorace", n.Name)
	assert.Equal(t, "reseau-coorace", n.Slug)
	assert.Equal(t, "Coorace", n.Brand)
}

func TestClientReferenceFromRow(t *testing.T) {
	c := clientReferenceFromRow(legacy.DirectoryClientImageRow{
		ID:          9,
		DirectoryID: 42,
		Name:        str("logo-acme.png"),
		Description: str("ACME"),
		Position:    2,
	})

	// legacy name is the image file, legacy description the display name
	assert.Equal(t, "ACME", c.Name)
	assert.Equal(t, "logo-acme.png", c.ImageName)
	assert.Equal(t, 2, c.Order)
	assert.Equal(t, int64(42), c.SiaeID)
}

func TestUserFromRow(t *testing.T) {
	row := legacy.UserRow{
		ID:                 1697088192,
		Email:              "jeanne@example.com",
		FirstName:          str("Jeanne"),
		LastName:           str("Martin"),
		Phone:              str("0601020304"),
		CompanyName:        str("Acme"),
		Enabled:            lbool(true),
		PersonType:         i64(4),
		Roles:              str(`a:1:{i:0;s:10:"ROLE_STAFF";}`),
		Website:            str("https://jeanne.example.com"),
		Siret:              str("98765432109876"),
		PhonePrefix:        str("+33"),
		TimeZone:           str("Europe/Paris"),
		PhoneVerified:      lbool(true),
		OffersForProSector: lbool(true),
	}

	u, ok := userFromRow(row)
	require.True(t, ok)

	assert.Equal(t, int64(0), u.ID, "a fresh id is assigned by the destination")
	require.NotNil(t, u.C4ID)
	assert.Equal(t, int64(1697088192), *u.C4ID)

	assert.Equal(t, domain.UserKindSiae, u.Kind)
	assert.True(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)
	assert.True(t, u.IsActive)
	assert.True(t, u.AcceptOffersForProSector)
	assert.False(t, u.AcceptQuotePromise)

	assert.Equal(t, "+33", u.C4PhonePrefix)
	assert.Equal(t, "Europe/Paris", u.C4TimeZone)
	assert.Equal(t, "https://jeanne.example.com", u.C4Website)
	assert.Equal(t, "98765432109876", u.C4Siret)
	assert.True(t, u.C4PhoneVerified)
	assert.False(t, u.C4EmailVerified)
}

func TestUserFromRow_Superuser(t *testing.T) {
	u, ok := userFromRow(legacy.UserRow{
		ID:         1,
		Email:      "admin@example.com",
		PersonType: i64(5),
		Roles:      str(`a:1:{i:0;s:16:"ROLE_SUPER_ADMIN";}`),
	})
	require.True(t, ok)
	assert.True(t, u.IsSuperuser)
	assert.False(t, u.IsStaff)
	assert.Equal(t, domain.UserKindAdmin, u.Kind)
}

func TestUserFromRow_SkipsKindlessAccounts(t *testing.T) {
	tests := []struct {
		name string
		row  legacy.UserRow
	}{
		{name: "null person_type", row: legacy.UserRow{ID: 1, Email: "a@b.c"}},
		{name: "retired person kind", row: legacy.UserRow{ID: 2, Email: "a@b.c", PersonType: i64(1)}},
		{name: "unknown kind", row: legacy.UserRow{ID: 3, Email: "a@b.c", PersonType: i64(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := userFromRow(tt.row)
			assert.False(t, ok)
			assert.Nil(t, u)
		})
	}
}
