package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active buyer user. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		Email:     "testuser-" + suffix + "@example.com",
		FirstName: "Test",
		LastName:  "User " + suffix,
		Kind:      domain.UserKindBuyer,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (email, first_name, last_name, kind, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Email, user.FirstName, user.LastName, user.Kind.String(), user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedUserWithAPIKey creates an active user holding an API key.
func SeedUserWithAPIKey(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	user := SeedUser(t, pool)
	apiKey := "key-" + uniqueSuffix()

	_, err := pool.Exec(ctx, `UPDATE users SET api_key = $2 WHERE id = $1`, user.ID, apiKey)
	if err != nil {
		t.Fatalf("testhelper: SeedUserWithAPIKey set api_key: %v", err)
	}
	user.APIKey = &apiKey
	return user
}

// SeedSiae creates an active enterprise with sensible defaults.
// Returns a filled domain.Siae.
func SeedSiae(t *testing.T, pool *pgxpool.Pool) domain.Siae {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	siae := domain.Siae{
		Name:        "Test Siae " + suffix,
		Slug:        "test-siae-" + suffix,
		Siret:       "12345678901234",
		Kind:        domain.SiaeKindEI,
		Nature:      domain.SiaeNatureHeadOffice,
		PrestaTypes: []domain.PrestaType{domain.PrestaTypeDisp},
		City:        "Paris",
		PostCode:    "75001",
		Department:  "75",
		Region:      "Île-de-France",
		GeoRange:    domain.GeoRangeDepartment,
		IsActive:    true,
		Source:      "test",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO siaes (name, slug, siret, kind, nature, presta_types, city, post_code, department, region, geo_range, is_active, source, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
		siae.Name, siae.Slug, siae.Siret, siae.Kind.String(), siae.Nature.String(),
		[]string{domain.PrestaTypeDisp.String()}, siae.City, siae.PostCode, siae.Department,
		siae.Region, siae.GeoRange.String(), siae.IsActive, siae.Source, siae.CreatedAt, siae.UpdatedAt,
	).Scan(&siae.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSiae insert siae: %v", err)
	}

	return siae
}

// SeedSectorGroup creates a sector group. Returns a filled domain.SectorGroup.
func SeedSectorGroup(t *testing.T, pool *pgxpool.Pool) domain.SectorGroup {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	group := domain.SectorGroup{
		Name:      "Test Group " + suffix,
		Slug:      "test-group-" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO sector_groups (name, slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		group.Name, group.Slug, group.CreatedAt, group.UpdatedAt,
	).Scan(&group.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSectorGroup insert group: %v", err)
	}

	return group
}

// SeedSector creates a sector inside the given group. Returns a filled domain.Sector.
func SeedSector(t *testing.T, pool *pgxpool.Pool, groupID int64) domain.Sector {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	sector := domain.Sector{
		GroupID:   groupID,
		Name:      "Test Sector " + suffix,
		Slug:      "test-sector-" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO sectors (group_id, name, slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		sector.GroupID, sector.Name, sector.Slug, sector.CreatedAt, sector.UpdatedAt,
	).Scan(&sector.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSector insert sector: %v", err)
	}

	return sector
}

// SeedPerimeter creates a city perimeter. Returns a filled domain.Perimeter.
func SeedPerimeter(t *testing.T, pool *pgxpool.Pool) domain.Perimeter {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	perimeter := domain.Perimeter{
		Name:           "Test City " + suffix,
		Slug:           "test-city-" + suffix,
		Kind:           domain.PerimeterKindCity,
		InseeCode:      "75056",
		DepartmentCode: "75",
		RegionCode:     "11",
		PostCodes:      []string{"75001"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO perimeters (name, slug, kind, insee_code, department_code, region_code, post_codes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		perimeter.Name, perimeter.Slug, perimeter.Kind.String(), perimeter.InseeCode,
		perimeter.DepartmentCode, perimeter.RegionCode, perimeter.PostCodes,
		perimeter.CreatedAt, perimeter.UpdatedAt,
	).Scan(&perimeter.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedPerimeter insert perimeter: %v", err)
	}

	return perimeter
}
