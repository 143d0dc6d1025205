// Package siae implements the Siae repository using PostgreSQL.
package siae

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// siaeColumns is the canonical column list for SELECTs, matching scanSiae.
const siaeColumns = `id, name, slug, brand, siret, naf, kind, nature, presta_types,
website, email, phone, address, city, post_code, department, region,
latitude, longitude, geo_range, geo_range_custom_distance,
description, image_name,
contact_first_name, contact_last_name, contact_email, contact_phone, contact_website,
is_active, is_delisted, is_first_page, is_qpv,
c4_id_old, source, created_at, updated_at`

// Filter narrows the List query. Zero values mean "no constraint".
type Filter struct {
	Kinds      []domain.SiaeKind
	PrestaType domain.PrestaType
	Department string
	Region     string
	IsActive   *bool
	Limit      uint64
	Offset     uint64
}

// UserContact is the first linked user's contact info for one enterprise,
// used by the migration's contact back-fill.
type UserContact struct {
	SiaeID    int64
	Website   string
	Email     string
	Phone     string
	FirstName string
	LastName  string
}

// Repo provides enterprise persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new siae repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetBySlug returns an enterprise by slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Siae, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+siaeColumns+" FROM siaes WHERE slug = $1", slug)
	s, err := scanSiae(row)
	if err != nil {
		return nil, postgres.MapError(err, "siae", 0)
	}
	return s, nil
}

// List returns enterprises matching the filter, active first then by name.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f Filter) ([]*domain.Siae, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(siaeColumns).
		From("siaes").
		OrderBy("is_active DESC", "name ASC")

	if len(f.Kinds) > 0 {
		kinds := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			kinds[i] = k.String()
		}
		builder = builder.Where(sq.Eq{"kind": kinds})
	}
	if f.PrestaType != "" {
		builder = builder.Where("presta_types @> ARRAY[?]::text[]", f.PrestaType.String())
	}
	if f.Department != "" {
		builder = builder.Where(sq.Eq{"department": f.Department})
	}
	if f.Region != "" {
		builder = builder.Where(sq.Eq{"region": f.Region})
	}
	if f.IsActive != nil {
		builder = builder.Where(sq.Eq{"is_active": *f.IsActive})
	}
	if f.Limit > 0 {
		builder = builder.Limit(f.Limit)
	}
	if f.Offset > 0 {
		builder = builder.Offset(f.Offset)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("list siaes: build query: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list siaes: %w", err)
	}
	defer rows.Close()

	siaes := []*domain.Siae{}
	for rows.Next() {
		s, err := scanSiae(rows)
		if err != nil {
			return nil, fmt.Errorf("list siaes: scan: %w", err)
		}
		siaes = append(siaes, s)
	}
	return siaes, rows.Err()
}

// IDsByLegacyUserID returns the ids of all enterprises linked to the user
// whose legacy id is c4ID. The migration's image resolution uses the result
// size to decide between attach and skip.
func (r *Repo) IDsByLegacyUserID(ctx context.Context, c4ID int64) ([]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT su.siae_id
FROM siae_users su
JOIN users u ON u.id = su.user_id
WHERE u.c4_id = $1
ORDER BY su.siae_id`, c4ID)
	if err != nil {
		return nil, fmt.Errorf("siae ids by legacy user %d: %w", c4ID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("siae ids by legacy user %d: scan: %w", c4ID, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of enterprises.
func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siaes")
}

// CountWithImage returns the number of enterprises with a migrated logo.
func (r *Repo) CountWithImage(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siaes WHERE image_name IS NOT NULL")
}

// CountNetworkLinks returns the number of siae-network links.
func (r *Repo) CountNetworkLinks(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_networks")
}

// CountSectorLinks returns the number of siae-sector links.
func (r *Repo) CountSectorLinks(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_sectors")
}

// CountUserLinks returns the number of siae-user links.
func (r *Repo) CountUserLinks(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_users")
}

func (r *Repo) countQuery(ctx context.Context, sqlStr string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, sqlStr).Scan(&n); err != nil {
		return 0, fmt.Errorf("count siaes: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new enterprise. A non-zero s.ID is preserved (the
// migration keeps legacy primary keys); otherwise the sequence assigns one.
func (r *Repo) Create(ctx context.Context, s *domain.Siae) (*domain.Siae, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	createdAt, updatedAt := s.CreatedAt, s.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	var lat, lon *float64
	if s.Coords != nil {
		lat, lon = &s.Coords.Latitude, &s.Coords.Longitude
	}

	columns := []string{
		"name", "slug", "brand", "siret", "naf", "kind", "nature", "presta_types",
		"website", "email", "phone", "address", "city", "post_code", "department", "region",
		"latitude", "longitude", "geo_range", "geo_range_custom_distance",
		"description", "image_name",
		"contact_first_name", "contact_last_name", "contact_email", "contact_phone", "contact_website",
		"is_active", "is_delisted", "is_first_page", "is_qpv",
		"c4_id_old", "source", "created_at", "updated_at",
	}
	values := []any{
		s.Name, s.Slug, s.Brand, s.Siret, s.Naf, s.Kind.String(), s.Nature.String(), prestaTypesToStrings(s.PrestaTypes),
		s.Website, s.Email, s.Phone, s.Address, s.City, s.PostCode, s.Department, s.Region,
		lat, lon, s.GeoRange.String(), s.GeoRangeCustomDistance,
		s.Description, s.ImageName,
		s.ContactFirstName, s.ContactLastName, s.ContactEmail, s.ContactPhone, s.ContactWebsite,
		s.IsActive, s.IsDelisted, s.IsFirstPage, s.IsQPV,
		s.C4IDOld, s.Source, createdAt, updatedAt,
	}
	if s.ID != 0 {
		columns = append([]string{"id"}, columns...)
		values = append([]any{s.ID}, values...)
	}

	builder := psql.Insert("siaes").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id")

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("create siae: build query: %w", err)
	}

	created := *s
	created.CreatedAt, created.UpdatedAt = createdAt, updatedAt
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&created.ID); err != nil {
		return nil, postgres.MapError(err, "siae", s.ID)
	}
	return &created, nil
}

// DeleteAll removes every enterprise (and, via cascades, their offers,
// labels, references, images and link rows). Migration runs are idempotent
// by full replace.
func (r *Repo) DeleteAll(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "DELETE FROM siaes"); err != nil {
		return fmt.Errorf("delete all siaes: %w", err)
	}
	return nil
}

// ResetIDSequence realigns the id sequence after inserts with explicit
// legacy ids, so later runtime inserts do not collide with migrated rows.
func (r *Repo) ResetIDSequence(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		"SELECT setval(pg_get_serial_sequence('siaes', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM siaes"); err != nil {
		return fmt.Errorf("reset siaes id sequence: %w", err)
	}
	return nil
}

// SetImageName stores the logo file name for the given enterprise.
func (r *Repo) SetImageName(ctx context.Context, id int64, imageName string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, "UPDATE siaes SET image_name = $2, updated_at = now() WHERE id = $1", id, imageName)
	if err != nil {
		return postgres.MapError(err, "siae", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "siae", id)
	}
	return nil
}

// UpdateContact stores the contact fields back-filled from the first linked user.
func (r *Repo) UpdateContact(ctx context.Context, id int64, c UserContact) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
UPDATE siaes SET
	contact_website = $2,
	contact_email = $3,
	contact_phone = $4,
	contact_first_name = $5,
	contact_last_name = $6,
	updated_at = now()
WHERE id = $1`, id, c.Website, c.Email, c.Phone, c.FirstName, c.LastName)
	if err != nil {
		return postgres.MapError(err, "siae", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Link tables
// ---------------------------------------------------------------------------

// AddNetwork links an enterprise to a network.
func (r *Repo) AddNetwork(ctx context.Context, siaeID, networkID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		"INSERT INTO siae_networks (siae_id, network_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		siaeID, networkID)
	if err != nil {
		return postgres.MapError(err, "siae_network", siaeID)
	}
	return nil
}

// AddSector links an enterprise to a sector. A foreign-key violation maps to
// domain.ErrNotFound; the migration treats it as a skippable row (legacy data
// sometimes points at a sector group instead of a sector).
func (r *Repo) AddSector(ctx context.Context, siaeID, sectorID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		"INSERT INTO siae_sectors (siae_id, sector_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		siaeID, sectorID)
	if err != nil {
		return postgres.MapError(err, "siae_sector", siaeID)
	}
	return nil
}

// AddUser links an enterprise to a user.
func (r *Repo) AddUser(ctx context.Context, siaeID, userID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		"INSERT INTO siae_users (siae_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		siaeID, userID)
	if err != nil {
		return postgres.MapError(err, "siae_user", siaeID)
	}
	return nil
}

// DeleteAllNetworkLinks clears the siae-network link table.
func (r *Repo) DeleteAllNetworkLinks(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_networks")
}

// DeleteAllSectorLinks clears the siae-sector link table.
func (r *Repo) DeleteAllSectorLinks(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_sectors")
}

// DeleteAllUserLinks clears the siae-user link table.
func (r *Repo) DeleteAllUserLinks(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_users")
}

func (r *Repo) deleteLinks(ctx context.Context, table string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// ListFirstUserContacts returns, for every enterprise that has at least one
// linked user, the contact info of its first user (ordered by legacy id).
func (r *Repo) ListFirstUserContacts(ctx context.Context) ([]UserContact, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT DISTINCT ON (s.id)
	s.id, s.website, u.email, u.phone, u.first_name, u.last_name
FROM siaes s
JOIN siae_users su ON su.siae_id = s.id
JOIN users u ON u.id = su.user_id
ORDER BY s.id, u.c4_id NULLS LAST, u.id`)
	if err != nil {
		return nil, fmt.Errorf("list first user contacts: %w", err)
	}
	defer rows.Close()

	var contacts []UserContact
	for rows.Next() {
		var c UserContact
		if err := rows.Scan(&c.SiaeID, &c.Website, &c.Email, &c.Phone, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("list first user contacts: scan: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanSiae(row pgx.Row) (*domain.Siae, error) {
	var (
		s           domain.Siae
		prestaTypes []string
		lat, lon    *float64
	)

	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Brand, &s.Siret, &s.Naf, &s.Kind, &s.Nature, &prestaTypes,
		&s.Website, &s.Email, &s.Phone, &s.Address, &s.City, &s.PostCode, &s.Department, &s.Region,
		&lat, &lon, &s.GeoRange, &s.GeoRangeCustomDistance,
		&s.Description, &s.ImageName,
		&s.ContactFirstName, &s.ContactLastName, &s.ContactEmail, &s.ContactPhone, &s.ContactWebsite,
		&s.IsActive, &s.IsDelisted, &s.IsFirstPage, &s.IsQPV,
		&s.C4IDOld, &s.Source, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.PrestaTypes = prestaTypesFromStrings(prestaTypes)
	if lat != nil && lon != nil {
		s.Coords = &domain.Point{Latitude: *lat, Longitude: *lon}
	}
	return &s, nil
}

func prestaTypesToStrings(types []domain.PrestaType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

func prestaTypesFromStrings(values []string) []domain.PrestaType {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.PrestaType, len(values))
	for i, v := range values {
		out[i] = domain.PrestaType(v)
	}
	return out
}
