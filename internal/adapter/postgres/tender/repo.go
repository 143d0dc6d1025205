// Package tender implements the Tender repository using PostgreSQL.
package tender

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

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const tenderColumns = `t.id, t.slug, t.kind, t.title, t.presta_types, t.location_id, t.is_country_area,
t.description, t.start_working_date, t.external_link, t.constraints, t.amount, t.why_amount_is_blank,
t.accept_share_amount, t.accept_cocontracting, t.siae_kind,
t.contact_first_name, t.contact_last_name, t.contact_email, t.contact_phone, t.contact_company_name,
t.response_kind, t.deadline_date, t.extra_data, t.author_id, t.created_at, t.updated_at`

// Filter narrows the List query. Zero values mean "no constraint".
type Filter struct {
	Kind     domain.TenderKind
	AuthorID int64
	Limit    uint64
	Offset   uint64
}

// Repo provides tender persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tender repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a tender together with its sector links. Callers run it
// inside a transaction so a failed link insert rolls the tender back too.
func (r *Repo) Create(ctx context.Context, t *domain.Tender) (*domain.Tender, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	created := *t
	created.CreatedAt, created.UpdatedAt = now, now

	var locationID *int64
	if t.Location != nil {
		locationID = &t.Location.ID
	}

	err := q.QueryRow(ctx, `
INSERT INTO tenders (
	slug, kind, title, presta_types, location_id, is_country_area,
	description, start_working_date, external_link, constraints, amount, why_amount_is_blank,
	accept_share_amount, accept_cocontracting, siae_kind,
	contact_first_name, contact_last_name, contact_email, contact_phone, contact_company_name,
	response_kind, deadline_date, extra_data, author_id, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6,
	$7, $8, $9, $10, $11, $12,
	$13, $14, $15,
	$16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26
) RETURNING id`,
		t.Slug, t.Kind.String(), t.Title, enumsToStrings(t.PrestaTypes), locationID, t.IsCountryArea,
		t.Description, t.StartWorkingDate, t.ExternalLink, t.Constraints, t.Amount, t.WhyAmountIsBlank,
		t.AcceptShareAmount, t.AcceptCocontracting, enumsToStrings(t.SiaeKind),
		t.ContactFirstName, t.ContactLastName, t.ContactEmail, t.ContactPhone, t.ContactCompanyName,
		enumsToStrings(t.ResponseKind), t.DeadlineDate, t.ExtraData, t.AuthorID, now, now,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "tender", 0)
	}

	for _, s := range t.Sectors {
		if _, err := q.Exec(ctx,
			"INSERT INTO tender_sectors (tender_id, sector_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			created.ID, s.ID); err != nil {
			return nil, postgres.MapError(err, "tender sector", created.ID)
		}
	}
	return &created, nil
}

// GetBySlug returns a tender with its sectors and location resolved.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Tender, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+tenderColumns+" FROM tenders t WHERE t.slug = $1", slug)
	t, locationID, err := scanTender(row)
	if err != nil {
		return nil, postgres.MapError(err, "tender", 0)
	}

	if err := r.loadSectors(ctx, q, t); err != nil {
		return nil, err
	}
	if locationID != nil {
		if err := r.loadLocation(ctx, q, t, *locationID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// List returns tenders matching the filter, most recent first, with their
// sectors resolved. Locations stay unresolved to keep the list query cheap.
func (r *Repo) List(ctx context.Context, f Filter) ([]*domain.Tender, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(tenderColumns).From("tenders t").OrderBy("t.created_at DESC", "t.id DESC")
	if f.Kind != "" {
		builder = builder.Where(sq.Eq{"t.kind": f.Kind.String()})
	}
	if f.AuthorID != 0 {
		builder = builder.Where(sq.Eq{"t.author_id": f.AuthorID})
	}
	if f.Limit > 0 {
		builder = builder.Limit(f.Limit)
	}
	if f.Offset > 0 {
		builder = builder.Offset(f.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tender list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	var tenders []*domain.Tender
	for rows.Next() {
		t, _, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenders: %w", err)
	}

	for _, t := range tenders {
		if err := r.loadSectors(ctx, q, t); err != nil {
			return nil, err
		}
	}
	return tenders, nil
}

func (r *Repo) loadSectors(ctx context.Context, q postgres.Querier, t *domain.Tender) error {
	rows, err := q.Query(ctx, `
SELECT s.id, s.group_id, s.name, s.slug, s.created_at, s.updated_at
FROM sectors s
JOIN tender_sectors ts ON ts.sector_id = s.id
WHERE ts.tender_id = $1
ORDER BY s.slug`, t.ID)
	if err != nil {
		return fmt.Errorf("load tender sectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Sector
		if err := rows.Scan(&s.ID, &s.GroupID, &s.Name, &s.Slug, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return fmt.Errorf("scan tender sector: %w", err)
		}
		t.Sectors = append(t.Sectors, s)
	}
	return rows.Err()
}

func (r *Repo) loadLocation(ctx context.Context, q postgres.Querier, t *domain.Tender, locationID int64) error {
	var (
		p        domain.Perimeter
		lat, lon *float64
	)
	err := q.QueryRow(ctx, `
SELECT id, name, slug, kind, insee_code, department_code, region_code, post_codes, latitude, longitude, created_at, updated_at
FROM perimeters WHERE id = $1`, locationID).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Kind, &p.InseeCode, &p.DepartmentCode, &p.RegionCode,
		&p.PostCodes, &lat, &lon, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "perimeter", locationID)
	}
	if lat != nil && lon != nil {
		p.Coords = &domain.Point{Latitude: *lat, Longitude: *lon}
	}
	t.Location = &p
	return nil
}

func scanTender(row pgx.Row) (*domain.Tender, *int64, error) {
	var (
		t             domain.Tender
		prestaTypes   []string
		siaeKinds     []string
		responseKinds []string
		locationID    *int64
	)

	err := row.Scan(
		&t.ID, &t.Slug, &t.Kind, &t.Title, &prestaTypes, &locationID, &t.IsCountryArea,
		&t.Description, &t.StartWorkingDate, &t.ExternalLink, &t.Constraints, &t.Amount, &t.WhyAmountIsBlank,
		&t.AcceptShareAmount, &t.AcceptCocontracting, &siaeKinds,
		&t.ContactFirstName, &t.ContactLastName, &t.ContactEmail, &t.ContactPhone, &t.ContactCompanyName,
		&responseKinds, &t.DeadlineDate, &t.ExtraData, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	t.PrestaTypes = enumsFromStrings[domain.PrestaType](prestaTypes)
	t.SiaeKind = enumsFromStrings[domain.SiaeKind](siaeKinds)
	t.ResponseKind = enumsFromStrings[domain.ResponseKind](responseKinds)
	return &t, locationID, nil
}

func enumsToStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func enumsFromStrings[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
