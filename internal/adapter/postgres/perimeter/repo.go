// Package perimeter implements the Perimeter repository using PostgreSQL.
package perimeter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

const perimeterColumns = `id, name, slug, kind, insee_code, department_code, region_code,
post_codes, latitude, longitude, created_at, updated_at`

// Repo provides perimeter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new perimeter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetBySlug returns a perimeter by slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Perimeter, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+perimeterColumns+" FROM perimeters WHERE slug = $1", slug)
	p, err := scanPerimeter(row)
	if err != nil {
		return nil, postgres.MapError(err, "perimeter", 0)
	}
	return p, nil
}

// Create inserts a new perimeter.
func (r *Repo) Create(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	created := *p
	created.CreatedAt, created.UpdatedAt = now, now

	var lat, lon *float64
	if p.Coords != nil {
		lat, lon = &p.Coords.Latitude, &p.Coords.Longitude
	}

	err := q.QueryRow(ctx, `
INSERT INTO perimeters (name, slug, kind, insee_code, department_code, region_code, post_codes, latitude, longitude, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`,
		p.Name, p.Slug, p.Kind.String(), p.InseeCode, p.DepartmentCode, p.RegionCode,
		p.PostCodes, lat, lon, now, now,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "perimeter", 0)
	}
	return &created, nil
}

// List returns all perimeters of the given kind, or all of them when kind is
// empty, ordered by slug.
func (r *Repo) List(ctx context.Context, kind domain.PerimeterKind) ([]*domain.Perimeter, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := "SELECT " + perimeterColumns + " FROM perimeters"
	args := []any{}
	if kind != "" {
		query += " WHERE kind = $1"
		args = append(args, kind.String())
	}
	query += " ORDER BY slug"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list perimeters: %w", err)
	}
	defer rows.Close()

	var perimeters []*domain.Perimeter
	for rows.Next() {
		p, err := scanPerimeter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan perimeter: %w", err)
		}
		perimeters = append(perimeters, p)
	}
	return perimeters, rows.Err()
}

func scanPerimeter(row pgx.Row) (*domain.Perimeter, error) {
	var (
		p        domain.Perimeter
		lat, lon *float64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Kind, &p.InseeCode, &p.DepartmentCode, &p.RegionCode,
		&p.PostCodes, &lat, &lon, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		p.Coords = &domain.Point{Latitude: *lat, Longitude: *lon}
	}
	return &p, nil
}
