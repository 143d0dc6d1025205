// Package sector implements the Sector and SectorGroup repositories using
// PostgreSQL. Sector primary keys come from the legacy category table, so
// inserts always carry explicit ids.
package sector

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// Repo provides sector persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sector repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateGroup inserts a sector group with an explicit id.
func (r *Repo) CreateGroup(ctx context.Context, g *domain.SectorGroup) (*domain.SectorGroup, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	created := *g
	created.CreatedAt, created.UpdatedAt = now, now

	_, err := q.Exec(ctx, `
INSERT INTO sector_groups (id, name, slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Name, g.Slug, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "sector_group", g.ID)
	}
	return &created, nil
}

// CreateSector inserts a sector with an explicit id. A slug collision
// surfaces as domain.ErrAlreadyExists; callers may retry with a
// disambiguated slug.
func (r *Repo) CreateSector(ctx context.Context, s *domain.Sector) (*domain.Sector, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	created := *s
	created.CreatedAt, created.UpdatedAt = now, now

	_, err := q.Exec(ctx, `
INSERT INTO sectors (id, group_id, name, slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.GroupID, s.Name, s.Slug, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "sector", s.ID)
	}
	return &created, nil
}

// GetBySlugs returns the sectors matching the given slugs, in slug order.
// A missing slug is not an error; callers compare lengths when they need
// all-or-nothing resolution.
func (r *Repo) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Sector, error) {
	if len(slugs) == 0 {
		return []domain.Sector{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT id, group_id, name, slug, created_at, updated_at
FROM sectors
WHERE slug = ANY($1)
ORDER BY slug`, slugs)
	if err != nil {
		return nil, fmt.Errorf("sectors by slugs: %w", err)
	}
	defer rows.Close()

	return scanSectors(rows)
}

// DeleteAll removes every sector and sector group.
func (r *Repo) DeleteAll(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "DELETE FROM sectors"); err != nil {
		return fmt.Errorf("delete all sectors: %w", err)
	}
	if _, err := q.Exec(ctx, "DELETE FROM sector_groups"); err != nil {
		return fmt.Errorf("delete all sector groups: %w", err)
	}
	return nil
}

// ResetIDSequences realigns the id sequences of both hierarchy tables
// after inserts with explicit legacy ids.
func (r *Repo) ResetIDSequences(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for _, table := range []string{"sector_groups", "sectors"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
			table, table)
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset %s id sequence: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of sectors.
func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM sectors")
}

// CountGroups returns the number of sector groups.
func (r *Repo) CountGroups(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM sector_groups")
}

func (r *Repo) countQuery(ctx context.Context, sqlStr string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, sqlStr).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sectors: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSectors(rows rowScanner) ([]domain.Sector, error) {
	sectors := []domain.Sector{}
	for rows.Next() {
		var s domain.Sector
		if err := rows.Scan(&s.ID, &s.GroupID, &s.Name, &s.Slug, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}
