// Package network implements the Network repository using PostgreSQL.
package network

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides network persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new network repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new network. A non-zero ID is preserved (the migration
// keeps legacy primary keys).
func (r *Repo) Create(ctx context.Context, n *domain.Network) (*domain.Network, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	createdAt, updatedAt := n.CreatedAt, n.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	columns := []string{"name", "slug", "brand", "website", "created_at", "updated_at"}
	values := []any{n.Name, n.Slug, n.Brand, n.Website, createdAt, updatedAt}
	if n.ID != 0 {
		columns = append([]string{"id"}, columns...)
		values = append([]any{n.ID}, values...)
	}

	sqlStr, args, err := psql.Insert("networks").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("create network: build query: %w", err)
	}

	created := *n
	created.CreatedAt, created.UpdatedAt = createdAt, updatedAt
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&created.ID); err != nil {
		return nil, postgres.MapError(err, "network", n.ID)
	}
	return &created, nil
}

// DeleteAll removes every network.
func (r *Repo) DeleteAll(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "DELETE FROM networks"); err != nil {
		return fmt.Errorf("delete all networks: %w", err)
	}
	return nil
}

// ResetIDSequence realigns the id sequence after inserts with explicit
// legacy ids.
func (r *Repo) ResetIDSequence(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		"SELECT setval(pg_get_serial_sequence('networks', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM networks"); err != nil {
		return fmt.Errorf("reset networks id sequence: %w", err)
	}
	return nil
}

// Count returns the number of networks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM networks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count networks: %w", err)
	}
	return n, nil
}
