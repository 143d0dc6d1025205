// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// userColumns is the canonical column list for SELECTs, matching scanUser.
const userColumns = `id, email, first_name, last_name, kind, phone, password_hash, api_key,
company_name, image_name, is_active, is_staff, is_superuser,
accept_offers_for_pro_sector, accept_quote_promise,
c4_id, c4_phone_prefix, c4_time_zone, c4_website, c4_siret, c4_naf,
c4_phone_verified, c4_email_verified, c4_id_card_verified,
last_login, created_at, updated_at`

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	return u, nil
}

// GetByAPIKey returns the user owning the given API key.
// API-key auth is temporary, used to trace API usage until a richer auth
// protocol replaces it.
func (r *Repo) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE api_key = $1 AND api_key IS NOT NULL", apiKey)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	return u, nil
}

// GetByLegacyID returns a user by its legacy (c4) id.
func (r *Repo) GetByLegacyID(ctx context.Context, c4ID int64) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE c4_id = $1", c4ID)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", c4ID)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	createdAt, updatedAt := u.CreatedAt, u.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	created := *u
	created.CreatedAt, created.UpdatedAt = createdAt, updatedAt

	err := q.QueryRow(ctx, `
INSERT INTO users (
	email, first_name, last_name, kind, phone, password_hash, api_key,
	company_name, image_name, is_active, is_staff, is_superuser,
	accept_offers_for_pro_sector, accept_quote_promise,
	c4_id, c4_phone_prefix, c4_time_zone, c4_website, c4_siret, c4_naf,
	c4_phone_verified, c4_email_verified, c4_id_card_verified,
	last_login, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7,
	$8, $9, $10, $11, $12,
	$13, $14,
	$15, $16, $17, $18, $19, $20,
	$21, $22, $23,
	$24, $25, $26
) RETURNING id`,
		u.Email, u.FirstName, u.LastName, u.Kind.String(), u.Phone, u.PasswordHash, u.APIKey,
		u.CompanyName, u.ImageName, u.IsActive, u.IsStaff, u.IsSuperuser,
		u.AcceptOffersForProSector, u.AcceptQuotePromise,
		u.C4ID, u.C4PhonePrefix, u.C4TimeZone, u.C4Website, u.C4Siret, u.C4Naf,
		u.C4PhoneVerified, u.C4EmailVerified, u.C4IDCardVerified,
		u.LastLogin, createdAt, updatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	return &created, nil
}

// SetImageNameByLegacyID stores the avatar file name for the user with the
// given legacy id.
func (r *Repo) SetImageNameByLegacyID(ctx context.Context, c4ID int64, imageName string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		"UPDATE users SET image_name = $2, updated_at = now() WHERE c4_id = $1", c4ID, imageName)
	if err != nil {
		return postgres.MapError(err, "user", c4ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", c4ID)
	}
	return nil
}

// DeleteMigrated removes users carried over from the legacy database.
// Users holding an API key are kept: they were created on the new platform.
func (r *Repo) DeleteMigrated(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "DELETE FROM users WHERE api_key IS NULL"); err != nil {
		return fmt.Errorf("delete migrated users: %w", err)
	}
	return nil
}

// Count returns the number of users.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountWithImage returns the number of users with a migrated avatar.
func (r *Repo) CountWithImage(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE image_name IS NOT NULL").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users with image: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Kind, &u.Phone, &u.PasswordHash, &u.APIKey,
		&u.CompanyName, &u.ImageName, &u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&u.AcceptOffersForProSector, &u.AcceptQuotePromise,
		&u.C4ID, &u.C4PhonePrefix, &u.C4TimeZone, &u.C4Website, &u.C4Siret, &u.C4Naf,
		&u.C4PhoneVerified, &u.C4EmailVerified, &u.C4IDCardVerified,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
