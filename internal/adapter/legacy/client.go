// Package legacy reads the Symfony-era MariaDB database the marketplace
// migrates from. The client is strictly read-only: every method is a SELECT
// with an explicit column list.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/lemarche/marketplace-backend/internal/config"
)

// Client wraps a connection to the legacy database.
type Client struct {
	db *sql.DB
}

// Open connects to the legacy database and verifies the connection.
func Open(ctx context.Context, cfg config.LegacyDBConfig) (*Client, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Loc = time.UTC

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open legacy db: %w", err)
	}

	// The migration is a single sequential pass; one connection is enough
	// and keeps the load on the legacy host minimal.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping legacy db: %w", err)
	}
	return &Client{db: db}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// Directories returns all enterprises, active ones first.
func (c *Client) Directories(ctx context.Context) ([]DirectoryRow, error) {
	const query = `
SELECT id, name, brand, siret, naf, kind, nature, presta_type,
       website, email, phone, address, city, post_code, department, region,
       latitude, longitude, pol_range, geo_range, description,
       is_active, is_delisted, is_first_page, is_qpv,
       c4_id, c1_source, createdAt, updatedAt
FROM directory
ORDER BY is_active DESC`

	return queryRows(ctx, c.db, "directory", query, func(rows *sql.Rows) (DirectoryRow, error) {
		var r DirectoryRow
		err := rows.Scan(
			&r.ID, &r.Name, &r.Brand, &r.Siret, &r.Naf, &r.Kind, &r.Nature, &r.PrestaType,
			&r.Website, &r.Email, &r.Phone, &r.Address, &r.City, &r.PostCode, &r.Department, &r.Region,
			&r.Latitude, &r.Longitude, &r.PolRange, &r.GeoRange, &r.Description,
			&r.IsActive, &r.IsDelisted, &r.IsFirstPage, &r.IsQPV,
			&r.C4ID, &r.C1Source, &r.CreatedAt, &r.UpdatedAt,
		)
		return r, err
	})
}

// DirectoryImages returns all enterprise logo rows.
func (c *Client) DirectoryImages(ctx context.Context) ([]DirectoryImageRow, error) {
	const query = `SELECT id, directory_id, name, position FROM directory_image`

	return queryRows(ctx, c.db, "directory_image", query, func(rows *sql.Rows) (DirectoryImageRow, error) {
		var r DirectoryImageRow
		err := rows.Scan(&r.ID, &r.DirectoryID, &r.Name, &r.Position)
		return r, err
	})
}

// Networks returns all networks. The legacy accronym and siret columns are
// always empty and are not read.
func (c *Client) Networks(ctx context.Context) ([]NetworkRow, error) {
	const query = `SELECT id, name, brand, website, createdAt, updatedAt FROM network`

	return queryRows(ctx, c.db, "network", query, func(rows *sql.Rows) (NetworkRow, error) {
		var r NetworkRow
		err := rows.Scan(&r.ID, &r.Name, &r.Brand, &r.Website, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	})
}

// DirectoryNetworks returns all enterprise-network links.
func (c *Client) DirectoryNetworks(ctx context.Context) ([]DirectoryNetworkRow, error) {
	const query = `SELECT directory_id, network_id FROM directory_network`

	return queryRows(ctx, c.db, "directory_network", query, func(rows *sql.Rows) (DirectoryNetworkRow, error) {
		var r DirectoryNetworkRow
		err := rows.Scan(&r.DirectoryID, &r.NetworkID)
		return r, err
	})
}

// ListingCategories returns the raw sector hierarchy rows.
func (c *Client) ListingCategories(ctx context.Context) ([]ListingCategoryRow, error) {
	const query = `SELECT id, parent_id FROM listing_category`

	return queryRows(ctx, c.db, "listing_category", query, func(rows *sql.Rows) (ListingCategoryRow, error) {
		var r ListingCategoryRow
		err := rows.Scan(&r.ID, &r.ParentID)
		return r, err
	})
}

// ListingCategoryTranslations returns localized names for categories.
func (c *Client) ListingCategoryTranslations(ctx context.Context) ([]ListingCategoryTranslationRow, error) {
	const query = `SELECT translatable_id, locale, name, slug FROM listing_category_translation`

	return queryRows(ctx, c.db, "listing_category_translation", query,
		func(rows *sql.Rows) (ListingCategoryTranslationRow, error) {
			var r ListingCategoryTranslationRow
			err := rows.Scan(&r.TranslatableID, &r.Locale, &r.Name, &r.Slug)
			return r, err
		})
}

// DirectoryListingCategories returns all enterprise-sector links.
func (c *Client) DirectoryListingCategories(ctx context.Context) ([]DirectoryListingCategoryRow, error) {
	const query = `SELECT directory_id, listing_category_id FROM directory_listing_category`

	return queryRows(ctx, c.db, "directory_listing_category", query,
		func(rows *sql.Rows) (DirectoryListingCategoryRow, error) {
			var r DirectoryListingCategoryRow
			err := rows.Scan(&r.DirectoryID, &r.ListingCategoryID)
			return r, err
		})
}

// DirectoryOffers returns all enterprise offers.
func (c *Client) DirectoryOffers(ctx context.Context) ([]DirectoryOfferRow, error) {
	const query = `SELECT id, directory_id, name, description, createdAt, updatedAt FROM directory_offer`

	return queryRows(ctx, c.db, "directory_offer", query, func(rows *sql.Rows) (DirectoryOfferRow, error) {
		var r DirectoryOfferRow
		err := rows.Scan(&r.ID, &r.DirectoryID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	})
}

// DirectoryLabels returns all enterprise labels.
func (c *Client) DirectoryLabels(ctx context.Context) ([]DirectoryLabelRow, error) {
	const query = `SELECT id, directory_id, name, createdAt, updatedAt FROM directory_label`

	return queryRows(ctx, c.db, "directory_label", query, func(rows *sql.Rows) (DirectoryLabelRow, error) {
		var r DirectoryLabelRow
		err := rows.Scan(&r.ID, &r.DirectoryID, &r.Name, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	})
}

// DirectoryClientImages returns all client reference logos.
func (c *Client) DirectoryClientImages(ctx context.Context) ([]DirectoryClientImageRow, error) {
	const query = `SELECT id, directory_id, name, description, position, createdAt, updatedAt FROM directory_client_image`

	return queryRows(ctx, c.db, "directory_client_image", query,
		func(rows *sql.Rows) (DirectoryClientImageRow, error) {
			var r DirectoryClientImageRow
			err := rows.Scan(&r.ID, &r.DirectoryID, &r.Name, &r.Description, &r.Position, &r.CreatedAt, &r.UpdatedAt)
			return r, err
		})
}

// Listings returns all photo galleries.
func (c *Client) Listings(ctx context.Context) ([]ListingRow, error) {
	const query = `SELECT id, user_id, createdAt, updatedAt FROM listing`

	return queryRows(ctx, c.db, "listing", query, func(rows *sql.Rows) (ListingRow, error) {
		var r ListingRow
		err := rows.Scan(&r.ID, &r.UserID, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	})
}

// ListingTranslations returns the localized listing titles.
func (c *Client) ListingTranslations(ctx context.Context) ([]ListingTranslationRow, error) {
	const query = `SELECT translatable_id, locale, title, description FROM listing_translation`

	return queryRows(ctx, c.db, "listing_translation", query,
		func(rows *sql.Rows) (ListingTranslationRow, error) {
			var r ListingTranslationRow
			err := rows.Scan(&r.TranslatableID, &r.Locale, &r.Title, &r.Description)
			return r, err
		})
}

// ListingImages returns all gallery images.
func (c *Client) ListingImages(ctx context.Context) ([]ListingImageRow, error) {
	const query = `SELECT id, listing_id, name, position FROM listing_image`

	return queryRows(ctx, c.db, "listing_image", query, func(rows *sql.Rows) (ListingImageRow, error) {
		var r ListingImageRow
		err := rows.Scan(&r.ID, &r.ListingID, &r.Name, &r.Position)
		return r, err
	})
}

// Users returns all accounts.
func (c *Client) Users(ctx context.Context) ([]UserRow, error) {
	const query = `
SELECT id, email, first_name, last_name, phone, company_name,
       enabled, person_type, roles, website, siret, naf,
       phone_prefix, time_zone, phone_verified, email_verified, id_card_verified,
       offers_for_pro_sector, quote_promise,
       last_login, createdAt, updatedAt
FROM user`

	return queryRows(ctx, c.db, "user", query, func(rows *sql.Rows) (UserRow, error) {
		var r UserRow
		err := rows.Scan(
			&r.ID, &r.Email, &r.FirstName, &r.LastName, &r.Phone, &r.CompanyName,
			&r.Enabled, &r.PersonType, &r.Roles, &r.Website, &r.Siret, &r.Naf,
			&r.PhonePrefix, &r.TimeZone, &r.PhoneVerified, &r.EmailVerified, &r.IDCardVerified,
			&r.OffersForProSector, &r.QuotePromise,
			&r.LastLogin, &r.CreatedAt, &r.UpdatedAt,
		)
		return r, err
	})
}

// UserImages returns all avatar rows.
func (c *Client) UserImages(ctx context.Context) ([]UserImageRow, error) {
	const query = `SELECT id, user_id, name, position FROM user_image`

	return queryRows(ctx, c.db, "user_image", query, func(rows *sql.Rows) (UserImageRow, error) {
		var r UserImageRow
		err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Position)
		return r, err
	})
}

// DirectoryUsers returns all enterprise-user links.
func (c *Client) DirectoryUsers(ctx context.Context) ([]DirectoryUserRow, error) {
	const query = `SELECT directory_id, user_id FROM directory_user`

	return queryRows(ctx, c.db, "directory_user", query, func(rows *sql.Rows) (DirectoryUserRow, error) {
		var r DirectoryUserRow
		err := rows.Scan(&r.DirectoryID, &r.UserID)
		return r, err
	})
}

func queryRows[T any](ctx context.Context, db *sql.DB, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
