package siae

import (
	"context"
	"fmt"
	"time"

	postgres "github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// One-to-many rows hanging off an enterprise: offers, labels, client
// references and gallery images. They are written by the migration and read
// through the enterprise detail endpoints.

// CreateOffer inserts an enterprise offer.
func (r *Repo) CreateOffer(ctx context.Context, o *domain.SiaeOffer) (*domain.SiaeOffer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *o
	fillTimes(&created.CreatedAt, &created.UpdatedAt)

	err := q.QueryRow(ctx, `
INSERT INTO siae_offers (siae_id, name, description, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		o.SiaeID, o.Name, o.Description, o.Source, created.CreatedAt, created.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "siae_offer", o.SiaeID)
	}
	return &created, nil
}

// CreateLabel inserts an enterprise label.
func (r *Repo) CreateLabel(ctx context.Context, l *domain.SiaeLabel) (*domain.SiaeLabel, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *l
	fillTimes(&created.CreatedAt, &created.UpdatedAt)

	err := q.QueryRow(ctx, `
INSERT INTO siae_labels (siae_id, name, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`,
		l.SiaeID, l.Name, created.CreatedAt, created.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "siae_label", l.SiaeID)
	}
	return &created, nil
}

// CreateClientReference inserts a client reference logo.
func (r *Repo) CreateClientReference(ctx context.Context, c *domain.SiaeClientReference) (*domain.SiaeClientReference, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *c
	fillTimes(&created.CreatedAt, &created.UpdatedAt)

	err := q.QueryRow(ctx, `
INSERT INTO siae_client_references (siae_id, name, image_name, "order", created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		c.SiaeID, c.Name, c.ImageName, c.Order, created.CreatedAt, created.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "siae_client_reference", c.SiaeID)
	}
	return &created, nil
}

// CreateImage inserts a gallery image.
func (r *Repo) CreateImage(ctx context.Context, img *domain.SiaeImage) (*domain.SiaeImage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *img
	fillTimes(&created.CreatedAt, &created.UpdatedAt)

	err := q.QueryRow(ctx, `
INSERT INTO siae_images (siae_id, name, description, image_name, "order", c4_listing_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		img.SiaeID, img.Name, img.Description, img.ImageName, img.Order, img.C4ListingID,
		created.CreatedAt, created.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, "siae_image", img.SiaeID)
	}
	return &created, nil
}

// DeleteAllOffers clears the siae_offers table.
func (r *Repo) DeleteAllOffers(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_offers")
}

// DeleteAllLabels clears the siae_labels table.
func (r *Repo) DeleteAllLabels(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_labels")
}

// DeleteAllClientReferences clears the siae_client_references table.
func (r *Repo) DeleteAllClientReferences(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_client_references")
}

// DeleteAllImages clears the siae_images table.
func (r *Repo) DeleteAllImages(ctx context.Context) error {
	return r.deleteLinks(ctx, "siae_images")
}

// CountOffers returns the number of offers.
func (r *Repo) CountOffers(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_offers")
}

// CountLabels returns the number of labels.
func (r *Repo) CountLabels(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_labels")
}

// CountClientReferences returns the number of client references.
func (r *Repo) CountClientReferences(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_client_references")
}

// CountImages returns the number of gallery images.
func (r *Repo) CountImages(ctx context.Context) (int, error) {
	return r.countQuery(ctx, "SELECT COUNT(*) FROM siae_images")
}

// ListOffers returns all offers of one enterprise.
func (r *Repo) ListOffers(ctx context.Context, siaeID int64) ([]domain.SiaeOffer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT id, siae_id, name, description, source, created_at, updated_at
FROM siae_offers WHERE siae_id = $1 ORDER BY id`, siaeID)
	if err != nil {
		return nil, fmt.Errorf("list siae offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.SiaeOffer
	for rows.Next() {
		var o domain.SiaeOffer
		if err := rows.Scan(&o.ID, &o.SiaeID, &o.Name, &o.Description, &o.Source, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list siae offers: scan: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// ListLabels returns all labels of one enterprise.
func (r *Repo) ListLabels(ctx context.Context, siaeID int64) ([]domain.SiaeLabel, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT id, siae_id, name, created_at, updated_at
FROM siae_labels WHERE siae_id = $1 ORDER BY id`, siaeID)
	if err != nil {
		return nil, fmt.Errorf("list siae labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.SiaeLabel
	for rows.Next() {
		var l domain.SiaeLabel
		if err := rows.Scan(&l.ID, &l.SiaeID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list siae labels: scan: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// fillTimes defaults zero timestamps to now, preserving migrated values.
func fillTimes(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
