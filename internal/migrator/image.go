package migrator

import (
	"database/sql"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// ImageErrorCounts tallies the galleries and images the migration could not
// attach to an enterprise. These are expected data-quality issues, reported
// at the end of the phase rather than failing it.
type ImageErrorCounts struct {
	ListingWithoutImage int
	UserNotFound        int
	UserNoSiae          int
	UserMultipleSiae    int
}

// Total returns the number of skipped galleries/images.
func (c ImageErrorCounts) Total() int {
	return c.ListingWithoutImage + c.UserNotFound + c.UserNoSiae + c.UserMultipleSiae
}

// gallery is one legacy listing with its localized title and images attached.
type gallery struct {
	ListingID   int64
	UserID      int64
	Name        string
	Description string
	Images      []legacy.ListingImageRow
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// buildGalleries joins listing, listing_translation and listing_image rows in
// memory, keyed by listing id. Translation rows for unknown listings are
// ignored; when a listing has several locales the last row wins, matching the
// legacy export order.
func buildGalleries(listings []legacy.ListingRow, translations []legacy.ListingTranslationRow, images []legacy.ListingImageRow) []gallery {
	galleries := make([]gallery, len(listings))
	index := make(map[int64]int, len(listings))
	for i, l := range listings {
		galleries[i] = gallery{ListingID: l.ID, UserID: l.UserID, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
		index[l.ID] = i
	}

	for _, tr := range translations {
		i, ok := index[tr.TranslatableID]
		if !ok {
			continue
		}
		galleries[i].Name = tr.Title.String
		galleries[i].Description = tr.Description.String
	}

	for _, img := range images {
		i, ok := index[img.ListingID]
		if !ok {
			continue
		}
		galleries[i].Images = append(galleries[i].Images, img)
	}

	return galleries
}

// imagesForGallery converts one gallery into SiaeImage records owned by the
// given enterprise.
func imagesForGallery(g gallery, siaeID int64) []*domain.SiaeImage {
	out := make([]*domain.SiaeImage, 0, len(g.Images))
	for _, img := range g.Images {
		listingID := g.ListingID
		out = append(out, &domain.SiaeImage{
			SiaeID:      siaeID,
			Name:        g.Name,
			Description: g.Description,
			ImageName:   img.Name,
			Order:       img.Position,
			C4ListingID: &listingID,
			CreatedAt:   timeOrZero(g.CreatedAt),
			UpdatedAt:   timeOrZero(g.UpdatedAt),
		})
	}
	return out
}
