// Package tender implements buyer-request operations: creation with
// slug-based sector and location resolution, listing and retrieval.
package tender

import (
	"context"
	"log/slog"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/tender"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

type tenderRepo interface {
	Create(ctx context.Context, t *domain.Tender) (*domain.Tender, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tender, error)
	List(ctx context.Context, f tender.Filter) ([]*domain.Tender, error)
}

type sectorRepo interface {
	GetBySlugs(ctx context.Context, slugs []string) ([]domain.Sector, error)
}

type perimeterRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Perimeter, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultListLimit bounds unpaginated list requests.
const DefaultListLimit = 20

// MaxListLimit bounds explicit page sizes.
const MaxListLimit = 100

// Service provides tender operations.
type Service struct {
	log        *slog.Logger
	tenders    tenderRepo
	sectors    sectorRepo
	perimeters perimeterRepo
	tx         txManager
}

// NewService creates a new tender service.
func NewService(log *slog.Logger, tenders tenderRepo, sectors sectorRepo, perimeters perimeterRepo, tx txManager) *Service {
	return &Service{
		log:        log.With("service", "tender"),
		tenders:    tenders,
		sectors:    sectors,
		perimeters: perimeters,
		tx:         tx,
	}
}
