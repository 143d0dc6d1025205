// Package siae implements enterprise directory operations: retrieval and
// search with kind, presta-type and geographic filters.
package siae

import (
	"context"
	"log/slog"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

type siaeRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Siae, error)
	List(ctx context.Context, f siae.Filter) ([]*domain.Siae, error)
}

type perimeterRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Perimeter, error)
}

// DefaultSearchLimit bounds unpaginated search requests.
const DefaultSearchLimit = 20

// MaxSearchLimit bounds explicit page sizes.
const MaxSearchLimit = 100

// Service provides enterprise directory operations.
type Service struct {
	log        *slog.Logger
	siaes      siaeRepo
	perimeters perimeterRepo
}

// NewService creates a new siae service.
func NewService(log *slog.Logger, siaes siaeRepo, perimeters perimeterRepo) *Service {
	return &Service{
		log:        log.With("service", "siae"),
		siaes:      siaes,
		perimeters: perimeters,
	}
}
