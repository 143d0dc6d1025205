package tender

import (
	"context"
	"errors"
	"fmt"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/tender"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// GetBySlug returns one tender with its sectors and location loaded.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Tender, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	t, err := s.tenders.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tender.GetBySlug: %w", err)
	}
	return t, nil
}

// List returns tenders newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Tender, error) {
	if input.Kind != "" && !input.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown kind")
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	tenders, err := s.tenders.List(ctx, tender.Filter{
		Kind:     input.Kind,
		AuthorID: input.AuthorID,
		Limit:    limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("tender.List: %w", err)
	}
	return tenders, nil
}
