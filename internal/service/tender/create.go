package tender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lemarche/marketplace-backend/internal/domain"
	"github.com/lemarche/marketplace-backend/pkg/ctxutil"
)

// slugMaxLen truncates long titles before the uniqueness suffix.
const slugMaxLen = 40

// Create validates the input, resolves sector and location slugs and inserts
// the tender with its sector links in one transaction. A slug collision is
// retried with a short random suffix.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Tender, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	sectors, err := s.resolveSectors(ctx, input.SectorSlugs)
	if err != nil {
		return nil, err
	}

	var location *domain.Perimeter
	if input.LocationSlug != "" {
		location, err = s.perimeters.GetBySlug(ctx, input.LocationSlug)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("location", fmt.Sprintf("unknown perimeter %q", input.LocationSlug))
		}
		if err != nil {
			return nil, fmt.Errorf("tender.Create resolve location: %w", err)
		}
	}

	t := &domain.Tender{
		Kind:          input.Kind,
		Title:         input.Title,
		Sectors:       sectors,
		PrestaTypes:   input.PrestaTypes,
		Location:      location,
		IsCountryArea: input.IsCountryArea,

		Description:         input.Description,
		StartWorkingDate:    input.StartWorkingDate,
		ExternalLink:        input.ExternalLink,
		Constraints:         input.Constraints,
		Amount:              input.Amount,
		WhyAmountIsBlank:    input.WhyAmountIsBlank,
		AcceptShareAmount:   input.AcceptShareAmount,
		AcceptCocontracting: input.AcceptCocontracting,
		SiaeKind:            input.SiaeKind,

		ContactFirstName:   input.ContactFirstName,
		ContactLastName:    input.ContactLastName,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		ContactCompanyName: input.ContactCompanyName,
		ResponseKind:       input.ResponseKind,
		DeadlineDate:       input.DeadlineDate,

		ExtraData: input.ExtraData,
	}

	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		t.AuthorID = &userID
	}

	base := domain.Slugify(t.Title)
	if len(base) > slugMaxLen {
		base = strings.TrimRight(base[:slugMaxLen], "-")
	}

	created, err := s.createWithSlug(ctx, t, base)
	if errors.Is(err, domain.ErrAlreadyExists) {
		created, err = s.createWithSlug(ctx, t, fmt.Sprintf("%s-%s", base, uuid.NewString()[:4]))
	}
	if err != nil {
		return nil, fmt.Errorf("tender.Create: %w", err)
	}

	s.log.InfoContext(ctx, "tender created",
		slog.Int64("tender_id", created.ID),
		slog.String("slug", created.Slug),
		slog.String("kind", created.Kind.String()))

	return created, nil
}

// createWithSlug inserts the tender and its sector links transactionally.
func (s *Service) createWithSlug(ctx context.Context, t *domain.Tender, slug string) (*domain.Tender, error) {
	t.Slug = slug

	var created *domain.Tender
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.tenders.Create(txCtx, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveSectors maps slugs to sectors, rejecting unknown ones.
func (s *Service) resolveSectors(ctx context.Context, slugs []string) ([]domain.Sector, error) {
	sectors, err := s.sectors.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("tender.Create resolve sectors: %w", err)
	}

	if len(sectors) != len(slugs) {
		found := make(map[string]bool, len(sectors))
		for _, sec := range sectors {
			found[sec.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, domain.NewValidationError("sectors", fmt.Sprintf("unknown sector %q", slug))
			}
		}
	}
	return sectors, nil
}
