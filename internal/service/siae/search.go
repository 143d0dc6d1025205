package siae

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// SearchInput narrows the enterprise search. Zero values mean "no
// constraint". PerimeterSlug references a geographic perimeter by slug.
type SearchInput struct {
	Kinds         []domain.SiaeKind
	PrestaType    domain.PrestaType
	PerimeterSlug string
	Limit         uint64
	Offset        uint64
}

// Validate validates the search input.
func (i SearchInput) Validate() error {
	var errs []domain.FieldError

	for _, k := range i.Kinds {
		if !k.IsValid() {
			errs = append(errs, domain.FieldError{Field: "kinds", Message: fmt.Sprintf("unknown kind %q", k)})
			break
		}
	}
	if i.PrestaType != "" && !i.PrestaType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "presta_type", Message: "unknown presta type"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetBySlug returns one active enterprise.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Siae, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	found, err := s.siaes.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("siae.GetBySlug: %w", err)
	}
	return found, nil
}

// Search lists active enterprises matching the filters. With a perimeter the
// geographic narrowing happens in two steps: the repository filters by
// department or region, then city perimeters are refined in memory against
// the city's post codes and each enterprise's custom intervention distance.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]*domain.Siae, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	active := true
	filter := siae.Filter{
		Kinds:      input.Kinds,
		PrestaType: input.PrestaType,
		IsActive:   &active,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultSearchLimit
	}
	if filter.Limit > MaxSearchLimit {
		filter.Limit = MaxSearchLimit
	}

	if input.PerimeterSlug == "" {
		out, err := s.siaes.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("siae.Search: %w", err)
		}
		return out, nil
	}

	perimeter, err := s.perimeters.GetBySlug(ctx, input.PerimeterSlug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("perimeter", fmt.Sprintf("unknown perimeter %q", input.PerimeterSlug))
	}
	if err != nil {
		return nil, fmt.Errorf("siae.Search resolve perimeter: %w", err)
	}

	switch perimeter.Kind {
	case domain.PerimeterKindRegion:
		filter.Region = perimeter.Name
	case domain.PerimeterKindDepartment:
		filter.Department = perimeter.InseeCode
	case domain.PerimeterKindCity:
		// fetch the whole department, refine below
		filter.Department = perimeter.DepartmentCode
		filter.Limit = 0
		filter.Offset = 0
	}

	out, err := s.siaes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("siae.Search: %w", err)
	}

	if perimeter.Kind == domain.PerimeterKindCity {
		out = filterByCity(out, perimeter)
		out = paginate(out, input.Offset, input.Limit)
	}
	return out, nil
}

// filterByCity keeps enterprises located in one of the city's post codes, or
// whose custom intervention range covers the city center.
func filterByCity(siaes []*domain.Siae, city *domain.Perimeter) []*domain.Siae {
	var out []*domain.Siae
	for _, s := range siaes {
		if slices.Contains(city.PostCodes, s.PostCode) {
			out = append(out, s)
			continue
		}
		if s.GeoRange == domain.GeoRangeCustom && s.GeoRangeCustomDistance != nil &&
			s.Coords != nil && city.Coords != nil &&
			s.Coords.DistanceKm(*city.Coords) <= float64(*s.GeoRangeCustomDistance) {
			out = append(out, s)
		}
	}
	return out
}

func paginate(siaes []*domain.Siae, offset, limit uint64) []*domain.Siae {
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	if offset >= uint64(len(siaes)) {
		return nil
	}
	siaes = siaes[offset:]
	if uint64(len(siaes)) > limit {
		siaes = siaes[:limit]
	}
	return siaes
}
