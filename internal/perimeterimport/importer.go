// Package perimeterimport loads the geographic reference data into the
// perimeters table from the geo.api.gouv.fr JSON exports: regions first,
// then departments, then communes. Every row is get-or-create by slug, so
// reruns only add what is missing.
package perimeterimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

// Store is the destination for imported perimeters.
type Store interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Perimeter, error)
	Create(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error)
	List(ctx context.Context, kind domain.PerimeterKind) ([]*domain.Perimeter, error)
}

// Result holds the outcome of a single import.
type Result struct {
	Created int
	Skipped int
	Errors  int
}

// Importer loads one perimeter kind per call.
type Importer struct {
	log    *slog.Logger
	store  Store
	dryRun bool
}

// New creates an Importer. With dryRun set, imports decode and map the input
// without touching the store.
func New(log *slog.Logger, store Store, dryRun bool) *Importer {
	return &Importer{
		log:    log.With("component", "perimeterimport"),
		store:  store,
		dryRun: dryRun,
	}
}

// regionRow mirrors the geo.api.gouv.fr regions export.
type regionRow struct {
	Name string `json:"nom"`
	Code string `json:"code"`
}

// departmentRow mirrors the geo.api.gouv.fr departements export.
type departmentRow struct {
	Name       string `json:"nom"`
	Code       string `json:"code"`
	RegionCode string `json:"codeRegion"`
}

// communeRow mirrors the geo.api.gouv.fr communes export with the centre
// geometry and post codes fields requested.
type communeRow struct {
	Name           string   `json:"nom"`
	Code           string   `json:"code"`
	DepartmentCode string   `json:"codeDepartement"`
	RegionCode     string   `json:"codeRegion"`
	PostCodes      []string `json:"codesPostaux"`
	Centre         *struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"centre"`
	Population int `json:"population"`
}

// overseasDepartments are collectivities absent from the standard export.
// They all sit under the overseas collectivities region.
var overseasDepartments = []departmentRow{
	{Name: "Saint-Pierre-et-Miquelon", Code: "975", RegionCode: "97"},
	{Name: "Saint-Barthélemy", Code: "977", RegionCode: "97"},
	{Name: "Saint-Martin", Code: "978", RegionCode: "97"},
	{Name: "Terres australes et antarctiques françaises", Code: "984", RegionCode: "97"},
	{Name: "Wallis-et-Futuna", Code: "986", RegionCode: "97"},
	{Name: "Polynésie française", Code: "987", RegionCode: "97"},
	{Name: "Nouvelle-Calédonie", Code: "988", RegionCode: "97"},
	{Name: "Île de Clipperton", Code: "989", RegionCode: "97"},
}

// overseasRegion groups the collectivities above; it has no INSEE code of
// its own, so it carries the pseudo-code R97.
var overseasRegion = regionRow{Name: "Collectivités d'outre-mer", Code: "97"}

// ImportRegions loads the regions export plus the overseas pseudo-region.
// Region INSEE codes are prefixed with R to keep them distinct from the
// two-digit department codes.
func (im *Importer) ImportRegions(ctx context.Context, r io.Reader) (Result, error) {
	var rows []regionRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return Result{}, fmt.Errorf("decode regions: %w", err)
	}
	rows = append(rows, overseasRegion)

	var result Result
	for _, row := range rows {
		im.upsert(ctx, &domain.Perimeter{
			Name:       row.Name,
			Slug:       domain.Slugify(row.Name),
			Kind:       domain.PerimeterKindRegion,
			InseeCode:  "R" + row.Code,
			RegionCode: row.Code,
		}, &result)
	}
	return result, nil
}

// ImportDepartments loads the departements export plus the overseas
// collectivities the export leaves out.
func (im *Importer) ImportDepartments(ctx context.Context, r io.Reader) (Result, error) {
	var rows []departmentRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return Result{}, fmt.Errorf("decode departments: %w", err)
	}
	rows = append(rows, overseasDepartments...)

	var result Result
	for _, row := range rows {
		im.upsert(ctx, &domain.Perimeter{
			Name:       row.Name,
			Slug:       domain.Slugify(row.Name),
			Kind:       domain.PerimeterKindDepartment,
			InseeCode:  row.Code,
			RegionCode: row.RegionCode,
		}, &result)
	}
	return result, nil
}

// ImportCommunes loads the communes export. City slugs carry the department
// code because commune names repeat across departments.
func (im *Importer) ImportCommunes(ctx context.Context, r io.Reader) (Result, error) {
	var rows []communeRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return Result{}, fmt.Errorf("decode communes: %w", err)
	}

	var result Result
	for _, row := range rows {
		p := &domain.Perimeter{
			Name:           row.Name,
			Slug:           domain.Slugify(row.Name) + "-" + row.DepartmentCode,
			Kind:           domain.PerimeterKindCity,
			InseeCode:      row.Code,
			DepartmentCode: row.DepartmentCode,
			RegionCode:     row.RegionCode,
			PostCodes:      row.PostCodes,
		}
		if row.Centre != nil && len(row.Centre.Coordinates) == 2 {
			// GeoJSON order: longitude first.
			pt := domain.NewPoint(row.Centre.Coordinates[0], row.Centre.Coordinates[1])
			p.Coords = &pt
		}
		im.upsert(ctx, p, &result)
	}
	return result, nil
}

// Count returns the number of stored perimeters of the given kind, for the
// before/after totals reported around an import.
func (im *Importer) Count(ctx context.Context, kind domain.PerimeterKind) (int, error) {
	list, err := im.store.List(ctx, kind)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// upsert creates p unless a perimeter with the same slug, kind and INSEE
// code already exists. When the slug is held by a different perimeter (a
// handful of overseas names are both a region and a department), the INSEE
// code is appended to disambiguate.
func (im *Importer) upsert(ctx context.Context, p *domain.Perimeter, result *Result) {
	if im.dryRun {
		result.Skipped++
		return
	}

	slugs := []string{p.Slug, p.Slug + "-" + strings.ToLower(p.InseeCode)}
	for _, slug := range slugs {
		existing, err := im.store.GetBySlug(ctx, slug)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			p.Slug = slug
			if _, err := im.store.Create(ctx, p); err != nil {
				im.log.Warn("perimeter create failed",
					slog.String("slug", slug), slog.String("error", err.Error()))
				result.Errors++
				return
			}
			result.Created++
			return
		case err != nil:
			im.log.Warn("perimeter lookup failed",
				slog.String("slug", slug), slog.String("error", err.Error()))
			result.Errors++
			return
		case existing.Kind == p.Kind && existing.InseeCode == p.InseeCode:
			result.Skipped++
			return
		}
	}

	im.log.Warn("perimeter slug conflict",
		slog.String("slug", p.Slug), slog.String("insee_code", p.InseeCode))
	result.Errors++
}
