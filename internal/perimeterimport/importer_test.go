package perimeterimport

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

type storeMock struct {
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Perimeter, error)
	CreateFunc    func(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error)
	ListFunc      func(ctx context.Context, kind domain.PerimeterKind) ([]*domain.Perimeter, error)
}

func (m *storeMock) GetBySlug(ctx context.Context, slug string) (*domain.Perimeter, error) {
	if m.GetBySlugFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetBySlugFunc(ctx, slug)
}

func (m *storeMock) Create(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error) {
	if m.CreateFunc == nil {
		return p, nil
	}
	return m.CreateFunc(ctx, p)
}

func (m *storeMock) List(ctx context.Context, kind domain.PerimeterKind) ([]*domain.Perimeter, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx, kind)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingStore collects created perimeters and serves them back by slug.
func recordingStore() (*storeMock, *[]*domain.Perimeter) {
	var created []*domain.Perimeter
	store := &storeMock{
		GetBySlugFunc: func(ctx context.Context, slug string) (*domain.Perimeter, error) {
			for _, p := range created {
				if p.Slug == slug {
					return p, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error) {
			created = append(created, p)
			return p, nil
		},
	}
	return store, &created
}

func TestImportRegions(t *testing.T) {
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	input := `[
		{"nom": "Auvergne-Rhône-Alpes", "code": "84"},
		{"nom": "Bretagne", "code": "53"}
	]`
	result, err := im.ImportRegions(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	// the overseas pseudo-region is always appended
	assert.Equal(t, Result{Created: 3}, result)
	require.Len(t, *created, 3)

	aura := (*created)[0]
	assert.Equal(t, "Auvergne-Rhône-Alpes", aura.Name)
	assert.Equal(t, "auvergne-rhone-alpes", aura.Slug)
	assert.Equal(t, domain.PerimeterKindRegion, aura.Kind)
	assert.Equal(t, "R84", aura.InseeCode, "region codes carry the R prefix")
	assert.Equal(t, "84", aura.RegionCode)

	outremer := (*created)[2]
	assert.Equal(t, "Collectivités d'outre-mer", outremer.Name)
	assert.Equal(t, "R97", outremer.InseeCode)
}

func TestImportRegions_ExistingSkipped(t *testing.T) {
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	input := strings.NewReader(`[{"nom": "Bretagne", "code": "53"}]`)
	_, err := im.ImportRegions(context.Background(), input)
	require.NoError(t, err)

	// rerun with the same input
	result, err := im.ImportRegions(context.Background(), strings.NewReader(`[{"nom": "Bretagne", "code": "53"}]`))
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, result)
	assert.Len(t, *created, 2)
}

func TestImportRegions_BadJSON(t *testing.T) {
	im := New(discardLogger(), &storeMock{}, false)
	_, err := im.ImportRegions(context.Background(), strings.NewReader(`{"nom":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode regions")
}

func TestImportDepartments(t *testing.T) {
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	input := `[{"nom": "Finistère", "code": "29", "codeRegion": "53"}]`
	result, err := im.ImportDepartments(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	// one from the file, eight overseas collectivities the export omits
	assert.Equal(t, Result{Created: 9}, result)

	finistere := (*created)[0]
	assert.Equal(t, "finistere", finistere.Slug)
	assert.Equal(t, domain.PerimeterKindDepartment, finistere.Kind)
	assert.Equal(t, "29", finistere.InseeCode)
	assert.Equal(t, "53", finistere.RegionCode)

	spm := (*created)[1]
	assert.Equal(t, "Saint-Pierre-et-Miquelon", spm.Name)
	assert.Equal(t, "975", spm.InseeCode)
	assert.Equal(t, "97", spm.RegionCode)
}

func TestImportDepartments_NameSharedWithRegion(t *testing.T) {
	// Guadeloupe is both a region (R01) and a department (971); the
	// department gets its INSEE code appended to the slug.
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	_, err := im.ImportRegions(context.Background(), strings.NewReader(`[{"nom": "Guadeloupe", "code": "01"}]`))
	require.NoError(t, err)

	result, err := im.ImportDepartments(context.Background(),
		strings.NewReader(`[{"nom": "Guadeloupe", "code": "971", "codeRegion": "01"}]`))
	require.NoError(t, err)
	assert.Equal(t, 9, result.Created)
	assert.Zero(t, result.Errors)

	var dept *domain.Perimeter
	for _, p := range *created {
		if p.Kind == domain.PerimeterKindDepartment && p.InseeCode == "971" {
			dept = p
		}
	}
	require.NotNil(t, dept)
	assert.Equal(t, "guadeloupe-971", dept.Slug)
}

func TestImportCommunes(t *testing.T) {
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	input := `[{
		"nom": "Quimper",
		"code": "29232",
		"codeDepartement": "29",
		"codeRegion": "53",
		"codesPostaux": ["29000"],
		"centre": {"type": "Point", "coordinates": [-4.1, 47.99]},
		"population": 63283
	}]`
	result, err := im.ImportCommunes(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1}, result)

	city := (*created)[0]
	assert.Equal(t, "quimper-29", city.Slug, "city slugs carry the department code")
	assert.Equal(t, domain.PerimeterKindCity, city.Kind)
	assert.Equal(t, "29232", city.InseeCode)
	assert.Equal(t, "29", city.DepartmentCode)
	assert.Equal(t, []string{"29000"}, city.PostCodes)
	require.NotNil(t, city.Coords)
	assert.InDelta(t, 47.99, city.Coords.Latitude, 1e-9)
	assert.InDelta(t, -4.1, city.Coords.Longitude, 1e-9)
}

func TestImportCommunes_NoCentre(t *testing.T) {
	store, created := recordingStore()
	im := New(discardLogger(), store, false)

	input := `[{"nom": "Île de Sein", "code": "29083", "codeDepartement": "29", "codeRegion": "53"}]`
	_, err := im.ImportCommunes(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, *created, 1)
	assert.Nil(t, (*created)[0].Coords)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	store := &storeMock{
		GetBySlugFunc: func(ctx context.Context, slug string) (*domain.Perimeter, error) {
			t.Error("GetBySlug called during dry run")
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, p *domain.Perimeter) (*domain.Perimeter, error) {
			t.Error("Create called during dry run")
			return p, nil
		},
	}
	im := New(discardLogger(), store, true)

	result, err := im.ImportRegions(context.Background(), strings.NewReader(`[{"nom": "Bretagne", "code": "53"}]`))
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, result)
}

func TestCount(t *testing.T) {
	store := &storeMock{
		ListFunc: func(ctx context.Context, kind domain.PerimeterKind) ([]*domain.Perimeter, error) {
			assert.Equal(t, domain.PerimeterKindRegion, kind)
			return []*domain.Perimeter{{}, {}, {}}, nil
		},
	}
	im := New(discardLogger(), store, false)

	n, err := im.Count(context.Background(), domain.PerimeterKindRegion)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
