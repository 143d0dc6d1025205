//go:build e2e

package e2e_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/testhelper"
)

// TestE2E_Tender_CreateAndFetch creates a tender as an authenticated buyer
// and reads it back through the list and detail endpoints.
func TestE2E_Tender_CreateAndFetch(t *testing.T) {
	ts := setupTestServer(t)

	group := testhelper.SeedSectorGroup(t, ts.Pool)
	sector := testhelper.SeedSector(t, ts.Pool, group.ID)
	perimeter := testhelper.SeedPerimeter(t, ts.Pool)

	payload := ts.registerUser(t)
	token := accessToken(t, payload)

	status, created := ts.postJSON(t, "/api/tenders", map[string]any{
		"kind":          "QUOTE",
		"title":         "Nettoyage de bureaux",
		"sectors":       []string{sector.Slug},
		"presta_types":  []string{"PREST"},
		"location":      perimeter.Slug,
		"description":   "Nettoyage hebdomadaire de 400m2",
		"response_kind": []string{"EMAIL"},
		"deadline_date": "2026-10-31",
	}, token)
	require.Equal(t, http.StatusCreated, status, "create failed: %v", created)

	slug, ok := created["slug"].(string)
	require.True(t, ok)
	assert.Equal(t, "nettoyage-de-bureaux", slug)
	assert.NotNil(t, created["author_id"], "authenticated create must record the author")

	// Detail endpoint round trip.
	status, fetched := ts.getJSON(t, "/api/tenders/"+url.PathEscape(slug), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Nettoyage de bureaux", fetched["title"])
	assert.Equal(t, perimeter.Slug, fetched["location"])

	sectors, ok := fetched["sectors"].([]any)
	require.True(t, ok)
	require.Len(t, sectors, 1)
	assert.Equal(t, sector.Slug, sectors[0])

	// Listing includes it.
	status, list := ts.getJSON(t, "/api/tenders?kind=QUOTE", "")
	require.Equal(t, http.StatusOK, status)
	results, ok := list["results"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, results)
}

// TestE2E_Tender_AnonymousCreate verifies tenders can be posted without a
// token; the author stays empty.
func TestE2E_Tender_AnonymousCreate(t *testing.T) {
	ts := setupTestServer(t)

	group := testhelper.SeedSectorGroup(t, ts.Pool)
	sector := testhelper.SeedSector(t, ts.Pool, group.ID)

	status, created := ts.postJSON(t, "/api/tenders", map[string]any{
		"kind":            "TENDER",
		"title":           "Appel anonyme",
		"sectors":         []string{sector.Slug},
		"is_country_area": true,
		"contact_email":   "acheteur@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, status, "create failed: %v", created)
	assert.Nil(t, created["author_id"])
}

// TestE2E_Tender_UnknownSector verifies an unknown sector slug yields 400
// naming the offending slug.
func TestE2E_Tender_UnknownSector(t *testing.T) {
	ts := setupTestServer(t)

	status, result := ts.postJSON(t, "/api/tenders", map[string]any{
		"kind":            "QUOTE",
		"title":           "Mauvais secteur",
		"sectors":         []string{"does-not-exist"},
		"is_country_area": true,
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, result["error"], "does-not-exist")
}

// TestE2E_Tender_SlugCollision verifies two tenders with the same title
// both get created, the second with a suffixed slug.
func TestE2E_Tender_SlugCollision(t *testing.T) {
	ts := setupTestServer(t)

	group := testhelper.SeedSectorGroup(t, ts.Pool)
	sector := testhelper.SeedSector(t, ts.Pool, group.ID)

	body := map[string]any{
		"kind":            "QUOTE",
		"title":           "Titre identique",
		"sectors":         []string{sector.Slug},
		"is_country_area": true,
	}

	status, first := ts.postJSON(t, "/api/tenders", body, "")
	require.Equal(t, http.StatusCreated, status)

	status, second := ts.postJSON(t, "/api/tenders", body, "")
	require.Equal(t, http.StatusCreated, status, "second create failed: %v", second)

	assert.NotEqual(t, first["slug"], second["slug"])
	assert.Contains(t, second["slug"], "titre-identique")
}

// TestE2E_Tender_NotFound verifies 404 on an unknown slug.
func TestE2E_Tender_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.getJSON(t, "/api/tenders/no-such-tender", "")
	assert.Equal(t, http.StatusNotFound, status)
}
