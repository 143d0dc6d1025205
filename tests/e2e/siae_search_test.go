//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/testhelper"
)

// TestE2E_Siae_GetBySlug verifies the enterprise detail endpoint.
func TestE2E_Siae_GetBySlug(t *testing.T) {
	ts := setupTestServer(t)

	siae := testhelper.SeedSiae(t, ts.Pool)

	status, fetched := ts.getJSON(t, "/api/siaes/"+siae.Slug, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, siae.Name, fetched["name"])
	assert.Equal(t, "EI", fetched["kind"])
	assert.Equal(t, true, fetched["is_active"])
}

// TestE2E_Siae_SearchByKind verifies kind filtering.
func TestE2E_Siae_SearchByKind(t *testing.T) {
	ts := setupTestServer(t)

	siae := testhelper.SeedSiae(t, ts.Pool)

	status, list := ts.getJSON(t, "/api/siaes?kind=EI&limit=100", "")
	require.Equal(t, http.StatusOK, status)

	results, ok := list["results"].([]any)
	require.True(t, ok)

	found := false
	for _, raw := range results {
		entry := raw.(map[string]any)
		assert.Equal(t, "EI", entry["kind"])
		if entry["slug"] == siae.Slug {
			found = true
		}
	}
	assert.True(t, found, "expected seeded enterprise in EI results")
}

// TestE2E_Siae_SearchByCityPerimeter verifies the city-perimeter refine:
// a post-code match is returned, an enterprise in another department is not.
func TestE2E_Siae_SearchByCityPerimeter(t *testing.T) {
	ts := setupTestServer(t)

	inCity := testhelper.SeedSiae(t, ts.Pool) // post code 75001, department 75
	perimeter := testhelper.SeedPerimeter(t, ts.Pool)

	status, list := ts.getJSON(t, "/api/siaes?perimeter="+perimeter.Slug+"&limit=100", "")
	require.Equal(t, http.StatusOK, status)

	results, ok := list["results"].([]any)
	require.True(t, ok)

	found := false
	for _, raw := range results {
		entry := raw.(map[string]any)
		if entry["slug"] == inCity.Slug {
			found = true
		}
	}
	assert.True(t, found, "expected post-code match in city search")
}

// TestE2E_Siae_UnknownPerimeter verifies an unknown perimeter slug yields 400.
func TestE2E_Siae_UnknownPerimeter(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.getJSON(t, "/api/siaes?perimeter=atlantis", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

// TestE2E_Siae_NotFound verifies 404 on an unknown slug.
func TestE2E_Siae_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.getJSON(t, "/api/siaes/no-such-siae", "")
	assert.Equal(t, http.StatusNotFound, status)
}
