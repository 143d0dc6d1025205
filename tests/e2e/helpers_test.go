//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/lemarche/marketplace-backend/internal/adapter/geocoding"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	perimeterrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/perimeter"
	sectorrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/sector"
	siaerepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/testhelper"
	tenderrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/tender"
	tokenrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/token"
	userrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/user"
	authpkg "github.com/lemarche/marketplace-backend/internal/auth"
	"github.com/lemarche/marketplace-backend/internal/config"
	"github.com/lemarche/marketplace-backend/internal/domain"
	authsvc "github.com/lemarche/marketplace-backend/internal/service/auth"
	siaesvc "github.com/lemarche/marketplace-backend/internal/service/siae"
	tendersvc "github.com/lemarche/marketplace-backend/internal/service/tender"
	"github.com/lemarche/marketplace-backend/internal/transport/middleware"
	"github.com/lemarche/marketplace-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// setupTestServer builds the full middleware chain and router against a
// containerized PostgreSQL and serves it via httptest.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	authCfg := config.AuthConfig{
		JWTSecret:        "e2e-test-secret",
		JWTIssuer:        "lemarche-test",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		PasswordHashCost: 4,
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	siaes := siaerepo.New(pool)
	sectors := sectorrepo.New(pool)
	perimeters := perimeterrepo.New(pool)
	tenders := tenderrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtManager := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, tokens, jwtManager, authCfg)
	tenderService := tendersvc.NewService(logger, tenders, sectors, perimeters, txm)
	siaeService := siaesvc.NewService(logger, siaes, perimeters)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, "e2e"),
		Auth:    rest.NewAuthHandler(authService, logger),
		Tender:  rest.NewTenderHandler(tenderService, logger),
		Siae:    rest.NewSiaeHandler(siaeService, logger),
		Address: rest.NewAddressHandler(noopGeocoder{}),
	})

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(authService),
	)

	server := httptest.NewServer(chain(router))
	t.Cleanup(server.Close)

	return &testServer{
		URL:    server.URL,
		Client: server.Client(),
		Pool:   pool,
	}
}

// noopGeocoder never resolves anything; the BAN API is not called in E2E.
type noopGeocoder struct{}

func (noopGeocoder) Search(_ context.Context, _, _ string) (*geocoding.Result, error) {
	return nil, nil
}

// postJSON sends a JSON body, with an optional bearer token.
func (ts *testServer) postJSON(t *testing.T, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// getJSON fetches a path, with an optional bearer token.
func (ts *testServer) getJSON(t *testing.T, path string, token string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// registerUser signs up a fresh buyer and returns the full auth payload.
func (ts *testServer) registerUser(t *testing.T) map[string]any {
	t.Helper()

	email := "e2e-" + uuid.NewString()[:8] + "@example.com"
	status, result := ts.postJSON(t, "/api/auth/register", map[string]any{
		"email":      email,
		"password":   "e2e-password-1",
		"first_name": "E2E",
		"last_name":  "User",
		"kind":       "BUYER",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register failed: %v", result)
	return result
}

// seedUserWithAPIKey inserts an active user holding an API key directly
// into the database.
func seedUserWithAPIKey(t *testing.T, ts *testServer) domain.User {
	t.Helper()
	return testhelper.SeedUserWithAPIKey(t, ts.Pool)
}

// accessToken extracts the access token from an auth payload.
func accessToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	token, ok := payload["access_token"].(string)
	require.True(t, ok, "expected access_token in payload")
	require.NotEmpty(t, token)
	return token
}
