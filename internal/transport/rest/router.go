package rest

import (
	"net/http"

	"github.com/lemarche/marketplace-backend/internal/transport/middleware"
)

// Handlers groups the REST handlers mounted by the router.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Tender  *TenderHandler
	Siae    *SiaeHandler
	Address *AddressHandler
}

// NewRouter builds the HTTP route table. Authentication is resolved globally
// by the middleware chain wrapping this router; routes that need a user add
// RequireUser themselves.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", middleware.RequireUser()(http.HandlerFunc(h.Auth.Logout)))

	mux.HandleFunc("GET /api/tenders", h.Tender.List)
	mux.HandleFunc("POST /api/tenders", h.Tender.Create)
	mux.HandleFunc("GET /api/tenders/{slug}", h.Tender.Get)

	mux.HandleFunc("GET /api/siaes", h.Siae.Search)
	mux.HandleFunc("GET /api/siaes/{slug}", h.Siae.Get)

	mux.HandleFunc("GET /api/addresses", h.Address.Search)

	return mux
}
