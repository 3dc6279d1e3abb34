package routes

import (
	"net/http"

	"github.com/optimistlabs/storefront/internal/handler/account"
	"github.com/optimistlabs/storefront/internal/middleware"
	"github.com/optimistlabs/storefront/internal/router"
)

// AccountDeps contains dependencies for the customer account routes.
type AccountDeps struct {
	ProfileHandler *account.ProfileHandler
	AddressHandler *account.AddressHandler
	Metrics        *middleware.Metrics

	// SubmitLimiter throttles the mutation endpoints. Optional; nil skips
	// rate limiting (tests).
	SubmitLimiter *middleware.RateLimiter
}

// RegisterAccountRoutes registers the customer account surface. Every route
// requires a customer access token; the commerce platform validates it.
func RegisterAccountRoutes(r *router.Router, deps AccountDeps) {
	authed := r.Group(middleware.WithAccessToken, middleware.RequireToken)

	// Mutations get a stricter rate limit than reads.
	submit := authed
	if deps.SubmitLimiter != nil {
		submit = authed.Group(deps.SubmitLimiter.Middleware)
	}

	// Profile
	authed.Get("/account/profile", deps.ProfileHandler.Show)
	submit.Put("/account/profile", deps.ProfileHandler.Update)

	// Addresses
	authed.Get("/account/addresses", deps.AddressHandler.List)
	submit.Post("/account/addresses", deps.AddressHandler.Create)
	submit.Put("/account/addresses/{id}", deps.AddressHandler.Update)
	submit.Delete("/account/addresses/{id}", deps.AddressHandler.Delete)

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())
}
