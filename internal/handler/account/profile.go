package account

import (
	"log/slog"
	"net/http"

	"github.com/optimistlabs/storefront/internal/commerce"
	"github.com/optimistlabs/storefront/internal/form"
	"github.com/optimistlabs/storefront/internal/middleware"
	"github.com/optimistlabs/storefront/internal/notify"
	"github.com/optimistlabs/storefront/internal/service"
)

// ProfileHandler handles the personal-info form.
type ProfileHandler struct {
	svc    service.AccountService
	client commerce.Client
	flash  *notify.Flash
	locale form.Locale
	logger *slog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc service.AccountService, client commerce.Client, flash *notify.Flash, locale form.Locale) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		client: client,
		flash:  flash,
		locale: locale,
		logger: slog.Default().With("handler", "profile"),
	}
}

// profileRequest is the JSON body for profile updates. Every field arrives
// as the raw string the user typed; validation happens in the form engine.
type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Show handles GET /account/profile
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	customer, err := h.client.RefreshCustomer(ctx, token)
	if err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: customer, Notifications: h.flash.Drain()})
}

// Update handles PUT /account/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	var req profileRequest
	if err := readJSON(r, &req); err != nil {
		middleware.GetLogger(ctx, h.logger).Error("failed to parse body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	f := form.New(form.ProfileSchema(h.locale), map[string]string{
		form.FieldFirstName: req.FirstName,
		form.FieldLastName:  req.LastName,
		form.FieldEmail:     req.Email,
		form.FieldPhone:     req.Phone,
	})

	customer, err := h.svc.SubmitProfile(ctx, token, f)
	if err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: customer, Notifications: h.flash.Drain()})
}
