package account

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/optimistlabs/storefront/internal/commerce"
	"github.com/optimistlabs/storefront/internal/form"
	"github.com/optimistlabs/storefront/internal/middleware"
	"github.com/optimistlabs/storefront/internal/notify"
	"github.com/optimistlabs/storefront/internal/service"
)

// AddressHandler handles address management for customers. Each customer
// session gets its own form arena so only one address row can be in edit at
// a time; a concurrent second submission is rejected instead of racing.
type AddressHandler struct {
	svc    service.AccountService
	client commerce.Client
	flash  *notify.Flash
	locale form.Locale
	logger *slog.Logger

	mu     sync.Mutex
	arenas map[string]*form.Arena
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(svc service.AccountService, client commerce.Client, flash *notify.Flash, locale form.Locale) *AddressHandler {
	return &AddressHandler{
		svc:    svc,
		client: client,
		flash:  flash,
		locale: locale,
		logger: slog.Default().With("handler", "addresses"),
		arenas: make(map[string]*form.Arena),
	}
}

// arenaFor returns the per-session arena, creating it on first use.
func (h *AddressHandler) arenaFor(token string) *form.Arena {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.arenas[token]
	if !ok {
		a = form.NewArena()
		h.arenas[token] = a
	}
	return a
}

// addressRequest is the JSON body for address create/update.
type addressRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

func (r addressRequest) values() map[string]string {
	return map[string]string{
		form.FieldFirstName: r.FirstName,
		form.FieldLastName:  r.LastName,
		form.FieldPhone:     r.Phone,
		form.FieldCompany:   r.Company,
		form.FieldAddress1:  r.Address1,
		form.FieldAddress2:  r.Address2,
		form.FieldCity:      r.City,
		form.FieldProvince:  r.Province,
		form.FieldZip:       r.Zip,
		form.FieldCountry:   r.Country,
	}
}

// List handles GET /account/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	customer, err := h.client.RefreshCustomer(ctx, token)
	if err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: customer.Addresses, Notifications: h.flash.Drain()})
}

// Create handles POST /account/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	var req addressRequest
	if err := readJSON(r, &req); err != nil {
		middleware.GetLogger(ctx, h.logger).Error("failed to parse body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	arena := h.arenaFor(token)
	id, f, err := arena.OpenCreate(form.AddressSchema(h.locale), req.values())
	if err != nil {
		h.editorConflict(w, err)
		return
	}
	defer arena.Close(id)

	address, err := h.svc.CreateAddress(ctx, token, f)
	if err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: address, Notifications: h.flash.Drain()})
}

// Update handles PUT /account/addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	addressID := r.PathValue("id")
	if addressID == "" {
		http.Error(w, "Address ID required", http.StatusBadRequest)
		return
	}

	var req addressRequest
	if err := readJSON(r, &req); err != nil {
		middleware.GetLogger(ctx, h.logger).Error("failed to parse body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	arena := h.arenaFor(token)
	f, err := arena.OpenEdit(addressID, form.AddressSchema(h.locale), req.values())
	if err != nil {
		h.editorConflict(w, err)
		return
	}
	defer arena.Close(addressID)

	address, err := h.svc.UpdateAddress(ctx, token, addressID, f)
	if err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: address, Notifications: h.flash.Drain()})
}

// Delete handles DELETE /account/addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.GetAccessToken(ctx)

	addressID := r.PathValue("id")
	if addressID == "" {
		http.Error(w, "Address ID required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteAddress(ctx, token, addressID); err != nil {
		fail(w, h.flash, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Notifications: h.flash.Drain()})
}

func (h *AddressHandler) editorConflict(w http.ResponseWriter, err error) {
	if errors.Is(err, form.ErrEditorActive) {
		writeJSON(w, http.StatusConflict, response{Message: "Another address is being edited"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, response{Message: "Failed to open editor"})
}
