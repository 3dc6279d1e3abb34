package account

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/optimistlabs/storefront/internal/domain"
	"github.com/optimistlabs/storefront/internal/notify"
)

// response is the JSON envelope every account endpoint returns. Field errors
// are keyed by field name; notifications are the transient toasts queued
// since the last response.
type response struct {
	Data          any                   `json:"data,omitempty"`
	Errors        map[string]string     `json:"errors,omitempty"`
	Message       string                `json:"message,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := sonic.Marshal(body)
	if err != nil {
		// Marshal of this envelope cannot realistically fail; keep the
		// status we already committed to.
		return
	}
	w.Write(data)
}

func readJSON(r *http.Request, out any) error {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("empty body")
	}
	return sonic.Unmarshal(data, out)
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	if domain.IsValidationError(err) {
		return http.StatusUnprocessableEntity
	}
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUPSTREAM:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail renders a domain error: field errors for blocked submissions, a
// single message otherwise. The flash queue is drained either way so the
// client renders the error toast.
func fail(w http.ResponseWriter, flash *notify.Flash, err error) {
	body := response{Notifications: flash.Drain()}
	if fields := domain.ValidationFields(err); fields != nil {
		body.Errors = fields
	} else {
		body.Message = domain.ErrorMessage(err)
	}
	writeJSON(w, statusFor(err), body)
}
