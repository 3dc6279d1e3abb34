package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/optimistlabs/storefront/internal/commerce"
	"github.com/optimistlabs/storefront/internal/domain"
	"github.com/optimistlabs/storefront/internal/form"
	"github.com/optimistlabs/storefront/internal/notify"
	"github.com/optimistlabs/storefront/internal/telemetry"
)

// Fixed notification messages, one per operation.
const (
	msgAddressCreated = "Address added successfully"
	msgAddressUpdated = "Address updated successfully"
	msgAddressDeleted = "Address deleted"
	msgProfileUpdated = "Profile updated successfully"

	fallbackAddress = "Failed to save address"
	fallbackDelete  = "Failed to delete address"
	fallbackProfile = "Failed to update profile"
)

// AccountService is the submission adapter: it gates a form through its
// submit attempt, maps the normalized payload into the commerce platform's
// shape, delegates to exactly one storefront operation, and surfaces the
// outcome as a transient notification. Each attempt is exactly-once; retry
// is the user clicking submit again.
type AccountService interface {
	// SubmitProfile validates and submits the personal-info form.
	SubmitProfile(ctx context.Context, token string, f *form.Form) (*domain.Customer, error)

	// CreateAddress validates and submits an address-create form.
	CreateAddress(ctx context.Context, token string, f *form.Form) (*domain.Address, error)

	// UpdateAddress validates and submits an address-edit form.
	UpdateAddress(ctx context.Context, token, addressID string, f *form.Form) (*domain.Address, error)

	// DeleteAddress removes a saved address. No form is involved.
	DeleteAddress(ctx context.Context, token, addressID string) error
}

type accountService struct {
	client   commerce.Client
	notifier notify.Notifier
	metrics  *telemetry.FormMetrics
	logger   *slog.Logger
}

// NewAccountService creates the account submission adapter.
func NewAccountService(client commerce.Client, notifier notify.Notifier, metrics *telemetry.FormMetrics, logger *slog.Logger) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.With("service", "account"),
	}
}

// gate runs the submit attempt and converts a blocked outcome into a
// ValidationError. On Proceed the form is left in the submitting state and
// the normalized payload is returned.
func (s *accountService) gate(op, token string, f *form.Form) (form.Payload, error) {
	if token == "" {
		return nil, domain.Unauthorized(op, "Sign in to update your account")
	}

	outcome, err := f.AttemptSubmit()
	if err != nil {
		if errors.Is(err, form.ErrSubmitting) {
			return nil, domain.Invalid(op, "A submission is already in progress")
		}
		return nil, domain.Internal(err, op, "form is not open")
	}

	if !outcome.Proceed {
		s.metrics.SubmissionsTotal.WithLabelValues(f.Schema().Name, "blocked").Inc()
		for field := range outcome.Errors {
			s.metrics.ValidationFailures.WithLabelValues(f.Schema().Name, field).Inc()
		}
		return nil, domain.NewValidationError(op, outcome.Errors)
	}

	return outcome.Payload, nil
}

// resolve finishes the form's submission, refreshes the customer record on
// success, and emits the outcome notification.
func (s *accountService) resolve(ctx context.Context, op, token, formName string, err error, successMsg, fallback string, f *form.Form) error {
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(formName, "error").Inc()
		if f != nil {
			_ = f.Finish(false)
		}
		s.notifier.Error(userMessage(err, fallback))
		s.logger.Error("submission failed", "op", op, "error", err)
		return err
	}

	s.metrics.SubmissionsTotal.WithLabelValues(formName, "success").Inc()
	if f != nil {
		_ = f.Finish(true)
	}

	// Resynchronize local display state with the platform-held record.
	// A refresh failure does not undo the successful mutation.
	if _, rerr := s.client.RefreshCustomer(ctx, token); rerr != nil {
		s.logger.Warn("customer refresh failed", "op", op, "error", rerr)
	}

	s.notifier.Success(successMsg)
	return nil
}

func (s *accountService) SubmitProfile(ctx context.Context, token string, f *form.Form) (*domain.Customer, error) {
	const op = "account.update_profile"

	payload, err := s.gate(op, token, f)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	customer, err := s.client.UpdateProfile(ctx, token, profileInput(payload))
	s.metrics.CommerceLatency.WithLabelValues("update_profile").Observe(time.Since(timer).Seconds())

	if rerr := s.resolve(ctx, op, token, f.Schema().Name, err, msgProfileUpdated, fallbackProfile, f); rerr != nil {
		return nil, rerr
	}
	return customer, nil
}

func (s *accountService) CreateAddress(ctx context.Context, token string, f *form.Form) (*domain.Address, error) {
	const op = "account.create_address"

	payload, err := s.gate(op, token, f)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	address, err := s.client.CreateAddress(ctx, token, addressInput(payload))
	s.metrics.CommerceLatency.WithLabelValues("create_address").Observe(time.Since(timer).Seconds())

	if rerr := s.resolve(ctx, op, token, f.Schema().Name, err, msgAddressCreated, fallbackAddress, f); rerr != nil {
		return nil, rerr
	}
	return address, nil
}

func (s *accountService) UpdateAddress(ctx context.Context, token, addressID string, f *form.Form) (*domain.Address, error) {
	const op = "account.update_address"

	if addressID == "" {
		return nil, domain.Invalid(op, "Address ID required")
	}

	payload, err := s.gate(op, token, f)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	address, err := s.client.UpdateAddress(ctx, token, addressID, addressInput(payload))
	s.metrics.CommerceLatency.WithLabelValues("update_address").Observe(time.Since(timer).Seconds())

	if rerr := s.resolve(ctx, op, token, f.Schema().Name, err, msgAddressUpdated, fallbackAddress, f); rerr != nil {
		return nil, rerr
	}
	return address, nil
}

func (s *accountService) DeleteAddress(ctx context.Context, token, addressID string) error {
	const op = "account.delete_address"

	if token == "" {
		return domain.Unauthorized(op, "Sign in to update your account")
	}
	if addressID == "" {
		return domain.Invalid(op, "Address ID required")
	}

	timer := time.Now()
	err := s.client.DeleteAddress(ctx, token, addressID)
	s.metrics.CommerceLatency.WithLabelValues("delete_address").Observe(time.Since(timer).Seconds())

	return s.resolve(ctx, op, token, "address", err, msgAddressDeleted, fallbackDelete, nil)
}

// userMessage picks the notification text for a failed submission: the
// platform's message when it supplied one, the fixed fallback otherwise.
func userMessage(err error, fallback string) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" && de.Code != domain.EINTERNAL {
		return de.Message
	}
	return fallback
}

// opt converts a normalized value into the wire-level absent marker.
func opt(v form.Value) *string {
	if !v.Set {
		return nil
	}
	s := v.String
	return &s
}

// profileInput maps a normalized profile payload into the platform shape.
func profileInput(p form.Payload) commerce.ProfileInput {
	return commerce.ProfileInput{
		FirstName: p.Get(form.FieldFirstName).String,
		LastName:  p.Get(form.FieldLastName).String,
		Email:     p.Get(form.FieldEmail).String,
		Phone:     opt(p.Get(form.FieldPhone)),
	}
}

// addressInput maps a normalized address payload into the platform shape.
func addressInput(p form.Payload) commerce.AddressInput {
	return commerce.AddressInput{
		FirstName: p.Get(form.FieldFirstName).String,
		LastName:  p.Get(form.FieldLastName).String,
		Phone:     opt(p.Get(form.FieldPhone)),
		Company:   opt(p.Get(form.FieldCompany)),
		Address1:  p.Get(form.FieldAddress1).String,
		Address2:  opt(p.Get(form.FieldAddress2)),
		City:      p.Get(form.FieldCity).String,
		Province:  p.Get(form.FieldProvince).String,
		Zip:       p.Get(form.FieldZip).String,
		Country:   p.Get(form.FieldCountry).String,
	}
}
