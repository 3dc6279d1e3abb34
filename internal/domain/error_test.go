package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "account.update_profile",
				Message: "invalid input",
			},
			expected: "account.update_profile: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "account.update_profile",
				Message: "failed to save",
				Err:     errors.New("connection refused"),
			},
			expected: "account.update_profile: failed to save: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("connection refused"),
			},
			expected: "failed to save: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: ENOTFOUND, Message: "not found"},
			expected: ENOTFOUND,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("context: %w", &Error{Code: EUPSTREAM}),
			expected: EUPSTREAM,
		},
		{
			name:     "plain error",
			err:      errors.New("something broke"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID, Message: "Email has already been taken"},
			expected: "Email has already been taken",
		},
		{
			name:     "internal error hides details",
			err:      &Error{Code: EINTERNAL, Message: "pool exhausted"},
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "plain error hides details",
			err:      errors.New("pool exhausted"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("account.update_address", "Address", "addr-9")
		if ErrorCode(err) != ENOTFOUND {
			t.Errorf("code = %q, want %q", ErrorCode(err), ENOTFOUND)
		}
		if ErrorMessage(err) != "Address not found: addr-9" {
			t.Errorf("message = %q", ErrorMessage(err))
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		err := Unauthorized("account.update_profile", "Sign in to update your account")
		if ErrorCode(err) != EUNAUTHORIZED {
			t.Errorf("code = %q, want %q", ErrorCode(err), EUNAUTHORIZED)
		}
	})

	t.Run("Upstream keeps cause", func(t *testing.T) {
		cause := errors.New("status 500")
		err := Upstream(cause, "commerce.update_profile", "")
		if !errors.Is(err, cause) {
			t.Error("Upstream should wrap the cause")
		}
		if ErrorCode(err) != EUPSTREAM {
			t.Errorf("code = %q, want %q", ErrorCode(err), EUPSTREAM)
		}
	})
}

func TestValidationError(t *testing.T) {
	fields := map[string]string{
		"email":     "Email is required",
		"firstName": "First name is required",
	}
	err := NewValidationError("account.update_profile", fields)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("NewValidationError should return *ValidationError")
	}
	if ve.Op != "account.update_profile" {
		t.Errorf("Op = %q", ve.Op)
	}
	if len(ve.Fields) != 2 {
		t.Errorf("Fields = %v", ve.Fields)
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "validation error",
			err:      NewValidationError("test", map[string]string{"field": "message"}),
			expected: true,
		},
		{
			name:     "wrapped validation error",
			err:      fmt.Errorf("context: %w", NewValidationError("test", map[string]string{"field": "message"})),
			expected: true,
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID},
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.expected {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationFields(t *testing.T) {
	err := NewValidationError("test", map[string]string{"zip": "Pincode is required"})
	fields := ValidationFields(err)
	if fields["zip"] != "Pincode is required" {
		t.Errorf("fields = %v", fields)
	}

	if ValidationFields(errors.New("plain")) != nil {
		t.Error("non-validation errors should yield nil fields")
	}
}
