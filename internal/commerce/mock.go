package commerce

import (
	"context"

	"github.com/optimistlabs/storefront/internal/domain"
)

// MockClient is a test implementation of Client. Each method delegates to
// the configured function, or returns a zero-value success when unset, and
// records how many times it was called.
type MockClient struct {
	CreateAddressFunc   func(ctx context.Context, token string, input AddressInput) (*domain.Address, error)
	UpdateAddressFunc   func(ctx context.Context, token, addressID string, input AddressInput) (*domain.Address, error)
	DeleteAddressFunc   func(ctx context.Context, token, addressID string) error
	UpdateProfileFunc   func(ctx context.Context, token string, input ProfileInput) (*domain.Customer, error)
	RefreshCustomerFunc func(ctx context.Context, token string) (*domain.Customer, error)

	CreateAddressCalls   int
	UpdateAddressCalls   int
	DeleteAddressCalls   int
	UpdateProfileCalls   int
	RefreshCustomerCalls int
}

// NewMockClient creates a mock that succeeds on every call.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreateAddress(ctx context.Context, token string, input AddressInput) (*domain.Address, error) {
	m.CreateAddressCalls++
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(ctx, token, input)
	}
	return &domain.Address{ID: "mock-address"}, nil
}

func (m *MockClient) UpdateAddress(ctx context.Context, token, addressID string, input AddressInput) (*domain.Address, error) {
	m.UpdateAddressCalls++
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(ctx, token, addressID, input)
	}
	return &domain.Address{ID: addressID}, nil
}

func (m *MockClient) DeleteAddress(ctx context.Context, token, addressID string) error {
	m.DeleteAddressCalls++
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, token, addressID)
	}
	return nil
}

func (m *MockClient) UpdateProfile(ctx context.Context, token string, input ProfileInput) (*domain.Customer, error) {
	m.UpdateProfileCalls++
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, token, input)
	}
	return &domain.Customer{ID: "mock-customer"}, nil
}

func (m *MockClient) RefreshCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	m.RefreshCustomerCalls++
	if m.RefreshCustomerFunc != nil {
		return m.RefreshCustomerFunc(ctx, token)
	}
	return &domain.Customer{ID: "mock-customer"}, nil
}
