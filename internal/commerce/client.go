// Package commerce is the boundary to the third-party commerce platform's
// storefront API. The platform owns the customer record; this package only
// requests mutations and re-reads.
package commerce

import (
	"context"

	"github.com/optimistlabs/storefront/internal/domain"
)

// AddressInput is the payload shape for address mutations. Optional fields
// use nil as the absent marker: an omitted field is left unchanged by the
// platform, while an explicit empty string clears it.
type AddressInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Address1  string  `json:"address1"`
	Address2  *string `json:"address2,omitempty"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
}

// ProfileInput is the payload shape for profile mutations.
type ProfileInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// Client is the storefront API surface this service depends on. Every call
// takes the customer's opaque access credential.
type Client interface {
	// CreateAddress adds a new address to the customer record.
	CreateAddress(ctx context.Context, token string, input AddressInput) (*domain.Address, error)

	// UpdateAddress replaces the fields of an existing address.
	UpdateAddress(ctx context.Context, token, addressID string, input AddressInput) (*domain.Address, error)

	// DeleteAddress removes an address from the customer record.
	DeleteAddress(ctx context.Context, token, addressID string) error

	// UpdateProfile updates the customer's personal details.
	UpdateProfile(ctx context.Context, token string, input ProfileInput) (*domain.Customer, error)

	// RefreshCustomer re-fetches the customer record after a mutation so
	// local display state resynchronizes.
	RefreshCustomer(ctx context.Context, token string) (*domain.Customer, error)
}
