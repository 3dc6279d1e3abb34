package commerce

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/optimistlabs/storefront/internal/domain"
)

// StorefrontClient talks to the commerce platform's storefront API over
// HTTPS with JSON bodies.
type StorefrontClient struct {
	baseURL    string
	apiToken   string // storefront access token identifying this shop
	httpClient *http.Client
}

// NewStorefrontClient creates a client for the given storefront endpoint.
func NewStorefrontClient(baseURL, apiToken string, timeout time.Duration) *StorefrontClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StorefrontClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiError is the platform's structured error body.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type addressEnvelope struct {
	Address domain.Address `json:"address"`
}

type customerEnvelope struct {
	Customer domain.Customer `json:"customer"`
}

// CreateAddress adds a new address to the customer record.
func (c *StorefrontClient) CreateAddress(ctx context.Context, token string, input AddressInput) (*domain.Address, error) {
	var env addressEnvelope
	err := c.do(ctx, http.MethodPost, "/customer/addresses", token, input, &env)
	if err != nil {
		return nil, err
	}
	return &env.Address, nil
}

// UpdateAddress replaces the fields of an existing address.
func (c *StorefrontClient) UpdateAddress(ctx context.Context, token, addressID string, input AddressInput) (*domain.Address, error) {
	var env addressEnvelope
	err := c.do(ctx, http.MethodPut, "/customer/addresses/"+addressID, token, input, &env)
	if err != nil {
		return nil, err
	}
	return &env.Address, nil
}

// DeleteAddress removes an address from the customer record.
func (c *StorefrontClient) DeleteAddress(ctx context.Context, token, addressID string) error {
	return c.do(ctx, http.MethodDelete, "/customer/addresses/"+addressID, token, nil, nil)
}

// UpdateProfile updates the customer's personal details.
func (c *StorefrontClient) UpdateProfile(ctx context.Context, token string, input ProfileInput) (*domain.Customer, error) {
	var env customerEnvelope
	err := c.do(ctx, http.MethodPut, "/customer", token, input, &env)
	if err != nil {
		return nil, err
	}
	return &env.Customer, nil
}

// RefreshCustomer re-fetches the customer record.
func (c *StorefrontClient) RefreshCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	var env customerEnvelope
	err := c.do(ctx, http.MethodGet, "/customer", token, nil, &env)
	if err != nil {
		return nil, err
	}
	return &env.Customer, nil
}

// do performs one storefront API call: marshal, send, decode, map errors.
func (c *StorefrontClient) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := sonic.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Access-Token", c.apiToken)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Upstream(err, "commerce."+method+path, "Commerce platform unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.decodeError(resp.StatusCode, method+" "+path, data)
	}

	if out != nil && len(data) > 0 {
		if err := sonic.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// decodeError converts a storefront error response into a domain error,
// keeping the platform's message when it supplied one.
func (c *StorefrontClient) decodeError(status int, op string, body []byte) error {
	var ae apiError
	_ = sonic.Unmarshal(body, &ae)
	msg := ae.Message
	if msg == "" {
		msg = fmt.Sprintf("commerce platform returned status %d", status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Unauthorized("commerce."+op, msg)
	case http.StatusNotFound:
		return &domain.Error{Code: domain.ENOTFOUND, Op: "commerce." + op, Message: msg}
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return domain.Invalid("commerce."+op, msg)
	default:
		return domain.Upstream(fmt.Errorf("status %d: %s", status, body), "commerce."+op, msg)
	}
}
