package commerce_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/optimistlabs/storefront/internal/commerce"
	"github.com/optimistlabs/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func Test_StorefrontClient_CreateAddress(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"address":{"id":"addr-1","city":"Bengaluru"}}`))
	}))
	defer srv.Close()

	client := commerce.NewStorefrontClient(srv.URL, "shop-token", 0)

	address, err := client.CreateAddress(context.Background(), "customer-token", commerce.AddressInput{
		FirstName: "Priya",
		LastName:  "Sharma",
		Address1:  "14 MG Road",
		City:      "Bengaluru",
		Province:  "Karnataka",
		Zip:       "560001",
		Country:   "India",
	})
	require.NoError(t, err)
	assert.Equal(t, "addr-1", address.ID)

	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/customer/addresses", gotReq.URL.Path)
	assert.Equal(t, "shop-token", gotReq.Header.Get("X-Storefront-Access-Token"))
	assert.Equal(t, "Bearer customer-token", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))

	assert.Equal(t, "Priya", gotBody["firstName"])
	_, hasPhone := gotBody["phone"]
	assert.False(t, hasPhone, "nil optional fields stay off the wire")
}

func Test_StorefrontClient_UpdateAddressSendsOptionalWhenSet(t *testing.T) {
	var gotBody map[string]any
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"address":{"id":"addr-9"}}`))
	}))
	defer srv.Close()

	client := commerce.NewStorefrontClient(srv.URL, "shop-token", 0)

	_, err := client.UpdateAddress(context.Background(), "customer-token", "addr-9", commerce.AddressInput{
		FirstName: "Priya",
		LastName:  "Sharma",
		Phone:     strPtr("+919876543210"),
		Address1:  "14 MG Road",
		City:      "Bengaluru",
		Province:  "Karnataka",
		Zip:       "560001",
		Country:   "India",
	})
	require.NoError(t, err)

	assert.Equal(t, "PUT /customer/addresses/addr-9", gotPath)
	assert.Equal(t, "+919876543210", gotBody["phone"])
}

func Test_StorefrontClient_DeleteAddress(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := commerce.NewStorefrontClient(srv.URL, "shop-token", 0)

	err := client.DeleteAddress(context.Background(), "customer-token", "addr-9")
	require.NoError(t, err)
	assert.Equal(t, "DELETE /customer/addresses/addr-9", gotPath)
}

func Test_StorefrontClient_RefreshCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customer", r.URL.Path)
		w.Write([]byte(`{"customer":{"id":"cust-1","firstName":"Priya","addresses":[{"id":"addr-1"}]}}`))
	}))
	defer srv.Close()

	client := commerce.NewStorefrontClient(srv.URL, "shop-token", 0)

	customer, err := client.RefreshCustomer(context.Background(), "customer-token")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", customer.ID)
	assert.Equal(t, "Priya", customer.FirstName)
	require.Len(t, customer.Addresses, 1)
}

func Test_StorefrontClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Invalid token"}`,
			wantCode: domain.EUNAUTHORIZED,
			wantMsg:  "Invalid token",
		},
		{
			name:     "forbidden maps to unauthorized",
			status:   http.StatusForbidden,
			body:     `{}`,
			wantCode: domain.EUNAUTHORIZED,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"message":"Address not found"}`,
			wantCode: domain.ENOTFOUND,
			wantMsg:  "Address not found",
		},
		{
			name:     "unprocessable entity",
			status:   http.StatusUnprocessableEntity,
			body:     `{"message":"Email has already been taken"}`,
			wantCode: domain.EINVALID,
			wantMsg:  "Email has already been taken",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantCode: domain.EUPSTREAM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := commerce.NewStorefrontClient(srv.URL, "shop-token", 0)

			_, err := client.RefreshCustomer(context.Background(), "customer-token")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, domain.ErrorMessage(err))
			}
		})
	}
}

func Test_StorefrontClient_UnreachableHost(t *testing.T) {
	client := commerce.NewStorefrontClient("http://127.0.0.1:1", "shop-token", 0)

	_, err := client.RefreshCustomer(context.Background(), "customer-token")
	require.Error(t, err)
	assert.Equal(t, domain.EUPSTREAM, domain.ErrorCode(err))
}
