package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		StoreID:       "s1",
		CustomerName:  "Ada Lovelace",
		Email:         "ada@example.com",
		Address:       "1 Analytical Way",
		City:          "London",
		PostalCode:    "N1",
		PaymentMethod: "cash_on_delivery",
		Items: []OrderLine{
			{ID: "p1", Name: "Classic Tee", Quantity: 2, Price: 24.00},
		},
	}
}

func TestCheckoutValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCheckout()
		assert.NoError(t, req.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
		code   errors.ErrorCode
	}{
		{"missing name", func(r *CheckoutRequest) { r.CustomerName = "  " }, errors.ErrCodeCheckoutField},
		{"bad email", func(r *CheckoutRequest) { r.Email = "not-an-email" }, errors.ErrCodeCheckoutField},
		{"missing address", func(r *CheckoutRequest) { r.Address = "" }, errors.ErrCodeCheckoutField},
		{"empty cart", func(r *CheckoutRequest) { r.Items = nil }, errors.ErrCodeCartEmpty},
		{"zero quantity", func(r *CheckoutRequest) { r.Items[0].Quantity = 0 }, errors.ErrCodeCheckoutField},
		{"negative discount", func(r *CheckoutRequest) { r.Discount = -1 }, errors.ErrCodeCheckoutField},
		{"malformed coupon", func(r *CheckoutRequest) { r.CouponCode = "x" }, errors.ErrCodeCouponInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCheckout()
			tc.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.code), "got %v", err)
		})
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("success returns order id", func(t *testing.T) {
		var gotParams map[string]any
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/rpc/place_order", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
			w.Write([]byte(`{"success":true,"order_id":"o-42"}`))
		})

		id, err := repo.PlaceOrder(context.Background(), validCheckout())
		require.NoError(t, err)
		assert.Equal(t, "o-42", id)
		assert.Equal(t, "s1", gotParams["p_store_id"])
		assert.NotEmpty(t, gotParams["p_request_id"])
	})

	t.Run("validation failure never reaches the backend", func(t *testing.T) {
		called := false
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := validCheckout()
		req.Items = nil
		_, err := repo.PlaceOrder(context.Background(), req)
		assert.True(t, errors.Is(err, errors.ErrCodeCartEmpty))
		assert.False(t, called)
	})

	t.Run("stock shortfall maps to a friendly message", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"Insufficient stock for product Classic Tee"}`))
		})

		_, err := repo.PlaceOrder(context.Background(), validCheckout())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeStockShortfall))
	})

	t.Run("unknown backend error surfaces verbatim", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"store is suspended"}`))
		})

		_, err := repo.PlaceOrder(context.Background(), validCheckout())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeOrderRejected))
		assert.Contains(t, err.Error(), "store is suspended")
	})

	t.Run("http-level rejection also mapped", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid coupon code"}`))
		})

		_, err := repo.PlaceOrder(context.Background(), validCheckout())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeCouponInvalid))
	})
}
