package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCouponCode(t *testing.T) {
	t.Run("normalizes to upper case", func(t *testing.T) {
		got, err := ValidateCouponCode(" summer-10 ")
		require.NoError(t, err)
		assert.Equal(t, "SUMMER-10", got)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "ab", "has space", "tool0000000000000000000ng"} {
			_, err := ValidateCouponCode(code)
			assert.Error(t, err, code)
		}
	})
}

func TestCouponDiscount(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		c := Coupon{DiscountType: "percentage", Value: 20}
		assert.InDelta(t, 10.0, c.Discount(50), 1e-9)
	})

	t.Run("fixed clamped to subtotal", func(t *testing.T) {
		c := Coupon{DiscountType: "fixed", Value: 30}
		assert.InDelta(t, 30.0, c.Discount(100), 1e-9)
		assert.InDelta(t, 20.0, c.Discount(20), 1e-9)
	})
}

func TestGetCoupon(t *testing.T) {
	t.Run("active coupon fetched", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.SAVE10", r.URL.Query().Get("code"))
			assert.Equal(t, "eq.true", r.URL.Query().Get("is_active"))
			w.Write([]byte(`{"id":"c1","code":"SAVE10","discount_type":"percentage","value":10,"is_active":true}`))
		})

		c, err := repo.GetCoupon(context.Background(), "s1", "save10")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
	})

	t.Run("out-of-range percentage rejected", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"c1","code":"BROKEN","discount_type":"percentage","value":150,"is_active":true}`))
		})

		_, err := repo.GetCoupon(context.Background(), "s1", "BROKEN")
		assert.True(t, errors.Is(err, errors.ErrCodeCouponInvalid))
	})

	t.Run("missing coupon", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := repo.GetCoupon(context.Background(), "s1", "NOPE123")
		assert.True(t, errors.Is(err, errors.ErrCodeCouponInvalid))
	})
}
