package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopcanvas/shopcanvas/errors"
)

// Coupon is a store discount code.
type Coupon struct {
	ID           string  `json:"id"`
	StoreID      string  `json:"store_id"`
	Code         string  `json:"code"`
	DiscountType string  `json:"discount_type"` // "percentage" or "fixed"
	Value        float64 `json:"value"`
	IsActive     bool    `json:"is_active"`
}

var couponCodeRe = regexp.MustCompile(`^[A-Z0-9_-]{3,24}$`)

// ValidateCouponCode checks the code shape before any remote lookup. Codes
// are normalized to upper case.
func ValidateCouponCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !couponCodeRe.MatchString(normalized) {
		return "", errors.New(errors.ErrCodeCouponInvalid, "coupon codes are 3-24 characters: letters, digits, '-' or '_'").
			WithDetail("code", code)
	}
	return normalized, nil
}

// Discount computes the discount amount for a cart subtotal, clamped so a
// fixed coupon never exceeds the subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	switch c.DiscountType {
	case "percentage":
		return subtotal * c.Value / 100
	case "fixed":
		if c.Value > subtotal {
			return subtotal
		}
		return c.Value
	default:
		return 0
	}
}

// GetCoupon fetches an active coupon by code and checks its value bounds.
func (r *Repository) GetCoupon(ctx context.Context, storeID, code string) (*Coupon, error) {
	normalized, err := ValidateCouponCode(code)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.From("coupons").Select("*").
		Eq("store_id", storeID).
		Eq("code", normalized).
		Eq("is_active", "true").
		Single().Execute(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable("get coupon", err)
	}
	if resp.StatusCode == 404 || resp.StatusCode == 406 {
		return nil, errors.New(errors.ErrCodeCouponInvalid, "coupon not found or inactive").
			WithDetail("code", normalized)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("get coupon", err)
	}

	var c Coupon
	if err := resp.JSON(&c); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode coupon")
	}

	switch c.DiscountType {
	case "percentage":
		if c.Value <= 0 || c.Value > 100 {
			return nil, errors.New(errors.ErrCodeCouponInvalid, "percentage coupon out of range").
				WithDetail("value", c.Value)
		}
	case "fixed":
		if c.Value <= 0 {
			return nil, errors.New(errors.ErrCodeCouponInvalid, "fixed coupon must be positive").
				WithDetail("value", c.Value)
		}
	default:
		return nil, errors.New(errors.ErrCodeCouponInvalid, "unknown coupon type").
			WithDetail("type", c.DiscountType)
	}

	return &c, nil
}
