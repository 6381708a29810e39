package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/sirupsen/logrus"
)

// OrderLine is one cart line passed to the order procedure.
type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CheckoutRequest carries everything the atomic order procedure needs. Stock
// decrement, coupon re-validation and row locking all happen server-side;
// the client only validates field shapes and interprets the envelope.
type CheckoutRequest struct {
	StoreID       string      `json:"-"`
	CustomerName  string      `json:"customer_name"`
	Email         string      `json:"email"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postal_code"`
	PaymentMethod string      `json:"payment_method"`
	CouponCode    string      `json:"coupon_code,omitempty"`
	Discount      float64     `json:"discount,omitempty"`
	Items         []OrderLine `json:"items"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the checkout fields before any remote call. Validation
// failures abort the operation with no partial state change.
func (c *CheckoutRequest) Validate() error {
	fail := func(field, reason string) error {
		return errors.New(errors.ErrCodeCheckoutField, reason).WithDetail("field", field)
	}

	if strings.TrimSpace(c.CustomerName) == "" {
		return fail("name", "customer name is required")
	}
	if !emailRe.MatchString(c.Email) {
		return fail("email", "a valid email address is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return fail("address", "address is required")
	}
	if strings.TrimSpace(c.City) == "" {
		return fail("city", "city is required")
	}
	if c.PaymentMethod == "" {
		return fail("payment_method", "payment method is required")
	}
	if len(c.Items) == 0 {
		return errors.New(errors.ErrCodeCartEmpty, "the cart is empty")
	}
	for _, item := range c.Items {
		if item.Quantity <= 0 {
			return fail("items", "quantities must be positive")
		}
		if item.Price < 0 {
			return fail("items", "prices cannot be negative")
		}
	}
	if c.Discount < 0 {
		return fail("discount", "discount cannot be negative")
	}
	if c.CouponCode != "" {
		if _, err := ValidateCouponCode(c.CouponCode); err != nil {
			return err
		}
	}
	return nil
}

// orderEnvelope is the success/error envelope returned by the procedure.
type orderEnvelope struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// PlaceOrder invokes the server-side place_order procedure and returns the
// new order id. Backend rejections with a recognized cause are mapped to
// friendly messages; everything else is surfaced verbatim.
func (r *Repository) PlaceOrder(ctx context.Context, req CheckoutRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	params := map[string]any{
		"p_store_id":       req.StoreID,
		"p_customer_name":  req.CustomerName,
		"p_customer_email": req.Email,
		"p_address":        req.Address,
		"p_city":           req.City,
		"p_postal_code":    req.PostalCode,
		"p_payment_method": req.PaymentMethod,
		"p_coupon_code":    req.CouponCode,
		"p_discount":       req.Discount,
		"p_items":          req.Items,
		"p_request_id":     uuid.NewString(),
	}

	resp, err := r.client.RPC(ctx, "place_order", params)
	if err != nil {
		return "", errors.BackendUnavailable("place order", err)
	}
	if err := resp.Error(); err != nil {
		return "", mapOrderError(err.Error())
	}

	var env orderEnvelope
	if err := resp.JSON(&env); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "decode order result")
	}
	if !env.Success {
		return "", mapOrderError(env.Error)
	}

	r.logger.WithFields(logrus.Fields{"store": req.StoreID, "order": env.OrderID}).Info("Order placed")
	return env.OrderID, nil
}

// mapOrderError turns known backend failure substrings into localized
// messages and passes unknown ones through verbatim.
func mapOrderError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "insufficient stock"), strings.Contains(lower, "out of stock"):
		return errors.New(errors.ErrCodeStockShortfall, "one or more items are no longer in stock").
			WithDetail("backend", msg)
	case strings.Contains(lower, "coupon"):
		return errors.New(errors.ErrCodeCouponInvalid, "the coupon could not be applied").
			WithDetail("backend", msg)
	default:
		return errors.OrderRejected(msg)
	}
}
