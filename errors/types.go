package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Store errors
	ErrCodeStoreNotFound    ErrorCode = "STORE_NOT_FOUND"
	ErrCodeStoreUnpublished ErrorCode = "STORE_UNPUBLISHED"
	ErrCodeSubdomainInvalid ErrorCode = "SUBDOMAIN_INVALID"
	ErrCodeSubdomainTaken   ErrorCode = "SUBDOMAIN_TAKEN"

	// Storefront configuration errors
	ErrCodeTemplateUnknown ErrorCode = "TEMPLATE_UNKNOWN"
	ErrCodeTemplateInvalid ErrorCode = "TEMPLATE_CONFIG_INVALID"

	// Checkout errors
	ErrCodeCartEmpty      ErrorCode = "CART_EMPTY"
	ErrCodeCheckoutField  ErrorCode = "CHECKOUT_FIELD_INVALID"
	ErrCodeCouponInvalid  ErrorCode = "COUPON_INVALID"
	ErrCodeOrderRejected  ErrorCode = "ORDER_REJECTED"
	ErrCodeStockShortfall ErrorCode = "STOCK_SHORTFALL"

	// Backend errors
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrCodeAuthFailed         ErrorCode = "AUTH_FAILED"
	ErrCodeUploadFailed       ErrorCode = "UPLOAD_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ShopError represents a structured error with context
type ShopError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ShopError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ShopError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ShopError) WithDetail(key string, value interface{}) *ShopError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ShopError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ShopError
func New(code ErrorCode, message string) *ShopError {
	return &ShopError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ShopError
func Wrap(err error, code ErrorCode, message string) *ShopError {
	return &ShopError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ShopError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	shopErr, ok := err.(*ShopError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return shopErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	shopErr, ok := err.(*ShopError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return shopErr.Code
}
