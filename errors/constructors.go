package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ShopError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ShopError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StoreNotFound creates a store not found error
func StoreNotFound(ref string) *ShopError {
	return New(ErrCodeStoreNotFound, fmt.Sprintf("store '%s' not found", ref)).
		WithDetail("store", ref)
}

// SubdomainInvalid creates a malformed subdomain error
func SubdomainInvalid(subdomain string) *ShopError {
	return New(ErrCodeSubdomainInvalid,
		fmt.Sprintf("subdomain %q must be lowercase letters, digits and hyphens, and cannot start or end with a hyphen", subdomain)).
		WithDetail("subdomain", subdomain)
}

// TemplateUnknown creates an unknown template error
func TemplateUnknown(name string) *ShopError {
	return New(ErrCodeTemplateUnknown, fmt.Sprintf("unknown template '%s'", name)).
		WithDetail("template", name)
}

// OrderRejected creates an order rejection error carrying the backend message
func OrderRejected(reason string) *ShopError {
	return New(ErrCodeOrderRejected, reason)
}

// UploadFailed wraps an object storage upload failure
func UploadFailed(path string, err error) *ShopError {
	return Wrap(err, ErrCodeUploadFailed, fmt.Sprintf("upload of '%s' failed", path)).
		WithDetail("path", path)
}

// BackendUnavailable wraps a failed remote call against the backend
func BackendUnavailable(op string, err error) *ShopError {
	return Wrap(err, ErrCodeBackendUnavailable, fmt.Sprintf("backend request failed: %s", op)).
		WithDetail("operation", op)
}
