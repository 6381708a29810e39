package cli

import (
	"fmt"
	"os"

	"github.com/shopcanvas/shopcanvas/errors"
)

// ErrorHandler provides user-friendly error messages.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle prints a user-friendly message for known error codes and returns
// the error for exit-code purposes.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No shopcanvas.yml found. Create one with your backend URL and API key.\n")

	case errors.ErrCodeStoreNotFound:
		if shopErr, ok := err.(*errors.ShopError); ok {
			fmt.Fprintf(os.Stderr, "❌ Store '%v' not found\n", shopErr.Details["store"])
			fmt.Fprintf(os.Stderr, "Run 'shopcanvas store list' to see your stores.\n")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Store not found\n")
		}

	case errors.ErrCodeSubdomainInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid subdomain: use lowercase letters, digits and hyphens, no leading or trailing hyphen.\n")

	case errors.ErrCodeSubdomainTaken:
		fmt.Fprintf(os.Stderr, "❌ That subdomain is already taken. Pick another one.\n")

	case errors.ErrCodeTemplateUnknown:
		if shopErr, ok := err.(*errors.ShopError); ok {
			fmt.Fprintf(os.Stderr, "❌ Unknown template '%v'\n", shopErr.Details["template"])
		}
		fmt.Fprintf(os.Stderr, "Available templates: minimal, boutique, electronics.\n")

	case errors.ErrCodeBackendUnavailable:
		fmt.Fprintf(os.Stderr, "❌ The backend is unreachable: %v\n", err)
		fmt.Fprintf(os.Stderr, "Check the backend URL and API key in shopcanvas.yml.\n")

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	}

	if h.Verbose {
		if shopErr, ok := err.(*errors.ShopError); ok {
			fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", shopErr.ToJSON())
		}
	}
	return err
}
