package store

import (
	"regexp"

	"github.com/shopcanvas/shopcanvas/errors"
)

// Subdomains follow DNS label rules: 1-63 chars of lowercase alphanumerics
// and hyphens, no leading or trailing hyphen.
var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidateSubdomain rejects malformed subdomains before any remote call.
func ValidateSubdomain(subdomain string) error {
	if !subdomainRe.MatchString(subdomain) {
		return errors.SubdomainInvalid(subdomain)
	}
	return nil
}
