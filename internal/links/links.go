package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrSiteURLRequired is returned when absolute links are requested without a site URL.
	ErrSiteURLRequired = errors.New("absolute link generation requires a site URL")
	// ErrInvalidSiteURL is returned when the site URL is not an absolute http(s) URL.
	ErrInvalidSiteURL = errors.New("site URL must be an absolute http or https URL")
)

// Policy decides how site-relative content paths are written into rendered
// documents: joined onto the site URL, or left relative for local previews.
type Policy struct {
	base     *url.URL
	relative bool
}

// NewPolicy builds a link policy from the configured site URL and the
// relative-links toggle. The site URL may be empty only when relative links
// are enabled, since it is never consulted in that mode.
func NewPolicy(siteURL string, relative bool) (Policy, error) {
	siteURL = strings.TrimSpace(siteURL)

	if siteURL == "" {
		if relative {
			return Policy{relative: true}, nil
		}
		return Policy{}, ErrSiteURLRequired
	}

	base, err := url.Parse(siteURL)
	if err != nil {
		return Policy{}, fmt.Errorf("parse site URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return Policy{}, ErrInvalidSiteURL
	}

	// Resolution treats the site URL as a directory, never as a sibling page.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return Policy{base: base, relative: relative}, nil
}

// Relative reports whether the policy emits site-relative links.
func (p Policy) Relative() bool {
	return p.relative
}

// Resolve converts a site-relative content path into the link emitted into
// rendered documents. Queries and fragments on the input are preserved.
func (p Policy) Resolve(sitePath string) string {
	sitePath = strings.TrimPrefix(sitePath, "/")

	if p.relative || p.base == nil {
		return sitePath
	}

	ref, err := url.Parse(sitePath)
	if err != nil {
		// Not parseable as a URL reference; fall back to plain joining.
		return strings.TrimSuffix(p.base.String(), "/") + "/" + sitePath
	}

	return p.base.ResolveReference(ref).String()
}
