// Package feeds resolves syndication feed output paths from the configured
// path templates. An empty template means the corresponding feed is disabled.
package feeds

import (
	"fmt"
	"strings"

	"github.com/chefclub/publisher/internal/links"
)

// Resolver turns feed templates into concrete output paths and links.
type Resolver struct {
	all      string
	category string
	tag      string
	policy   links.Policy
}

// NewResolver creates a Resolver from the configured templates and link policy.
// Templates are assumed to be validated upstream: the category and tag
// templates carry exactly one %s placeholder when set.
func NewResolver(policy links.Policy, all, category, tag string) Resolver {
	return Resolver{
		all:      strings.TrimSpace(all),
		category: strings.TrimSpace(category),
		tag:      strings.TrimSpace(tag),
		policy:   policy,
	}
}

// All returns the output path of the all-content feed. The second return
// value is false when the feed is disabled.
func (r Resolver) All() (string, bool) {
	if r.all == "" {
		return "", false
	}
	return r.all, true
}

// Category returns the output path of the feed for the given category slug.
func (r Resolver) Category(slug string) (string, error) {
	return r.resolve(r.category, slug)
}

// Tag returns the output path of the feed for the given tag slug.
func (r Resolver) Tag(slug string) (string, error) {
	return r.resolve(r.tag, slug)
}

// Link converts a feed output path into the link emitted into documents,
// absolute or site-relative depending on the configured policy.
func (r Resolver) Link(path string) string {
	return r.policy.Resolve(path)
}

func (r Resolver) resolve(template, slug string) (string, error) {
	if template == "" {
		return "", ErrFeedDisabled
	}
	if err := validateSlug(slug); err != nil {
		return "", err
	}
	return fmt.Sprintf(template, slug), nil
}

func validateSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return ErrEmptySlug
	}
	if strings.ContainsAny(slug, `/\`) {
		return ErrInvalidSlug
	}
	if slug == "." || strings.Contains(slug, "..") {
		return ErrInvalidSlug
	}
	return nil
}
