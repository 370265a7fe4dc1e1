package feeds

import "errors"

var (
	// ErrFeedDisabled is returned when a feed is requested but its template is unset.
	ErrFeedDisabled = errors.New("feed is disabled by configuration")
	// ErrEmptySlug is returned when a category or tag slug is empty.
	ErrEmptySlug = errors.New("slug must not be empty")
	// ErrInvalidSlug is returned when a slug contains path separators or traversal segments.
	ErrInvalidSlug = errors.New("slug must not contain path separators or traversal segments")
)
