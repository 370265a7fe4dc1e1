package feeds

import (
	"errors"
	"testing"

	"github.com/chefclub/publisher/internal/links"
)

func newTestResolver(t *testing.T, relative bool) Resolver {
	t.Helper()
	policy, err := links.NewPolicy("https://tech.chefclub.tv/", relative)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewResolver(policy, "feeds/all.atom.xml", "feeds/%s.atom.xml", "feeds/%s.atom.xml")
}

func TestAll(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t, true)
	path, ok := resolver.All()
	if !ok {
		t.Fatalf("expected all feed to be enabled")
	}
	if path != "feeds/all.atom.xml" {
		t.Fatalf("unexpected path: %s", path)
	}

	policy, err := links.NewPolicy("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	disabled := NewResolver(policy, "", "", "")
	if _, ok := disabled.All(); ok {
		t.Fatalf("expected all feed to be disabled")
	}
}

func TestCategoryAndTagSubstitution(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t, true)

	got, err := resolver.Category("python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "feeds/python.atom.xml" {
		t.Fatalf("unexpected category path: %s", got)
	}

	got, err = resolver.Tag("golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "feeds/golang.atom.xml" {
		t.Fatalf("unexpected tag path: %s", got)
	}
}

func TestDisabledFeeds(t *testing.T) {
	t.Parallel()

	policy, err := links.NewPolicy("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolver := NewResolver(policy, "", "", "")

	if _, err := resolver.Category("python"); !errors.Is(err, ErrFeedDisabled) {
		t.Fatalf("expected ErrFeedDisabled, got %v", err)
	}
	if _, err := resolver.Tag("golang"); !errors.Is(err, ErrFeedDisabled) {
		t.Fatalf("expected ErrFeedDisabled, got %v", err)
	}
}

func TestSlugValidation(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t, true)

	t.Run("empty", func(t *testing.T) {
		if _, err := resolver.Category(""); !errors.Is(err, ErrEmptySlug) {
			t.Fatalf("expected ErrEmptySlug, got %v", err)
		}
		if _, err := resolver.Tag("   "); !errors.Is(err, ErrEmptySlug) {
			t.Fatalf("expected ErrEmptySlug, got %v", err)
		}
	})

	t.Run("traversal", func(t *testing.T) {
		for _, slug := range []string{"a/b", `a\b`, "..", ".", "a..b"} {
			if _, err := resolver.Category(slug); !errors.Is(err, ErrInvalidSlug) {
				t.Fatalf("expected ErrInvalidSlug for %q, got %v", slug, err)
			}
		}
	})
}

func TestLinkHonorsPolicy(t *testing.T) {
	t.Parallel()

	relative := newTestResolver(t, true)
	if got := relative.Link("feeds/all.atom.xml"); got != "feeds/all.atom.xml" {
		t.Fatalf("expected relative link, got %s", got)
	}

	absolute := newTestResolver(t, false)
	want := "https://tech.chefclub.tv/feeds/all.atom.xml"
	if got := absolute.Link("feeds/all.atom.xml"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
