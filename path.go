package drivestore

import (
	"fmt"
	"slices"
	"strings"

	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

// Scheme selects the root a path is resolved from.
type Scheme string

const (
	// SchemeApp is the application-data folder, visible only to this application.
	SchemeApp Scheme = "app"
	// SchemeRoot is the root of the user's drive.
	SchemeRoot Scheme = "root"
)

const schemeSeparator = "://"

func (s Scheme) valid() bool {
	return s == SchemeApp || s == SchemeRoot
}

// Path is a logical, slash-delimited location in the store such as "just-dogs/dogs"
// or "app://journals/p/entry1.json".
// A Path always has at least one segment and no segment is empty.
// Each segment is used verbatim as a resource name.
type Path struct {
	scheme   Scheme
	segments []string
}

// ParsePath parses s into a Path.
// Surrounding slashes are ignored. A path without a scheme has an empty scheme and is
// resolved from the store's default root.
func ParsePath(s string) (Path, error) {
	var scheme Scheme
	if before, after, found := strings.Cut(s, schemeSeparator); found {
		scheme = Scheme(before)
		if !scheme.valid() {
			return Path{}, fmt.Errorf("scheme must be one of %q or %q, got %q: %w", SchemeApp, SchemeRoot, before, dserrors.ErrConfiguration)
		}
		s = after
	}
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}, fmt.Errorf("empty path: %w", dserrors.ErrInvalidPath)
	}
	segments := strings.Split(s, "/")
	for i, seg := range segments {
		if seg == "" {
			return Path{}, fmt.Errorf("segment %d of %q is empty: %w", i, s, dserrors.ErrInvalidPath)
		}
	}
	return Path{scheme: scheme, segments: segments}, nil
}

// parseFolderPath is like ParsePath but also accepts a path with no segments,
// such as "" or "app://", denoting the root itself.
func parseFolderPath(s string) (Path, error) {
	var scheme Scheme
	if before, after, found := strings.Cut(s, schemeSeparator); found {
		scheme = Scheme(before)
		s = after
	}
	if strings.Trim(s, "/") == "" {
		if scheme != "" && !scheme.valid() {
			return Path{}, fmt.Errorf("scheme must be one of %q or %q, got %q: %w", SchemeApp, SchemeRoot, scheme, dserrors.ErrConfiguration)
		}
		return Path{scheme: scheme}, nil
	}
	if scheme != "" {
		s = string(scheme) + schemeSeparator + s
	}
	return ParsePath(s)
}

// MustParsePath is like ParsePath but panics if s cannot be parsed.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Scheme returns the explicit scheme of the path, or "" when none was given.
func (p Path) Scheme() Scheme {
	return p.scheme
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Base returns the last segment.
func (p Path) Base() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Join returns the path extended by name, which may itself contain slashes.
func (p Path) Join(name string) (Path, error) {
	rel, err := ParsePath(name)
	if err != nil {
		return Path{}, fmt.Errorf("failed to join %q: %w", name, err)
	}
	if rel.scheme != "" {
		return Path{}, fmt.Errorf("cannot join path with scheme %q: %w", rel.scheme, dserrors.ErrInvalidPath)
	}
	return Path{scheme: p.scheme, segments: slices.Concat(p.segments, rel.segments)}, nil
}

// WithScheme returns p with the scheme set to s if p has no explicit scheme.
func (p Path) WithScheme(s Scheme) Path {
	if p.scheme != "" {
		return p
	}
	return Path{scheme: s, segments: p.segments}
}

// Equal reports whether p and o have the same scheme and the same segments.
// Comparison is case-sensitive.
func (p Path) Equal(o Path) bool {
	return p.scheme == o.scheme && slices.Equal(p.segments, o.segments)
}

func (p Path) String() string {
	s := strings.Join(p.segments, "/")
	if p.scheme != "" {
		return string(p.scheme) + schemeSeparator + s
	}
	return s
}

// prefix returns the cache key of the first n segments.
func (p Path) prefix(n int) string {
	return string(p.scheme) + schemeSeparator + strings.Join(p.segments[:n], "/")
}
