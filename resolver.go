package drivestore

import (
	"context"
	"fmt"
	"log/slog"

	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

// resolve walks path from its root and returns the resource denoted by the last segment.
// Missing segments are created only when createTerminal is true; otherwise resolution
// stops at the first missing segment and returns an absent result without creating anything.
//
// The caller must hold s.mu.
func (s *Store) resolve(ctx context.Context, path Path, createTerminal bool) (Result[Resource], error) {
	path = path.WithScheme(s.scheme)
	current, err := s.root(ctx, path.Scheme())
	if err != nil {
		return Absent[Resource](), err
	}

	last := path.Len() - 1
	for i, name := range path.segments {
		key := path.prefix(i + 1)
		if folder, ok := s.cache.Get(key); ok {
			s.log(ctx, "cache hit", slog.String("key", key), slog.String("id", folder.ID))
			current = folder
			continue
		}
		if !current.IsFolder() {
			return Absent[Resource](), fmt.Errorf("'%s' is not a folder in '%s': %w", current.Name, path, dserrors.ErrInvalidPath)
		}

		s.log(ctx, "cache miss", slog.String("key", key), slog.String("parent", current.ID))
		child, found, err := s.findChild(ctx, current.ID, name)
		if err != nil {
			return Absent[Resource](), fmt.Errorf("failed to find '%s' in '%s': %w", name, current.ID, err)
		}
		if !found {
			if !createTerminal {
				s.log(ctx, "not found", slog.String("key", key))
				return Absent[Resource](), nil
			}
			kind := KindFolder
			if i == last {
				kind = KindFile
			}
			child, err = s.backend.Create(ctx, current.ID, name, kind)
			if err != nil {
				return Absent[Resource](), fmt.Errorf("failed to create %s '%s' in '%s': %w", kind, name, current.ID, err)
			}
			s.log(ctx, "created", slog.String("key", key), slog.String("kind", kind.String()), slog.String("id", child.ID))
		}
		if child.IsFolder() {
			s.cache.Put(key, child)
		}
		current = child
	}
	return Found(current), nil
}

// findChild returns the first child of parentID named name.
// Same-named siblings are not disambiguated; the backend's first result wins.
func (s *Store) findChild(ctx context.Context, parentID, name string) (Resource, bool, error) {
	items, _, err := s.backend.List(ctx, parentID, Filter{Name: name}, "")
	if err != nil {
		return Resource{}, false, err
	}
	if len(items) == 0 {
		return Resource{}, false, nil
	}
	if len(items) > 1 {
		s.log(ctx, "multiple resources share a name, using the first", slog.String("name", name), slog.Int("count", len(items)))
	}
	return items[0], true, nil
}

// root returns the root folder of scheme, consulting the cache first.
func (s *Store) root(ctx context.Context, scheme Scheme) (Resource, error) {
	if !scheme.valid() {
		return Resource{}, fmt.Errorf("unsupported scheme %q: %w", scheme, dserrors.ErrConfiguration)
	}
	key := string(scheme) + schemeSeparator
	if r, ok := s.cache.Get(key); ok {
		return r, nil
	}
	r, err := s.backend.Root(ctx, scheme)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get root '%s': %w", scheme, err)
	}
	s.log(ctx, "root", slog.String("scheme", string(scheme)), slog.String("id", r.ID))
	s.cache.Put(key, r)
	return r, nil
}

func (s *Store) log(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !s.verbose {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
