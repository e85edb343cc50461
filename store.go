package drivestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

// Store addresses documents held by a Backend through slash-delimited paths.
//
// Path resolution, including the creation of missing folders and the folder cache
// updates, runs under a single per-store lock, so concurrent saves under a folder
// that does not exist yet create it exactly once. Content transfers of already
// resolved files run outside the lock.
//
// A Store must not be shared between backends of different accounts without calling
// ClearCache in between.
type Store struct {
	backend     Backend
	codec       Codec
	logger      *slog.Logger
	verbose     bool
	concurrency int
	scheme      Scheme

	mu    sync.Mutex
	cache FolderCache
}

// New creates a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	cache := NoOpFolderCache()
	if o.CacheFolders {
		cache = NewFolderCache()
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:     backend,
		codec:       o.Codec,
		logger:      logger,
		verbose:     o.Verbose,
		concurrency: o.Concurrency,
		scheme:      o.Scheme,
		cache:       cache,
	}
}

// Get decodes the document at path into a value of type T.
//
// The result is absent if the path does not exist, or if the file exists but has no
// content yet: either it is empty or the backend reports its content is not downloadable.
// Resolving a missing path creates nothing.
func Get[T any](ctx context.Context, s *Store, path string) (Result[T], error) {
	var v T
	found, err := s.Decode(ctx, path, &v)
	if err != nil || !found {
		return Absent[T](), err
	}
	return Found(v), nil
}

// Decode decodes the document at path into v and reports whether it was found.
// It is the non-generic form of Get.
func (s *Store) Decode(ctx context.Context, path string, v any) (found bool, err error) {
	file, found, err := s.lookupFile(ctx, path)
	if err != nil || !found {
		return false, err
	}
	data, found, err := s.content(ctx, file)
	if err != nil || !found {
		return false, err
	}
	if len(data) == 0 {
		s.log(ctx, "empty content", slog.String("path", path), slog.String("id", file.ID))
		return false, nil
	}
	if err := s.codec.Decode(data, v); err != nil {
		return false, dserrors.NewDecodeError(fmt.Sprintf("failed to decode '%s'", path), err)
	}
	return true, nil
}

// Bytes returns the raw content of the file at path.
// An empty file yields a present, empty slice.
func (s *Store) Bytes(ctx context.Context, path string) (Result[[]byte], error) {
	file, found, err := s.lookupFile(ctx, path)
	if err != nil || !found {
		return Absent[[]byte](), err
	}
	data, found, err := s.content(ctx, file)
	if err != nil || !found {
		return Absent[[]byte](), err
	}
	return Found(data), nil
}

// String returns the content of the file at path as a string.
func (s *Store) String(ctx context.Context, path string) (Result[string], error) {
	data, err := s.Bytes(ctx, path)
	if err != nil || !data.Present() {
		return Absent[string](), err
	}
	return Found(string(data.Value())), nil
}

// File resolves path without creating anything and returns the resource it denotes.
func (s *Store) File(ctx context.Context, path string) (Result[Resource], error) {
	p, err := ParsePath(path)
	if err != nil {
		return Absent[Resource](), err
	}
	return s.lookup(ctx, p)
}

// List returns every child of the folder at folderPath.
func (s *Store) List(ctx context.Context, folderPath string) ([]Resource, error) {
	return s.Search(ctx, folderPath, "")
}

// Search returns the children of the folder at folderPath matching query, a
// backend-specific filter expression. An empty query matches every child.
//
// An empty folderPath denotes the root. A missing folder yields an empty slice.
// All result pages are fetched before returning; a failure on any page fails the
// whole call.
func (s *Store) Search(ctx context.Context, folderPath, query string) ([]Resource, error) {
	p, err := parseFolderPath(folderPath)
	if err != nil {
		return nil, err
	}
	res, err := s.lookup(ctx, p)
	if err != nil {
		return nil, err
	}
	folder, found := res.Get()
	if !found {
		return []Resource{}, nil
	}
	if !folder.IsFolder() {
		return nil, fmt.Errorf("'%s' is not a folder: %w", p, dserrors.ErrInvalidPath)
	}
	return s.listAll(ctx, folder.ID, Filter{Query: query})
}

// Documents decodes every file in the folder at folderPath matching query.
// Subfolders and files without content yet are skipped. The first file that
// fails to decode fails the whole call.
func Documents[T any](ctx context.Context, s *Store, folderPath, query string) ([]T, error) {
	children, err := s.Search(ctx, folderPath, query)
	if err != nil {
		return nil, err
	}
	docs := make([]T, 0, len(children))
	for _, child := range children {
		if child.IsFolder() {
			continue
		}
		data, found, err := s.content(ctx, child)
		if err != nil {
			return nil, err
		}
		if !found || len(data) == 0 {
			continue
		}
		var v T
		if err := s.codec.Decode(data, &v); err != nil {
			return nil, dserrors.NewDecodeError(fmt.Sprintf("failed to decode '%s' in '%s'", child.Name, folderPath), err)
		}
		docs = append(docs, v)
	}
	return docs, nil
}

// Save writes req to the file named by its title inside the folder at folderPath,
// or at the root when folderPath is empty. Missing folders and the file itself are
// created. An existing file with the same title is overwritten.
func (s *Store) Save(ctx context.Context, folderPath string, req SaveRequest) error {
	if req == nil {
		return fmt.Errorf("nil save request: %w", dserrors.ErrConfiguration)
	}
	p, err := parseFolderPath(folderPath)
	if err != nil {
		return err
	}
	target, err := p.Join(req.RequestTitle())
	if err != nil {
		return err
	}
	mediaType, data, write, err := s.payload(req)
	if err != nil {
		return fmt.Errorf("failed to prepare '%s': %w", target, err)
	}

	s.mu.Lock()
	res, err := s.resolve(ctx, target, true)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to resolve '%s': %w", target, err)
	}
	file := res.Value()
	if file.IsFolder() {
		return fmt.Errorf("'%s' is a folder: %w", target, dserrors.ErrInvalidPath)
	}
	if !write {
		return nil
	}
	if err := s.backend.Update(ctx, file.ID, mediaType, data); err != nil {
		return fmt.Errorf("failed to write '%s': %w", target, err)
	}
	s.log(ctx, "saved", slog.String("path", target.String()), slog.String("id", file.ID), slog.Int("bytes", len(data)))
	return nil
}

// payload converts req into the bytes to write. write is false for requests that
// carry no content.
func (s *Store) payload(req SaveRequest) (mediaType string, data []byte, write bool, err error) {
	switch req := req.(type) {
	case RawBytes:
		return req.MediaType, req.Data, true, nil
	case Text:
		return mediaTypeText, []byte(req.Content), true, nil
	case Document:
		c := req.Codec
		if c == nil {
			c = s.codec
		}
		data, err := c.Encode(req.Value)
		if err != nil {
			return "", nil, false, fmt.Errorf("failed to encode '%s': %w", req.Title, err)
		}
		return c.MediaType(), data, true, nil
	case MetadataOnly:
		return "", nil, false, nil
	default:
		return "", nil, false, fmt.Errorf("unsupported save request %T: %w", req, dserrors.ErrConfiguration)
	}
}

// Delete removes the file or folder at path and forgets any cached folders at or below it.
// It fails with errors.ErrNotFound if path does not exist.
func (s *Store) Delete(ctx context.Context, path string) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	p = p.WithScheme(s.scheme)

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.resolve(ctx, p, false)
	if err != nil {
		return fmt.Errorf("failed to resolve '%s': %w", p, err)
	}
	r, found := res.Get()
	if !found {
		return fmt.Errorf("'%s': %w", p, dserrors.ErrNotFound)
	}
	if err := s.backend.Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("failed to delete '%s': %w", p, err)
	}
	s.cache.Remove(p.prefix(p.Len()))
	s.log(ctx, "deleted", slog.String("path", p.String()), slog.String("id", r.ID))
	return nil
}

// ClearCache forgets every cached folder, e.g. after switching accounts.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}

func (s *Store) lookup(ctx context.Context, p Path) (Result[Resource], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.resolve(ctx, p, false)
	if err != nil {
		return Absent[Resource](), fmt.Errorf("failed to resolve '%s': %w", p, err)
	}
	return res, nil
}

func (s *Store) lookupFile(ctx context.Context, path string) (file Resource, found bool, err error) {
	p, err := ParsePath(path)
	if err != nil {
		return Resource{}, false, err
	}
	res, err := s.lookup(ctx, p)
	if err != nil {
		return Resource{}, false, err
	}
	file, found = res.Get()
	if found && file.IsFolder() {
		return Resource{}, false, fmt.Errorf("'%s' is a folder: %w", p, dserrors.ErrInvalidPath)
	}
	return file, found, nil
}

// content downloads the bytes of file. found is false while the backend reports the
// content as not downloadable yet.
func (s *Store) content(ctx context.Context, file Resource) (data []byte, found bool, err error) {
	data, err = s.backend.Content(ctx, file.ID)
	if errors.Is(err, dserrors.ErrNotDownloadable) {
		s.log(ctx, "content not downloadable yet", slog.String("id", file.ID))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read '%s': %w", file.Name, err)
	}
	return data, true, nil
}

func (s *Store) listAll(ctx context.Context, parentID string, filter Filter) ([]Resource, error) {
	results := []Resource{}
	pageToken := ""
	for {
		items, next, err := s.backend.List(ctx, parentID, filter, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list '%s': %w", parentID, err)
		}
		results = append(results, items...)
		if next == "" {
			return results, nil
		}
		pageToken = next
	}
}
