// Package drivestoremust wraps the drivestore package with panic-based error handling.
//
// It provides the same path-addressed operations as the root-level drivestore
// package, but instead of returning errors, all exported functions and methods
// panic on failure. It suits scripts and tests where any error is fatal.
package drivestoremust

import (
	"context"
	"io/fs"

	"github.com/Jumpaku/go-drivestore"
)

// Store provides path-addressed document operations over a drivestore.Backend.
//
// All methods of Store panic on error instead of returning an error value.
type Store struct {
	store *drivestore.Store
}

// New creates a new Store over backend configured by opts.
func New(backend drivestore.Backend, opts ...drivestore.Option) *Store {
	return &Store{store: drivestore.New(backend, opts...)}
}

// Wrap returns a Store that panics on the errors of s.
func Wrap(s *drivestore.Store) *Store {
	return &Store{store: s}
}

// Unwrap returns the underlying error-returning store.
func (s *Store) Unwrap() *drivestore.Store {
	return s.store
}

// Get decodes the document at path into a value of type T.
// The result is absent if the path does not exist or the file has no content yet.
//
// It panics if resolution, download, or decoding fails.
func Get[T any](ctx context.Context, s *Store, path string) drivestore.Result[T] {
	return must1(drivestore.Get[T](ctx, s.store, path))
}

// Documents decodes every file in the folder at folderPath matching query.
//
// It panics if listing fails or any document fails to decode.
func Documents[T any](ctx context.Context, s *Store, folderPath, query string) []T {
	return must1(drivestore.Documents[T](ctx, s.store, folderPath, query))
}

// String returns the content of the file at path as a string.
//
// It panics if resolution or download fails.
func (s *Store) String(ctx context.Context, path string) drivestore.Result[string] {
	return must1(s.store.String(ctx, path))
}

// Bytes returns the raw content of the file at path.
//
// It panics if resolution or download fails.
func (s *Store) Bytes(ctx context.Context, path string) drivestore.Result[[]byte] {
	return must1(s.store.Bytes(ctx, path))
}

// File resolves path without creating anything.
//
// It panics if resolution fails.
func (s *Store) File(ctx context.Context, path string) drivestore.Result[drivestore.Resource] {
	return must1(s.store.File(ctx, path))
}

// List returns every child of the folder at folderPath, or nothing if it does not exist.
//
// It panics if listing fails or folderPath denotes a file.
func (s *Store) List(ctx context.Context, folderPath string) []drivestore.Resource {
	return must1(s.store.List(ctx, folderPath))
}

// Search returns the children of the folder at folderPath matching query.
//
// It panics if listing fails, including when the backend rejects the query.
func (s *Store) Search(ctx context.Context, folderPath, query string) []drivestore.Resource {
	return must1(s.store.Search(ctx, folderPath, query))
}

// Save writes req into the folder at folderPath, creating what is missing.
//
// It panics if resolution, encoding, or upload fails.
func (s *Store) Save(ctx context.Context, folderPath string, req drivestore.SaveRequest) {
	must0(s.store.Save(ctx, folderPath, req))
}

// SaveAll saves requests concurrently with at most maxConcurrency saves in flight.
//
// It panics with the first error if any save fails.
func (s *Store) SaveAll(ctx context.Context, folderPath string, requests []drivestore.SaveRequest, maxConcurrency int) {
	must0(s.store.SaveAll(ctx, folderPath, requests, maxConcurrency))
}

// Delete removes the file or folder at path.
//
// It panics if path does not exist (the underlying error would be errors.ErrNotFound)
// or if deletion fails.
func (s *Store) Delete(ctx context.Context, path string) {
	must0(s.store.Delete(ctx, path))
}

// ClearCache forgets every cached folder.
func (s *Store) ClearCache() {
	s.store.ClearCache()
}

// FS returns a read-only io/fs view of the store. Errors of the view are returned, not panicked.
func (s *Store) FS(ctx context.Context, scheme drivestore.Scheme) fs.FS {
	return s.store.FS(ctx, scheme)
}
