// Package memory implements an in-process drivestore.Backend.
//
// It keeps the whole tree in memory and mimics the behaviour of a remote drive that
// matters to the store: names are not unique, listing is paginated, and freshly
// created files have no content. It is safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jumpaku/go-drivestore"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

const mimeTypeFolder = "application/vnd.google-apps.folder"

// Op names a backend operation in Stats.
type Op string

const (
	OpRoot    Op = "root"
	OpList    Op = "list"
	OpCreate  Op = "create"
	OpContent Op = "content"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

type node struct {
	resource        drivestore.Resource
	data            []byte
	children        []string
	notDownloadable bool
}

// Backend is an in-memory drive.
type Backend struct {
	pageSize int
	latency  time.Duration
	now      func() time.Time

	mu    sync.Mutex
	nodes map[string]*node
	roots map[drivestore.Scheme]string
	stats map[Op]int
}

var _ drivestore.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithPageSize limits the number of items returned by one List call. Zero means unlimited.
func WithPageSize(n int) Option {
	return func(b *Backend) { b.pageSize = n }
}

// WithLatency makes every call sleep for d before it takes effect.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) { b.latency = d }
}

// WithClock sets the function used for modification times.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// New creates an empty drive with an application-data root and a drive root.
func New(opts ...Option) *Backend {
	b := &Backend{
		now:   time.Now,
		nodes: map[string]*node{},
		roots: map[drivestore.Scheme]string{},
		stats: map[Op]int{},
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, scheme := range []drivestore.Scheme{drivestore.SchemeApp, drivestore.SchemeRoot} {
		id := uuid.NewString()
		b.nodes[id] = &node{resource: drivestore.Resource{
			ID:        id,
			Name:      string(scheme),
			Kind:      drivestore.KindFolder,
			MediaType: mimeTypeFolder,
			ModTime:   b.now(),
		}}
		b.roots[scheme] = id
	}
	return b
}

func (b *Backend) Root(ctx context.Context, scheme drivestore.Scheme) (drivestore.Resource, error) {
	if err := b.enter(ctx, OpRoot); err != nil {
		return drivestore.Resource{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.roots[scheme]
	if !ok {
		return drivestore.Resource{}, fmt.Errorf("unknown root '%s': %w", scheme, dserrors.ErrConfiguration)
	}
	return b.nodes[id].resource, nil
}

// List returns children in creation order. Page tokens are decimal offsets.
func (b *Backend) List(ctx context.Context, parentID string, filter drivestore.Filter, pageToken string) ([]drivestore.Resource, string, error) {
	if err := b.enter(ctx, OpList); err != nil {
		return nil, "", err
	}
	match, err := compileQuery(filter.Query)
	if err != nil {
		return nil, "", dserrors.NewBackendError("failed to list files", err)
	}
	offset := 0
	if pageToken != "" {
		offset, err = strconv.Atoi(pageToken)
		if err != nil || offset < 0 {
			return nil, "", dserrors.NewBackendError("failed to list files", fmt.Errorf("invalid page token %q", pageToken))
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	parent, ok := b.nodes[parentID]
	if !ok {
		return nil, "", dserrors.NewBackendError("failed to list files", fmt.Errorf("file not found: %s", parentID))
	}
	var matched []drivestore.Resource
	for _, id := range parent.children {
		r := b.nodes[id].resource
		if filter.Name != "" && r.Name != filter.Name {
			continue
		}
		if !match(r) {
			continue
		}
		matched = append(matched, r)
	}
	if offset >= len(matched) {
		return []drivestore.Resource{}, "", nil
	}
	matched = matched[offset:]
	if b.pageSize > 0 && len(matched) > b.pageSize {
		return slices.Clone(matched[:b.pageSize]), strconv.Itoa(offset + b.pageSize), nil
	}
	return slices.Clone(matched), "", nil
}

func (b *Backend) Create(ctx context.Context, parentID, name string, kind drivestore.Kind) (drivestore.Resource, error) {
	if err := b.enter(ctx, OpCreate); err != nil {
		return drivestore.Resource{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	parent, ok := b.nodes[parentID]
	if !ok {
		return drivestore.Resource{}, dserrors.NewBackendError("failed to create file", fmt.Errorf("parent not found: %s", parentID))
	}
	if !parent.resource.IsFolder() {
		return drivestore.Resource{}, dserrors.NewBackendError("failed to create file", fmt.Errorf("parent is not a folder: %s", parentID))
	}
	r := drivestore.Resource{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		ParentID: parentID,
		ModTime:  b.now(),
	}
	if kind == drivestore.KindFolder {
		r.MediaType = mimeTypeFolder
	}
	b.nodes[r.ID] = &node{resource: r}
	parent.children = append(parent.children, r.ID)
	return r, nil
}

func (b *Backend) Content(ctx context.Context, id string) ([]byte, error) {
	if err := b.enter(ctx, OpContent); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[id]
	if !ok {
		return nil, dserrors.NewBackendError("failed to download file", fmt.Errorf("file not found: %s", id))
	}
	if n.resource.IsFolder() {
		return nil, dserrors.NewBackendError("failed to download file", fmt.Errorf("cannot download a folder: %s", id))
	}
	if n.notDownloadable {
		return nil, fmt.Errorf("file '%s': %w", id, dserrors.ErrNotDownloadable)
	}
	return slices.Clone(n.data), nil
}

func (b *Backend) Update(ctx context.Context, id, mediaType string, data []byte) error {
	if err := b.enter(ctx, OpUpdate); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[id]
	if !ok {
		return dserrors.NewBackendError("failed to upload file", fmt.Errorf("file not found: %s", id))
	}
	n.data = slices.Clone(data)
	n.notDownloadable = false
	n.resource.MediaType = mediaType
	n.resource.Size = int64(len(data))
	n.resource.ModTime = b.now()
	return nil
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	if err := b.enter(ctx, OpDelete); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[id]
	if !ok {
		return dserrors.NewBackendError("failed to delete file", fmt.Errorf("file not found: %s", id))
	}
	if parent, ok := b.nodes[n.resource.ParentID]; ok {
		parent.children = slices.DeleteFunc(parent.children, func(c string) bool { return c == id })
	}
	b.deleteTree(id)
	return nil
}

func (b *Backend) deleteTree(id string) {
	n := b.nodes[id]
	for _, c := range n.children {
		b.deleteTree(c)
	}
	delete(b.nodes, id)
}

// MarkNotDownloadable makes Content of id fail with errors.ErrNotDownloadable until the
// next Update of id.
func (b *Backend) MarkNotDownloadable(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n, ok := b.nodes[id]; ok {
		n.notDownloadable = true
	}
}

// Stats returns the number of calls made per operation.
func (b *Backend) Stats() map[Op]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := make(map[Op]int, len(b.stats))
	for k, v := range b.stats {
		stats[k] = v
	}
	return stats
}

// ResetStats sets every call count back to zero.
func (b *Backend) ResetStats() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.stats)
}

// Children returns the resources directly under parentID named name, in creation order.
func (b *Backend) Children(parentID, name string) []drivestore.Resource {
	b.mu.Lock()
	defer b.mu.Unlock()
	parent, ok := b.nodes[parentID]
	if !ok {
		return nil
	}
	var found []drivestore.Resource
	for _, id := range parent.children {
		if r := b.nodes[id].resource; r.Name == name {
			found = append(found, r)
		}
	}
	return found
}

// Len returns the number of resources, roots excluded.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes) - len(b.roots)
}

func (b *Backend) enter(ctx context.Context, op Op) error {
	b.mu.Lock()
	b.stats[op]++
	b.mu.Unlock()
	if b.latency > 0 {
		select {
		case <-time.After(b.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}

// RootID returns the ID of the root folder addressed by scheme.
func (b *Backend) RootID(scheme drivestore.Scheme) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.roots[scheme]
}
