package drivestore

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"

	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

// FS returns a read-only io/fs view of the tree under the root addressed by scheme.
// An empty scheme selects the store default.
//
// fs.FS methods take no context, so every backend call made through the view uses ctx.
// Files whose content is not downloadable yet read as empty.
func (s *Store) FS(ctx context.Context, scheme Scheme) fs.FS {
	if scheme == "" {
		scheme = s.scheme
	}
	return &storeFS{ctx: ctx, store: s, scheme: scheme}
}

type storeFS struct {
	ctx    context.Context
	store  *Store
	scheme Scheme
}

var (
	_ fs.ReadDirFS  = (*storeFS)(nil)
	_ fs.ReadFileFS = (*storeFS)(nil)
	_ fs.StatFS     = (*storeFS)(nil)
)

func (f *storeFS) Open(name string) (fs.File, error) {
	r, err := f.stat("open", name)
	if err != nil {
		return nil, err
	}
	if r.IsFolder() {
		entries, err := f.entries("open", name, r)
		if err != nil {
			return nil, err
		}
		return &FSDir{info: newFSFileInfo(name, r), entries: entries}, nil
	}
	data, err := f.read("open", name, r)
	if err != nil {
		return nil, err
	}
	return newFSFile(newFSFileInfo(name, r), data), nil
}

func (f *storeFS) Stat(name string) (fs.FileInfo, error) {
	r, err := f.stat("stat", name)
	if err != nil {
		return nil, err
	}
	return newFSFileInfo(name, r), nil
}

// ReadDir returns the entries of the folder name sorted by name.
func (f *storeFS) ReadDir(name string) ([]fs.DirEntry, error) {
	r, err := f.stat("readdir", name)
	if err != nil {
		return nil, err
	}
	if !r.IsFolder() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}
	return f.entries("readdir", name, r)
}

func (f *storeFS) ReadFile(name string) ([]byte, error) {
	r, err := f.stat("readfile", name)
	if err != nil {
		return nil, err
	}
	if r.IsFolder() {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	return f.read("readfile", name, r)
}

func (f *storeFS) stat(op, name string) (Resource, error) {
	if !fs.ValidPath(name) {
		return Resource{}, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		f.store.mu.Lock()
		defer f.store.mu.Unlock()
		r, err := f.store.root(f.ctx, f.scheme)
		if err != nil {
			return Resource{}, &fs.PathError{Op: op, Path: name, Err: err}
		}
		return r, nil
	}
	p := Path{scheme: f.scheme, segments: strings.Split(name, "/")}
	res, err := f.store.lookup(f.ctx, p)
	if errors.Is(err, dserrors.ErrInvalidPath) {
		return Resource{}, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	if err != nil {
		return Resource{}, &fs.PathError{Op: op, Path: name, Err: err}
	}
	r, found := res.Get()
	if !found {
		return Resource{}, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return r, nil
}

func (f *storeFS) entries(op, name string, folder Resource) ([]fs.DirEntry, error) {
	children, err := f.store.listAll(f.ctx, folder.ID, Filter{})
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	slices.SortStableFunc(children, func(a, b Resource) int { return strings.Compare(a.Name, b.Name) })
	entries := make([]fs.DirEntry, 0, len(children))
	for _, c := range children {
		entries = append(entries, &FSDirEntry{resource: c})
	}
	return entries, nil
}

func (f *storeFS) read(op, name string, file Resource) ([]byte, error) {
	data, _, err := f.store.content(f.ctx, file)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
