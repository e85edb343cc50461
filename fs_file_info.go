package drivestore

import (
	"io/fs"
	"path"
	"time"
)

// FSFileInfo implements fs.FileInfo for a resource of the store.
type FSFileInfo struct {
	name     string
	resource Resource
	size     int64
}

var _ fs.FileInfo = (*FSFileInfo)(nil)

func newFSFileInfo(name string, r Resource) *FSFileInfo {
	return &FSFileInfo{name: path.Base(name), resource: r, size: r.Size}
}

// Name returns the base name of the path the resource was opened with.
func (fi *FSFileInfo) Name() string {
	return fi.name
}

func (fi *FSFileInfo) Size() int64 {
	if fi.resource.IsFolder() {
		return 0
	}
	return fi.size
}

func (fi *FSFileInfo) Mode() fs.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | 0444
	}
	return 0444
}

func (fi *FSFileInfo) ModTime() time.Time {
	return fi.resource.ModTime
}

func (fi *FSFileInfo) IsDir() bool {
	return fi.resource.IsFolder()
}

// Sys returns the underlying Resource.
func (fi *FSFileInfo) Sys() any {
	return fi.resource
}
