package drivestore

import "io/fs"

// FSDirEntry implements fs.DirEntry for a resource of the store.
type FSDirEntry struct {
	resource Resource
}

var _ fs.DirEntry = (*FSDirEntry)(nil)

func (e *FSDirEntry) Name() string {
	return e.resource.Name
}

func (e *FSDirEntry) IsDir() bool {
	return e.resource.IsFolder()
}

func (e *FSDirEntry) Type() fs.FileMode {
	if e.IsDir() {
		return fs.ModeDir
	}
	return 0
}

func (e *FSDirEntry) Info() (fs.FileInfo, error) {
	return &FSFileInfo{name: e.resource.Name, resource: e.resource, size: e.resource.Size}, nil
}
