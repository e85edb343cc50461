package drivestore

import (
	"io"
	"io/fs"
	"sync"
)

// FSDir implements fs.File and fs.ReadDirFile for a folder of the store.
// FSDir's ReadDir method is protected by a mutex for concurrent use.
type FSDir struct {
	info    *FSFileInfo
	entries []fs.DirEntry
	offset  int
	mu      sync.Mutex
}

var _ fs.ReadDirFile = (*FSDir)(nil)

func (d *FSDir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

// Read returns an error because folders cannot be read.
func (d *FSDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}

func (d *FSDir) Close() error {
	return nil
}

// ReadDir reads the folder entries, following the fs.ReadDirFile contract.
func (d *FSDir) ReadDir(n int) ([]fs.DirEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n <= 0 {
		entries := d.entries[d.offset:]
		d.offset = len(d.entries)
		return entries, nil
	}

	if d.offset >= len(d.entries) {
		return nil, io.EOF
	}

	end := min(d.offset+n, len(d.entries))
	entries := d.entries[d.offset:end]
	d.offset = end
	return entries, nil
}
