package drivestore

import (
	"bytes"
	"io"
	"io/fs"
)

// FSFile implements fs.File for a file of the store.
// The content is downloaded when the file is opened.
type FSFile struct {
	info    *FSFileInfo
	content *bytes.Reader
}

var (
	_ fs.File     = (*FSFile)(nil)
	_ io.ReaderAt = (*FSFile)(nil)
	_ io.Seeker   = (*FSFile)(nil)
)

func newFSFile(info *FSFileInfo, data []byte) *FSFile {
	// The downloaded length wins over the size reported by the backend.
	info.size = int64(len(data))
	return &FSFile{info: info, content: bytes.NewReader(data)}
}

func (f *FSFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

func (f *FSFile) Read(b []byte) (int, error) {
	return f.content.Read(b)
}

func (f *FSFile) ReadAt(b []byte, off int64) (int, error) {
	return f.content.ReadAt(b, off)
}

func (f *FSFile) Seek(offset int64, whence int) (int64, error) {
	return f.content.Seek(offset, whence)
}

func (f *FSFile) Close() error {
	return nil
}
