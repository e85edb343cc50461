package drivestore

import (
	"io"
	"io/fs"
	"testing"
	"time"
)

// TestFSFileInfo tests the FSFileInfo implementation.
func TestFSFileInfo(t *testing.T) {
	modTime := time.Now()
	r := Resource{ID: "1", Name: "test.txt", Kind: KindFile, Size: 1024, ModTime: modTime}
	fi := newFSFileInfo("dir/test.txt", r)

	if fi.Name() != "test.txt" {
		t.Errorf("Name() = %q, want %q", fi.Name(), "test.txt")
	}

	if fi.Size() != 1024 {
		t.Errorf("Size() = %d, want %d", fi.Size(), 1024)
	}

	if fi.Mode() != 0444 {
		t.Errorf("Mode() = %v, want %v", fi.Mode(), fs.FileMode(0444))
	}

	if !fi.ModTime().Equal(modTime) {
		t.Errorf("ModTime() = %v, want %v", fi.ModTime(), modTime)
	}

	if fi.IsDir() {
		t.Error("IsDir() = true, want false")
	}

	if got, ok := fi.Sys().(Resource); !ok || got.ID != "1" {
		t.Errorf("Sys() = %v, want the resource", fi.Sys())
	}
}

// TestFSFileInfoDir tests the FSFileInfo implementation for folders.
func TestFSFileInfoDir(t *testing.T) {
	fi := newFSFileInfo("testdir", Resource{Name: "testdir", Kind: KindFolder, Size: 7})

	if fi.Size() != 0 {
		t.Errorf("Size() = %d, want %d", fi.Size(), 0)
	}

	expectedMode := fs.ModeDir | 0444
	if fi.Mode() != expectedMode {
		t.Errorf("Mode() = %v, want %v", fi.Mode(), expectedMode)
	}

	if !fi.IsDir() {
		t.Error("IsDir() = false, want true")
	}
}

// TestFSFileRead tests the FSFile Read implementation.
func TestFSFileRead(t *testing.T) {
	content := []byte("Hello, World!")
	f := newFSFile(newFSFileInfo("hello.txt", Resource{Name: "hello.txt", Size: 99}), content)

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("ReadAll() = %q, want %q", got, content)
	}

	info, _ := f.Stat()
	if info.Size() != int64(len(content)) {
		t.Errorf("Stat().Size() = %d, want the downloaded length %d", info.Size(), len(content))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	buf := make([]byte, 5)
	if n, err := f.Read(buf); err != nil || string(buf[:n]) != "Hello" {
		t.Errorf("Read() after Seek = %q, %v", buf[:n], err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// TestFSDirReadDir tests the FSDir ReadDir implementation.
func TestFSDirReadDir(t *testing.T) {
	entries := []fs.DirEntry{
		&FSDirEntry{resource: Resource{Name: "file1.txt"}},
		&FSDirEntry{resource: Resource{Name: "file2.txt"}},
		&FSDirEntry{resource: Resource{Name: "sub", Kind: KindFolder}},
	}
	d := &FSDir{info: newFSFileInfo("dir", Resource{Name: "dir", Kind: KindFolder}), entries: entries}

	got, err := d.ReadDir(2)
	if err != nil || len(got) != 2 {
		t.Fatalf("ReadDir(2) = %d entries, %v, want 2 entries", len(got), err)
	}
	got, err = d.ReadDir(2)
	if err != nil || len(got) != 1 || !got[0].IsDir() || got[0].Type() != fs.ModeDir {
		t.Fatalf("ReadDir(2) = %v, %v, want the sub folder", got, err)
	}
	got, err = d.ReadDir(2)
	if err != io.EOF || len(got) != 0 {
		t.Fatalf("ReadDir(2) at end = %v, %v, want io.EOF", got, err)
	}
	got, err = d.ReadDir(-1)
	if err != nil || len(got) != 0 {
		t.Fatalf("ReadDir(-1) at end = %v, %v, want no entries", got, err)
	}

	if _, err := d.Read(make([]byte, 1)); err == nil {
		t.Error("Read() on a folder returned no error")
	}
}
