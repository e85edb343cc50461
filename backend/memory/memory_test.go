package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Jumpaku/go-drivestore"
	"github.com/Jumpaku/go-drivestore/backend/memory"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

func mustCreate(t *testing.T, b *memory.Backend, parentID, name string, kind drivestore.Kind) drivestore.Resource {
	t.Helper()
	r, err := b.Create(context.Background(), parentID, name, kind)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return r
}

func TestBackend_ListPagination(t *testing.T) {
	ctx := context.Background()
	b := memory.New(memory.WithPageSize(2))
	root := b.RootID(drivestore.SchemeApp)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		mustCreate(t, b, root, name, drivestore.KindFile)
	}

	var names []string
	token := ""
	pages := 0
	for {
		items, next, err := b.List(ctx, root, drivestore.Filter{}, token)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		pages++
		for _, it := range items {
			names = append(names, it.Name)
		}
		if next == "" {
			break
		}
		token = next
	}
	if pages != 3 {
		t.Fatalf("pages = %d, want 3", pages)
	}
	if got, want := len(names), 5; got != want {
		t.Fatalf("len(names) = %d, want %d: %v", got, want, names)
	}
}

func TestBackend_ListQuery(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	root := b.RootID(drivestore.SchemeApp)
	mustCreate(t, b, root, "spike.json", drivestore.KindFile)
	mustCreate(t, b, root, "rex.json", drivestore.KindFile)
	mustCreate(t, b, root, "spike-photos", drivestore.KindFolder)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"empty", "", 3},
		{"name equals", "name = 'rex.json'", 1},
		{"name contains", "name contains 'spike'", 2},
		{"folders", "mimeType = 'application/vnd.google-apps.folder'", 1},
		{"not folders", "mimeType != 'application/vnd.google-apps.folder' and trashed = false", 2},
		{"combined", "name contains 'spike' and mimeType != 'application/vnd.google-apps.folder'", 1},
		{"escaped quote", `name = 'it\'s'`, 0},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			items, _, err := b.List(ctx, root, drivestore.Filter{Query: c.query}, "")
			if err != nil {
				t.Fatalf("List(%q) error = %v", c.query, err)
			}
			if len(items) != c.want {
				t.Fatalf("List(%q) returned %d items, want %d", c.query, len(items), c.want)
			}
		})
	}
}

func TestBackend_ListUnsupportedQuery(t *testing.T) {
	b := memory.New()
	_, _, err := b.List(context.Background(), b.RootID(drivestore.SchemeApp), drivestore.Filter{Query: "starred = true"}, "")
	if !errors.Is(err, dserrors.ErrBackend) {
		t.Fatalf("List() error = %v, want ErrBackend", err)
	}
}

func TestBackend_DuplicateNames(t *testing.T) {
	b := memory.New()
	root := b.RootID(drivestore.SchemeApp)
	first := mustCreate(t, b, root, "dogs", drivestore.KindFolder)
	mustCreate(t, b, root, "dogs", drivestore.KindFolder)

	items, _, err := b.List(context.Background(), root, drivestore.Filter{Name: "dogs"}, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("List() returned %d items, want 2", len(items))
	}
	if items[0].ID != first.ID {
		t.Fatalf("first item = %s, want the first created %s", items[0].ID, first.ID)
	}
}

func TestBackend_ContentLifecycle(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	f := mustCreate(t, b, b.RootID(drivestore.SchemeApp), "entry.json", drivestore.KindFile)

	data, err := b.Content(ctx, f.ID)
	if err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Content() of a new file = %q, want empty", data)
	}

	b.MarkNotDownloadable(f.ID)
	if _, err := b.Content(ctx, f.ID); !errors.Is(err, dserrors.ErrNotDownloadable) {
		t.Fatalf("Content() error = %v, want ErrNotDownloadable", err)
	}

	if err := b.Update(ctx, f.ID, "application/json", []byte(`{}`)); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	data, err = b.Content(ctx, f.ID)
	if err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if string(data) != `{}` {
		t.Fatalf("Content() = %q, want {}", data)
	}
}

func TestBackend_DeleteRemovesSubtree(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	root := b.RootID(drivestore.SchemeApp)
	dir := mustCreate(t, b, root, "journals", drivestore.KindFolder)
	sub := mustCreate(t, b, dir.ID, "p", drivestore.KindFolder)
	mustCreate(t, b, sub.ID, "entry1.json", drivestore.KindFile)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	if err := b.Delete(ctx, dir.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() after delete = %d, want 0", b.Len())
	}
	if _, _, err := b.List(ctx, sub.ID, drivestore.Filter{}, ""); !errors.Is(err, dserrors.ErrBackend) {
		t.Fatalf("List() of deleted folder error = %v, want ErrBackend", err)
	}
}

func TestBackend_Stats(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	root, err := b.Root(ctx, drivestore.SchemeApp)
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	mustCreate(t, b, root.ID, "a", drivestore.KindFile)
	if _, _, err := b.List(ctx, root.ID, drivestore.Filter{}, ""); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	stats := b.Stats()
	if stats[memory.OpRoot] != 1 || stats[memory.OpCreate] != 1 || stats[memory.OpList] != 1 {
		t.Fatalf("Stats() = %v, want one root, create and list call", stats)
	}
	b.ResetStats()
	if len(b.Stats()) != 0 {
		t.Fatalf("Stats() after reset = %v, want empty", b.Stats())
	}
}
