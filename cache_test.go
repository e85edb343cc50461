package drivestore_test

import (
	"testing"

	"github.com/Jumpaku/go-drivestore"
)

func TestFolderCache(t *testing.T) {
	c := drivestore.NewFolderCache()
	journals := drivestore.Resource{ID: "1", Name: "journals", Kind: drivestore.KindFolder}
	p := drivestore.Resource{ID: "2", Name: "p", Kind: drivestore.KindFolder}
	sibling := drivestore.Resource{ID: "3", Name: "journals-old", Kind: drivestore.KindFolder}

	c.Put("app://journals", journals)
	c.Put("app://journals/p", p)
	c.Put("app://journals-old", sibling)

	if got, ok := c.Get("app://journals/p"); !ok || got.ID != "2" {
		t.Fatalf("Get(journals/p) = %+v, %v", got, ok)
	}
	if _, ok := c.Get("app://p"); ok {
		t.Fatalf("Get(p) hit: keys are scoped to the full path")
	}

	c.Remove("app://journals")
	if _, ok := c.Get("app://journals"); ok {
		t.Fatalf("journals still cached after Remove")
	}
	if _, ok := c.Get("app://journals/p"); ok {
		t.Fatalf("journals/p still cached after removing its parent")
	}
	if _, ok := c.Get("app://journals-old"); !ok {
		t.Fatalf("journals-old evicted by removing journals")
	}

	c.Clear()
	if _, ok := c.Get("app://journals-old"); ok {
		t.Fatalf("entry survived Clear")
	}
}

func TestNoOpFolderCache(t *testing.T) {
	c := drivestore.NoOpFolderCache()
	c.Put("app://journals", drivestore.Resource{ID: "1", Kind: drivestore.KindFolder})
	if _, ok := c.Get("app://journals"); ok {
		t.Fatalf("NoOpFolderCache returned a cached value")
	}
	c.Remove("app://journals")
	c.Clear()
}
