package drivestore

import "strings"

// FolderCache memoizes resolved folders by the path leading to them.
// Implementations need not be safe for concurrent use; the store serializes access.
type FolderCache interface {
	Get(key string) (Resource, bool)
	Put(key string, folder Resource)
	Remove(key string)
	Clear()
}

// NewFolderCache returns an unbounded in-memory FolderCache.
// Entries never expire; Remove also evicts every key below the removed one.
func NewFolderCache() FolderCache {
	return &folderCache{items: map[string]Resource{}}
}

// NoOpFolderCache returns a FolderCache that stores nothing.
func NoOpFolderCache() FolderCache {
	return noOpFolderCache{}
}

type folderCache struct {
	items map[string]Resource
}

func (c *folderCache) Get(key string) (Resource, bool) {
	r, ok := c.items[key]
	return r, ok
}

func (c *folderCache) Put(key string, folder Resource) {
	c.items[key] = folder
}

func (c *folderCache) Remove(key string) {
	delete(c.items, key)
	// Descendants of a deleted folder are gone as well.
	prefix := key + "/"
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
}

func (c *folderCache) Clear() {
	clear(c.items)
}

type noOpFolderCache struct{}

func (noOpFolderCache) Get(string) (Resource, bool) { return Resource{}, false }

func (noOpFolderCache) Put(string, Resource) {}

func (noOpFolderCache) Remove(string) {}

func (noOpFolderCache) Clear() {}
