package drivestore

// This file is part of the package tests (package drivestore) and provides
// helpers that allow tests in the external package to inspect internal state.

// CacheKey returns the folder cache key of the first n segments of p.
func CacheKey(p Path, n int) string {
	return p.WithScheme(SchemeApp).prefix(n)
}

// CachedFolder reports the folder cached under key.
func (s *Store) CachedFolder(key string) (Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}
