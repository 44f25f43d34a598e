package web

// cacheEntry is a previously sent frame or patch.
type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a ring of the last frames sent to the clients, so that
// repeated frames are sent as an index into the cache rather than
// the frame itself.
type cache struct {
	cache []cacheEntry
	idx   int
}

func newCache(size int) *cache {
	return &cache{cache: make([]cacheEntry, size)}
}

// add adds the data to the cache, replacing the oldest entry, and
// returns its index.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.cache[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.cache)
	return i
}

// index returns the index of the entry with the given hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.cache {
		if len(e.data) > 0 && e.hash == hash {
			return i
		}
	}

	return -1
}
