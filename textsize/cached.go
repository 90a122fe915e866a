package textsize

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

type cacheKey struct {
	text string
	size FontSize
}

// Cached memoizes the widths returned by another Measurer.
//
// Keys are NFC-normalized, so canonically equivalent strings (a precomposed
// "é" and "e" followed by a combining accent) share one entry and measure the
// same. The wrapped measurer always sees the normalized form.
type Cached struct {
	m     Measurer
	cache *lru.Cache[cacheKey, int]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCached wraps m with an LRU cache of at most size entries.
func NewCached(m Measurer, size int) (*Cached, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	c, err := lru.New[cacheKey, int](size)
	if err != nil {
		return nil, err
	}
	return &Cached{m: m, cache: c}, nil
}

// Width implements Measurer.
func (c *Cached) Width(text string, size FontSize) int {
	if text == "" {
		return 0
	}
	key := cacheKey{text: norm.NFC.String(text), size: tier(size)}
	if w, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return w
	}
	c.misses.Add(1)
	w := c.m.Width(key.text, key.size)
	c.cache.Add(key, w)
	return w
}

// LineHeight implements Measurer.
func (c *Cached) LineHeight(size FontSize) int {
	return c.m.LineHeight(size)
}

// Purge drops every cached width, for example after a font change.
func (c *Cached) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached widths.
func (c *Cached) Len() int { return c.cache.Len() }

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
