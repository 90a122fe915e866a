package vehicle

import (
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SpriteCache remembers sprite sizes per engine so that moving vehicles do
// not go back to the engine callbacks every tick.
type SpriteCache struct {
	engines EngineCallbacks
	cache   *lru.Cache[EngineID, image.Point]

	misses atomic.Uint64
}

// NewSpriteCache returns a cache of at most size engines.
func NewSpriteCache(engines EngineCallbacks, size int) (*SpriteCache, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	c, err := lru.New[EngineID, image.Point](size)
	if err != nil {
		return nil, err
	}
	return &SpriteCache{engines: engines, cache: c}, nil
}

// Size returns the sprite size of engine e in virtual units.
func (c *SpriteCache) Size(e EngineID) image.Point {
	if sz, ok := c.cache.Get(e); ok {
		return sz
	}
	c.misses.Add(1)
	w, h := c.engines.SpriteSize(e)
	sz := image.Pt(w, h)
	c.cache.Add(e, sz)
	return sz
}

// Forget drops engine e, for example after its graphics were reloaded.
func (c *SpriteCache) Forget(e EngineID) { c.cache.Remove(e) }

// Misses returns how many lookups reached the engine callbacks.
func (c *SpriteCache) Misses() uint64 { return c.misses.Load() }
