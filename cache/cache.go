// Package cache shares generated rrect meshes.
//
// Many surfaces use the same corner styling at the same size. A Meshes
// cache generates each distinct mesh once and hands the same *rrect.Mesh to
// every caller that asks for it again.
//
//	c := cache.New(64)
//	mesh, err := c.Get(cache.Key{
//	    Radii:  rrect.UniformRadii(12),
//	    Bounds: rrect.NDC(),
//	    Size:   rrect.Size(w, h),
//	})
//
// Meshes is safe for concurrent use. It must not be copied after creation.
package cache

import (
	"cmp"
	"slices"
	"sync"

	"github.com/gogpu/rrect"
)

// Key identifies a mesh by the inputs of rrect.Generator.Generate.
type Key struct {
	Radii  rrect.CornerRadii
	Bounds rrect.Bounds
	Size   rrect.PixelSize
	Z      float32
}

// Meshes is an LRU cache of generated meshes with a soft limit.
// When the cache grows past the limit, the least recently used quarter of
// the entries is evicted.
//
// Cached meshes are shared and must not be modified.
type Meshes struct {
	mu        sync.Mutex
	gen       *rrect.Generator
	entries   map[Key]*entry
	softLimit int
	tick      int64 // monotonic access counter

	hits, misses, evictions uint64
}

type entry struct {
	mesh  *rrect.Mesh
	atime int64
}

// New creates a cache holding about softLimit meshes. A softLimit of 0
// means unlimited. opts configure the generator used on a miss.
func New(softLimit int, opts ...rrect.Option) *Meshes {
	return &Meshes{
		gen:       rrect.NewGenerator(opts...),
		entries:   make(map[Key]*entry),
		softLimit: max(softLimit, 0),
	}
}

// Get returns the mesh for k, generating it on a miss. Generation errors
// are returned and not cached.
func (c *Meshes) Get(k Key) (*rrect.Mesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[k]; ok {
		e.atime = c.tick
		c.hits++
		return e.mesh, nil
	}
	c.misses++

	// The generator keeps scratch state, so it only runs under c.mu.
	mesh, err := c.gen.Generate(k.Radii, k.Bounds, k.Size, k.Z)
	if err != nil {
		return nil, err
	}
	c.entries[k] = &entry{mesh: mesh, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return mesh, nil
}

// Contains reports whether the mesh for k is cached without touching its
// access time.
func (c *Meshes) Contains(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[k]
	return ok
}

// Delete removes the mesh for k. It reports whether it was cached.
func (c *Meshes) Delete(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[k]; !ok {
		return false
	}
	delete(c.entries, k)
	return true
}

// Clear removes all meshes. Statistics are kept.
func (c *Meshes) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.tick = 0
}

// Len returns the number of cached meshes.
func (c *Meshes) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Meshes) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// evictOldest shrinks the cache to three quarters of the soft limit.
// Caller must hold c.mu.
func (c *Meshes) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   Key
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, atime: e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })

	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
	c.evictions += uint64(n)
	rrect.Logger().Debug("cache: meshes evicted", "count", n, "remaining", len(c.entries))
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of cached meshes.
	Len int
	// Capacity is the soft limit, 0 when unlimited.
	Capacity int
	// Hits is the number of Get calls served from the cache.
	Hits uint64
	// Misses is the number of Get calls that generated a mesh.
	Misses uint64
	// HitRate is Hits over all Get calls, 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of evicted meshes.
	Evictions uint64
}
