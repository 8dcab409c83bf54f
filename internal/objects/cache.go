package objects

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/KostasZigo/gitcas/internal/digest"
)

var _ Reader = &CachedReader{}

// CachedReader is a least-recently-used cache of decoded objects in front of
// another Reader. Objects never change once stored, so entries are never
// invalidated.
type CachedReader struct {
	c *lru.Cache // digest.Digest->Object
	r Reader
}

// NewCachedReader caches up to size objects read from r.
func NewCachedReader(r Reader, size int) (*CachedReader, error) {
	c, err := lru.New(size)
	return &CachedReader{c: c, r: r}, err
}

// Read returns the cached object for hash, reading through on a miss.
// Failed reads are not cached.
func (cr *CachedReader) Read(hash digest.Digest) (Object, error) {
	if obj, ok := cr.c.Get(hash); ok {
		return obj.(Object), nil
	}
	obj, err := cr.r.Read(hash)
	if err != nil {
		return nil, err
	}
	cr.c.Add(hash, obj)
	return obj, nil
}

// ReadTree reads through the cache and requires a tree.
func (cr *CachedReader) ReadTree(hash digest.Digest) (*Tree, error) {
	return readAs[*Tree](cr, hash, KindTree)
}

// Len reports how many objects are cached.
func (cr *CachedReader) Len() int {
	return cr.c.Len()
}
