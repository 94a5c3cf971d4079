package store

import (
	"cmp"

	"github.com/google/btree"

	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/observability"
)

// btreeDegree is the branching factor of the auxiliary indices.
const btreeDegree = 16

// nameKey orders affiliations by name. Names need not be unique, so the id
// breaks ties and every live affiliation owns exactly one key.
type nameKey struct {
	name Name
	id   AffiliationID
}

func lessName(a, b nameKey) bool {
	if c := cmp.Compare(a.name, b.name); c != 0 {
		return c < 0
	}
	return a.id < b.id
}

// coordKey orders affiliations by [geo.Compare]. Several affiliations may
// share a point; the id breaks ties.
type coordKey struct {
	coord geo.Coord
	id    AffiliationID
}

func lessCoord(a, b coordKey) bool {
	if c := geo.Compare(a.coord, b.coord); c != 0 {
		return c < 0
	}
	return a.id < b.id
}

func newNameIndex() *btree.BTreeG[nameKey] {
	return btree.NewG(btreeDegree, lessName)
}

func newCoordIndex() *btree.BTreeG[coordKey] {
	return btree.NewG(btreeDegree, lessCoord)
}

// cacheState is the state of an orderingCache.
type cacheState int

const (
	// cacheValid means ids mirrors the index.
	cacheValid cacheState = iota
	// cacheStale means the index changed since ids was built.
	cacheStale
)

// orderingCache is a linearization of one ordered index. It is derived,
// never authoritative: writes to the index call invalidate, and the next
// read rebuilds it.
type orderingCache struct {
	name  string
	state cacheState
	ids   []AffiliationID
}

func newOrderingCache(name string) orderingCache {
	return orderingCache{name: name, state: cacheValid, ids: []AffiliationID{}}
}

func (c *orderingCache) invalidate() {
	if c.state == cacheStale {
		return
	}
	c.state = cacheStale
	c.ids = nil
	observability.Cache().OnCacheInvalidate(c.name)
}

// get returns a copy of the cached ids, calling fill to rebuild them first
// if the cache is stale. fill appends ids in index order.
func (c *orderingCache) get(size int, fill func(ids []AffiliationID) []AffiliationID) []AffiliationID {
	if c.state == cacheValid {
		observability.Cache().OnCacheHit(c.name)
	} else {
		observability.Cache().OnCacheMiss(c.name)
		c.ids = fill(make([]AffiliationID, 0, size))
		c.state = cacheValid
		observability.Cache().OnCacheRebuild(c.name, len(c.ids))
	}
	out := make([]AffiliationID, len(c.ids))
	copy(out, c.ids)
	return out
}
