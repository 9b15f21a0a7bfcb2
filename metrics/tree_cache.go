package metrics

import (
	"expvar"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/timpalpant/hearthnash"
)

var (
	cacheHits    = expvar.NewInt("tree_cache/hits")
	cacheMisses  = expvar.NewInt("tree_cache/misses")
	cacheHitRate = expvar.NewFloat("tree_cache/hit_rate")
)

type treeKey struct {
	match uuid.UUID
	rules hearthnash.FormatRules
}

// TreeCache holds recently evaluated match trees, so that several metrics
// measured over the same matches only evaluate each match once.
// It is safe for concurrent use.
type TreeCache struct {
	evaluator hearthnash.Evaluator
	cache     *lru.Cache
}

// NewTreeCache returns a TreeCache holding at most size trees.
func NewTreeCache(size int, evaluator hearthnash.Evaluator) (*TreeCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &TreeCache{evaluator: evaluator, cache: cache}, nil
}

// Get returns the tree of the given match under the given rules,
// evaluating it if it is not in the cache.
func (c *TreeCache) Get(m Match, rules hearthnash.FormatRules) (*hearthnash.Tree, error) {
	key := treeKey{m.ID, rules}
	if cached, ok := c.cache.Get(key); ok {
		cacheHits.Add(1)
		updateHitRate()
		return cached.(*hearthnash.Tree), nil
	}

	cacheMisses.Add(1)
	updateHitRate()
	tree, err := c.evaluator.Evaluate(m.StartingDecks(), rules, m.Meta)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, tree)
	return tree, nil
}

// Len returns the number of trees in the cache.
func (c *TreeCache) Len() int {
	return c.cache.Len()
}

func updateHitRate() {
	hits, misses := cacheHits.Value(), cacheMisses.Value()
	cacheHitRate.Set(float64(hits) / float64(hits+misses))
}
