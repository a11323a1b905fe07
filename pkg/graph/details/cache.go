package details

import (
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	lru "github.com/hashicorp/golang-lru"
)

// Cache holds full detail entities by id. Implementations must be safe for concurrent use.
type Cache[K ids.ID, T any] interface {
	Get(id K) (T, bool)
	Set(id K, entity T)
}

const DefaultCacheSize int = 10000

type lruCache[K ids.ID, T any] struct {
	entries *lru.Cache
}

// NewLRUCache returns a cache that keeps at most size entities, evicting the least
// recently used when full
func NewLRUCache[K ids.ID, T any](size int) (Cache[K, T], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &lruCache[K, T]{entries: entries}, nil
}

func (c *lruCache[K, T]) Get(id K) (T, bool) {
	var zero T

	v, ok := c.entries.Get(id)
	if !ok {
		return zero, false
	}

	entity, ok := v.(T)
	if !ok {
		return zero, false
	}

	return entity, true
}

func (c *lruCache[K, T]) Set(id K, entity T) {
	c.entries.Add(id, entity)
}
