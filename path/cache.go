package path

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DecodeCache memoizes FromToken.  Persisted index definitions carry
// the same context token on every use, so decoding is cached by token
// text.  Cached chains are shared between callers and must be treated
// as read-only.
type DecodeCache struct {
	lru    *lru.Cache[string, Chain]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewDecodeCache returns a cache holding up to size decoded chains.
// Pass a nil registerer to keep the cache's metrics unregistered.
func NewDecodeCache(size int, registerer prometheus.Registerer) (*DecodeCache, error) {
	cache, err := lru.New[string, Chain](size)
	if err != nil {
		return nil, err
	}
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	return &DecodeCache{
		lru: cache,
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "context_token_cache_hits_total",
			Help: "Number of token lookups served from the cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "context_token_cache_misses_total",
			Help: "Number of token lookups that had to decode.",
		}),
	}, nil
}

// FromToken decodes token, serving repeats from the cache.  Decode
// failures are returned without being cached.
func (c *DecodeCache) FromToken(token string) (Chain, error) {
	if chain, ok := c.lru.Get(token); ok {
		c.hits.Inc()
		return chain, nil
	}
	chain, err := FromToken(token)
	if err != nil {
		return nil, err
	}
	c.lru.Add(token, chain)
	c.misses.Inc()
	return chain, nil
}
