package providers

import (
	"github.com/coocood/freecache"
	"smokeless/internal/structures"
)

// CacheProviderInterface holds rendered API payloads. Keys carry the store
// revision, so a mutation never serves a stale payload; Clear only frees
// memory after the data set is gone.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Payload cache disabled")
		return &noopCache{}
	}

	// freecache works in whole seconds
	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Payload cache: %dMB, ttl %ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:  freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttl); err != nil {
		c.logger.Warnf(TypeApp, "Payload for %s not cached: %s", key, err)
	}
}

func (c *CacheProvider) Clear() {
	c.logger.Debugf(TypeApp, "Dropping %d cached payloads", c.cache.EntryCount())
	c.cache.Clear()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Clear()                      {}
