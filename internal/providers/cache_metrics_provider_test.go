package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mapCache struct {
	data    map[string][]byte
	cleared bool
}

func (c *mapCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mapCache) Set(key string, value []byte) {
	c.data[key] = value
}
func (c *mapCache) Clear() {
	c.data = map[string][]byte{}
	c.cleared = true
}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{"stats:1:2024-01-01": []byte("{}")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("stats:1:2024-01-01")
	cache.Get("stats:2:2024-01-01")
	cache.Get("stats:1:2024-01-01")

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_Delegates(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &mockMetrics{}}

	cache.Set("stats:3:2024-01-01", []byte("{}"))
	_, ok := inner.Get("stats:3:2024-01-01")
	assert.True(t, ok)

	cache.Clear()
	assert.True(t, inner.cleared)
	assert.Empty(t, inner.data)
}

func TestNewInstrumentedCacheProvider_DisabledIsNotWrapped(t *testing.T) {
	metrics := &mockMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Second), &cacheTestLogger{}, metrics)
	assert.IsType(t, &noopCache{}, c)

	c.Get("x")
	assert.Equal(t, 0, metrics.misses)
}

func TestNewInstrumentedCacheProvider_EnabledIsWrapped(t *testing.T) {
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{}, &mockMetrics{})
	assert.IsType(t, &MetricsCacheProvider{}, c)
}
