package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceCacheLookup(t *testing.T) {
	cache := NewPriceCache()

	_, found := cache.Lookup(1, 1)
	assert.False(t, found, "empty cache resolves nothing")

	cache.Replace(map[PriceKey]float64{
		{CategoryID: 1, ServiceID: 10}: 500,
		{CategoryID: 1, ServiceID: 11}: 300,
		{CategoryID: 2, ServiceID: 10}: 800,
	})
	assert.Equal(t, 3, cache.Len())

	price, found := cache.Lookup(1, 10)
	assert.True(t, found)
	assert.Equal(t, 500.0, price)

	price, found = cache.Lookup(2, 10)
	assert.True(t, found)
	assert.Equal(t, 800.0, price)

	_, found = cache.Lookup(3, 10)
	assert.False(t, found)
}

func TestPriceCacheReplaceDropsStaleEntries(t *testing.T) {
	cache := NewPriceCache()
	cache.Replace(map[PriceKey]float64{
		{CategoryID: 1, ServiceID: 10}: 500,
	})
	cache.Replace(map[PriceKey]float64{
		{CategoryID: 9, ServiceID: 9}: 100,
	})

	_, found := cache.Lookup(1, 10)
	assert.False(t, found, "old snapshot must not survive a replace")

	price, found := cache.Lookup(9, 9)
	assert.True(t, found)
	assert.Equal(t, 100.0, price)
	assert.Equal(t, 1, cache.Len())
}

func TestPriceCacheLookupItem(t *testing.T) {
	cache := NewPriceCache()
	cache.Replace(map[PriceKey]float64{
		{CategoryID: 42, ServiceID: 0}: 20000,
	})

	price, found := cache.LookupItem(42)
	assert.True(t, found)
	assert.Equal(t, 20000.0, price)
}
