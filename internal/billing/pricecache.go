package billing

import (
	"sync"

	"github.com/google/btree"
)

// PriceKey addresses one cell of a catalog price table. Two-axis catalogs
// (laundry: category x service) use both fields; single-axis catalogs keep
// ServiceID at zero.
type PriceKey struct {
	CategoryID int64
	ServiceID  int64
}

type priceEntry struct {
	key   PriceKey
	price float64
}

func priceLess(a, b priceEntry) bool {
	if a.key.CategoryID != b.key.CategoryID {
		return a.key.CategoryID < b.key.CategoryID
	}
	return a.key.ServiceID < b.key.ServiceID
}

// PriceCache is a read-only snapshot of catalog prices. It is loaded from
// the database at startup and replaced wholesale when the catalog changes;
// lookups between refreshes see a consistent table.
type PriceCache struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[priceEntry]
}

func NewPriceCache() *PriceCache {
	return &PriceCache{tree: btree.NewG(8, priceLess)}
}

// Replace swaps the whole snapshot.
func (c *PriceCache) Replace(prices map[PriceKey]float64) {
	tree := btree.NewG(8, priceLess)
	for k, p := range prices {
		tree.ReplaceOrInsert(priceEntry{key: k, price: p})
	}
	c.mu.Lock()
	c.tree = tree
	c.mu.Unlock()
}

// Lookup resolves one price cell. The second return reports whether the
// cell exists; estimate callers treat a miss as a zero contribution.
func (c *PriceCache) Lookup(categoryID, serviceID int64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.tree.Get(priceEntry{key: PriceKey{CategoryID: categoryID, ServiceID: serviceID}})
	if !ok {
		return 0, false
	}
	return e.price, true
}

// LookupItem resolves a single-axis catalog price.
func (c *PriceCache) LookupItem(itemID int64) (float64, bool) {
	return c.Lookup(itemID, 0)
}

// Len reports the number of cached price cells.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Len()
}
