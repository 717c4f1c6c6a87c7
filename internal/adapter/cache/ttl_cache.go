package cache

import (
	"sync"
	"time"

	"github.com/example/wismo-service/internal/domain"
)

// DefaultTTL matches the warehouse refresh cadence.
const DefaultTTL = time.Hour

type entry struct {
	orders     []domain.OrderNumber
	insertedAt time.Time
}

// TTLOrderCache is a process-wide cache of resolved order trees. Entries
// expire lazily on access; CleanupExpired is an optional explicit sweep.
// One mutex guards everything — entries are small and reads dominate.
type TTLOrderCache struct {
	mu    sync.Mutex
	store map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// Stats is a point-in-time snapshot of cache contents.
type Stats struct {
	Total   int           `json:"total_entries"`
	Valid   int           `json:"valid_entries"`
	Expired int           `json:"expired_entries"`
	TTL     time.Duration `json:"ttl"`
	Keys    []string      `json:"cache_keys"`
}

func NewTTLOrderCache(ttl time.Duration) *TTLOrderCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLOrderCache{
		store: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *TTLOrderCache) Get(key string) ([]domain.OrderNumber, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.store, key)
		return nil, false
	}
	return e.orders, true
}

func (c *TTLOrderCache) Set(key string, orders []domain.OrderNumber) {
	c.mu.Lock()
	c.store[key] = entry{orders: orders, insertedAt: c.now()}
	c.mu.Unlock()
}

func (c *TTLOrderCache) Delete(key string) {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
}

func (c *TTLOrderCache) Clear() {
	c.mu.Lock()
	c.store = make(map[string]entry)
	c.mu.Unlock()
}

// CleanupExpired removes every expired entry and reports how many it removed.
func (c *TTLOrderCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for key, e := range c.store {
		if now.Sub(e.insertedAt) >= c.ttl {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

func (c *TTLOrderCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	s := Stats{Total: len(c.store), TTL: c.ttl, Keys: make([]string, 0, len(c.store))}
	for key, e := range c.store {
		s.Keys = append(s.Keys, key)
		if now.Sub(e.insertedAt) < c.ttl {
			s.Valid++
		}
	}
	s.Expired = s.Total - s.Valid
	return s
}

var _ domain.OrderCache = (*TTLOrderCache)(nil)
