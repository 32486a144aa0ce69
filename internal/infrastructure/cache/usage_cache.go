package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
)

// UsageCache is a bounded in-memory TTL cache for SIM usage reports, keyed by
// ICCID. Entries expire after the configured TTL; when the cache is full the
// least recently used entry is evicted. Both bounds keep memory flat no
// matter how many distinct ICCIDs are queried.
type UsageCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	stop chan struct{}
	once sync.Once
}

type usageEntry struct {
	iccid     string
	report    *provider.UsageReport
	expiresAt time.Time
}

// NewUsageCache creates a usage cache with the given capacity and TTL and
// starts a janitor goroutine that sweeps expired entries.
func NewUsageCache(capacity int, ttl time.Duration) *UsageCache {
	if capacity <= 0 {
		capacity = 1
	}
	c := &UsageCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		stop:     make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the cached report for an ICCID, if present and fresh.
func (c *UsageCache) Get(iccid string) (*provider.UsageReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[iccid]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*usageEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeLocked(elem)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return entry.report, true
}

// Set stores a report for an ICCID, evicting the least recently used entry
// when the cache is at capacity.
func (c *UsageCache) Set(iccid string, report *provider.UsageReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if elem, ok := c.entries[iccid]; ok {
		entry := elem.Value.(*usageEntry)
		entry.report = report
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	for len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
	}

	elem := c.order.PushFront(&usageEntry{iccid: iccid, report: report, expiresAt: expiresAt})
	c.entries[iccid] = elem
}

// Len returns the number of cached entries, including not-yet-swept expired ones.
func (c *UsageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the janitor goroutine.
func (c *UsageCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *UsageCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*usageEntry)
	c.order.Remove(elem)
	delete(c.entries, entry.iccid)
}

func (c *UsageCache) janitor() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *UsageCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*usageEntry).expiresAt) {
			c.removeLocked(elem)
		}
		elem = prev
	}
}
