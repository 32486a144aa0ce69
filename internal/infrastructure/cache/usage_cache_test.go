package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(iccid string, used int64) *provider.UsageReport {
	return &provider.UsageReport{ICCID: iccid, Used: used, Total: 10240, Status: "active"}
}

func TestUsageCache_GetSet(t *testing.T) {
	c := NewUsageCache(10, time.Minute)
	defer c.Close()

	_, ok := c.Get("iccid-1")
	assert.False(t, ok)

	c.Set("iccid-1", report("iccid-1", 100))
	got, ok := c.Get("iccid-1")
	require.True(t, ok)
	assert.Equal(t, int64(100), got.Used)

	// overwriting refreshes the value in place
	c.Set("iccid-1", report("iccid-1", 200))
	got, ok = c.Get("iccid-1")
	require.True(t, ok)
	assert.Equal(t, int64(200), got.Used)
	assert.Equal(t, 1, c.Len())
}

func TestUsageCache_TTLExpiry(t *testing.T) {
	c := NewUsageCache(10, 20*time.Millisecond)
	defer c.Close()

	c.Set("iccid-1", report("iccid-1", 100))
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("iccid-1")
	assert.False(t, ok)
}

func TestUsageCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewUsageCache(3, time.Minute)
	defer c.Close()

	for i := 1; i <= 3; i++ {
		iccid := fmt.Sprintf("iccid-%d", i)
		c.Set(iccid, report(iccid, int64(i)))
	}

	// touch iccid-1 so iccid-2 becomes the eviction candidate
	_, ok := c.Get("iccid-1")
	require.True(t, ok)

	c.Set("iccid-4", report("iccid-4", 4))

	_, ok = c.Get("iccid-2")
	assert.False(t, ok, "least recently used entry must be evicted")
	for _, iccid := range []string{"iccid-1", "iccid-3", "iccid-4"} {
		_, ok := c.Get(iccid)
		assert.True(t, ok, "%s must survive eviction", iccid)
	}
	assert.Equal(t, 3, c.Len())
}

func TestUsageCache_CapacityNeverExceeded(t *testing.T) {
	c := NewUsageCache(5, time.Minute)
	defer c.Close()

	for i := 0; i < 100; i++ {
		iccid := fmt.Sprintf("iccid-%d", i)
		c.Set(iccid, report(iccid, int64(i)))
		assert.LessOrEqual(t, c.Len(), 5)
	}
}
