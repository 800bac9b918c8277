package memory

import (
	"testing"
	"time"

	"equibot-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestAnswerCacheKeyedByTenantAndQuery(t *testing.T) {
	c := NewAnswerCache(time.Minute)

	c.Set("tenantA", "q1", &dto.QueryResponse{Answer: "a1", StrategyUsed: "rag"})

	got, found := c.Get("tenantA", "q1")
	assert.True(t, found)
	assert.Equal(t, "a1", got.Answer)

	_, found = c.Get("tenantB", "q1")
	assert.False(t, found, "cache must not leak across tenants")

	_, found = c.Get("tenantA", "q2")
	assert.False(t, found)
}

// Tenant ids and queries come off the wire as JSON strings, so any byte can
// appear in either. No combination may map onto another tenant's entry.
func TestAnswerCacheSeparatorBytesDoNotCollide(t *testing.T) {
	c := NewAnswerCache(time.Minute)

	c.Set("a\x00b", "c", &dto.QueryResponse{Answer: "private to a\x00b"})

	_, found := c.Get("a", "b\x00c")
	assert.False(t, found, "cache must not leak across tenants")

	c.Set("a", "b\x00c", &dto.QueryResponse{Answer: "private to a"})

	got, found := c.Get("a\x00b", "c")
	assert.True(t, found)
	assert.Equal(t, "private to a\x00b", got.Answer)
}

func TestAnswerCacheDeleteTenantLeavesSimilarTenantsAlone(t *testing.T) {
	c := NewAnswerCache(time.Minute)
	c.Set("a", "q1", &dto.QueryResponse{Answer: "a1"})
	c.Set("a\x00b", "q1", &dto.QueryResponse{Answer: "ab1"})

	c.DeleteTenant("a")

	_, found := c.Get("a", "q1")
	assert.False(t, found)
	got, found := c.Get("a\x00b", "q1")
	assert.True(t, found)
	assert.Equal(t, "ab1", got.Answer)
}

func TestAnswerCacheDeleteTenant(t *testing.T) {
	c := NewAnswerCache(time.Minute)
	c.Set("tenantA", "q1", &dto.QueryResponse{Answer: "a1"})
	c.Set("tenantA", "q2", &dto.QueryResponse{Answer: "a2"})
	c.Set("tenantB", "q1", &dto.QueryResponse{Answer: "b1"})

	c.DeleteTenant("tenantA")

	_, found := c.Get("tenantA", "q1")
	assert.False(t, found)
	_, found = c.Get("tenantA", "q2")
	assert.False(t, found)
	_, found = c.Get("tenantB", "q1")
	assert.True(t, found)
}
