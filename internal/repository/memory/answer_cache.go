package memory

import (
	"fmt"
	"time"

	"equibot-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// AnswerCache keeps recent successful rag responses per tenant+query so
// repeated questions skip the engine round trip. Only definite successes are
// cached; failures are never masked by a cached answer.
type AnswerCache struct {
	cache *cache.Cache
}

func NewAnswerCache(ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *AnswerCache) Get(tenantID, query string) (*dto.QueryResponse, bool) {
	if x, found := c.cache.Get(key(tenantID, query)); found {
		return x.(*dto.QueryResponse), true
	}
	return nil, false
}

func (c *AnswerCache) Set(tenantID, query string, res *dto.QueryResponse) {
	c.cache.Set(key(tenantID, query), res, cache.DefaultExpiration)
}

func (c *AnswerCache) DeleteTenant(tenantID string) {
	prefix := tenantPrefix(tenantID)
	for k := range c.cache.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			c.cache.Delete(k)
		}
	}
}

// Keys are length-prefixed so no choice of tenant id and query can produce
// another tenant's key. A plain separator would be ambiguous because JSON
// strings may contain any byte, including the separator itself.
func key(tenantID, query string) string {
	return tenantPrefix(tenantID) + query
}

func tenantPrefix(tenantID string) string {
	return fmt.Sprintf("%d:%s:", len(tenantID), tenantID)
}
