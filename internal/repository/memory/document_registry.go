package memory

import (
	"sync"

	"equibot-be/internal/entity"
	"equibot-be/internal/repository/contract"
)

// DocumentRegistry is the in-memory registry implementation. Lock granularity
// is per tenant: operations on different tenants never block each other, and
// a batch append is atomic with respect to a concurrent List on the same
// tenant. No durability: the registry is volatile by design.
type DocumentRegistry struct {
	mu      sync.RWMutex // guards the bucket map only
	buckets map[string]*tenantBucket
}

type tenantBucket struct {
	mu   sync.RWMutex
	docs []entity.Document
}

var _ contract.IDocumentRegistry = &DocumentRegistry{}

func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{
		buckets: make(map[string]*tenantBucket),
	}
}

func (r *DocumentRegistry) bucket(tenantID string, create bool) *tenantBucket {
	r.mu.RLock()
	b, ok := r.buckets[tenantID]
	r.mu.RUnlock()
	if ok || !create {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok = r.buckets[tenantID]; ok {
		return b
	}
	b = &tenantBucket{}
	r.buckets[tenantID] = b
	return b
}

func (r *DocumentRegistry) Add(tenantID string, docs []entity.Document) int {
	b := r.bucket(tenantID, true)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs = append(b.docs, docs...)
	return len(b.docs)
}

func (r *DocumentRegistry) List(tenantID string) []entity.Document {
	b := r.bucket(tenantID, false)
	if b == nil {
		return []entity.Document{}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entity.Document, len(b.docs))
	copy(out, b.docs)
	return out
}

func (r *DocumentRegistry) Count(tenantID string) int {
	b := r.bucket(tenantID, false)
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.docs)
}

func (r *DocumentRegistry) DeleteTenant(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buckets, tenantID)
}

func (r *DocumentRegistry) DeleteDocument(tenantID, docID string) {
	b := r.bucket(tenantID, false)
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, doc := range b.docs {
		if doc.Id == docID {
			b.docs = append(b.docs[:i], b.docs[i+1:]...)
			return
		}
	}
}
