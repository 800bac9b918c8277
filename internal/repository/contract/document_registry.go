package contract

import (
	"equibot-be/internal/entity"
)

// IDocumentRegistry is the tenant-partitioned store of ingested documents,
// used for listing and deletion independent of the remote index. The registry
// is the source of truth for display; the remote index is the source of truth
// for retrieval. The two may legitimately diverge.
type IDocumentRegistry interface {
	// Add appends the whole batch atomically and returns the tenant's new
	// count. Duplicate ids are appended, never deduped or upserted.
	Add(tenantID string, docs []entity.Document) int

	// List returns the tenant's documents in insertion order. Unknown tenant
	// yields an empty slice, not an error.
	List(tenantID string) []entity.Document

	// Count returns the tenant's current document count.
	Count(tenantID string) int

	// DeleteTenant drops the tenant's entry. Idempotent.
	DeleteTenant(tenantID string)

	// DeleteDocument removes at most one entry matching docID. Unknown tenant
	// or document is a no-op.
	DeleteDocument(tenantID, docID string)
}
