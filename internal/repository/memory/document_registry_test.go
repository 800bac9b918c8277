package memory

import (
	"fmt"
	"sync"
	"testing"

	"equibot-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func doc(id string) entity.Document {
	return entity.Document{Id: id, Title: "doc " + id}
}

func TestTenantIsolation(t *testing.T) {
	registry := NewDocumentRegistry()

	registry.Add("tenantA", []entity.Document{doc("a1"), doc("a2")})
	registry.Add("tenantB", []entity.Document{doc("b1")})

	listA := registry.List("tenantA")
	listB := registry.List("tenantB")

	assert.Len(t, listA, 2)
	assert.Len(t, listB, 1)
	for _, d := range listA {
		assert.NotEqual(t, "b1", d.Id)
	}
	assert.Equal(t, "b1", listB[0].Id)
}

func TestAppendOnlyGrowth(t *testing.T) {
	registry := NewDocumentRegistry()

	count := registry.Add("tenantA", []entity.Document{doc("d1")})
	assert.Equal(t, 1, count)

	count = registry.Add("tenantA", []entity.Document{doc("d2"), doc("d3")})
	assert.Equal(t, 3, count)

	list := registry.List("tenantA")
	assert.Len(t, list, 3)
	// insertion order preserved
	assert.Equal(t, "d1", list[0].Id)
	assert.Equal(t, "d3", list[2].Id)
}

func TestDuplicateIdsAreAppendedNotDeduped(t *testing.T) {
	registry := NewDocumentRegistry()

	registry.Add("tenantA", []entity.Document{doc("d1")})
	count := registry.Add("tenantA", []entity.Document{doc("d1")})

	assert.Equal(t, 2, count)
	assert.Len(t, registry.List("tenantA"), 2)
}

func TestUnknownTenantListIsEmpty(t *testing.T) {
	registry := NewDocumentRegistry()
	list := registry.List("nobody")
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 0, registry.Count("nobody"))
}

func TestDeleteTenantIsIdempotent(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add("tenantA", []entity.Document{doc("d1")})

	registry.DeleteTenant("tenantA")
	assert.Empty(t, registry.List("tenantA"))

	// second delete must not panic or change the outcome
	registry.DeleteTenant("tenantA")
	assert.Empty(t, registry.List("tenantA"))

	registry.DeleteTenant("never-existed")
}

func TestDeleteDocumentRemovesAtMostOne(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add("tenantA", []entity.Document{doc("d1"), doc("d1"), doc("d2")})

	registry.DeleteDocument("tenantA", "d1")
	list := registry.List("tenantA")
	assert.Len(t, list, 2)
	assert.Equal(t, "d1", list[0].Id)

	// unknown doc and unknown tenant are no-ops
	registry.DeleteDocument("tenantA", "missing")
	registry.DeleteDocument("other", "d1")
	assert.Len(t, registry.List("tenantA"), 2)
}

func TestListReturnsCopy(t *testing.T) {
	registry := NewDocumentRegistry()
	registry.Add("tenantA", []entity.Document{doc("d1")})

	list := registry.List("tenantA")
	list[0].Id = "mutated"

	assert.Equal(t, "d1", registry.List("tenantA")[0].Id)
}

func TestConcurrentAddAndListPerTenant(t *testing.T) {
	registry := NewDocumentRegistry()

	const writers = 8
	const batches = 50
	const batchSize = 4

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for b := 0; b < batches; b++ {
				batch := make([]entity.Document, batchSize)
				for i := range batch {
					batch[i] = doc(fmt.Sprintf("w%d-b%d-%d", w, b, i))
				}
				registry.Add("tenantA", batch)
			}
		}(w)
	}

	// concurrent readers must never observe a partially appended batch
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			n := len(registry.List("tenantA"))
			if n%batchSize != 0 {
				t.Errorf("observed partially appended batch: %d documents", n)
				return
			}
		}
	}()

	wg.Wait()
	<-done

	assert.Equal(t, writers*batches*batchSize, registry.Count("tenantA"))
}

func TestConcurrentTenantsDoNotInterfere(t *testing.T) {
	registry := NewDocumentRegistry()

	var wg sync.WaitGroup
	for tn := 0; tn < 4; tn++ {
		wg.Add(1)
		go func(tn int) {
			defer wg.Done()
			tenant := fmt.Sprintf("tenant-%d", tn)
			for i := 0; i < 100; i++ {
				registry.Add(tenant, []entity.Document{doc(fmt.Sprintf("%s-%d", tenant, i))})
			}
		}(tn)
	}
	wg.Wait()

	for tn := 0; tn < 4; tn++ {
		tenant := fmt.Sprintf("tenant-%d", tn)
		list := registry.List(tenant)
		assert.Len(t, list, 100)
		for _, d := range list {
			assert.Contains(t, d.Id, tenant)
		}
	}
}
