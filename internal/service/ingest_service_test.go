package service

import (
	"context"
	"testing"

	"equibot-be/internal/dto"
	"equibot-be/internal/entity"
	"equibot-be/internal/pkg/apperror"
	"equibot-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPublisher struct {
	payloads [][]byte
}

func (p *capturedPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newIngestFixture(gw *fakeGateway) (IIngestService, *memory.DocumentRegistry, *capturedPublisher) {
	registry := memory.NewDocumentRegistry()
	publisher := &capturedPublisher{}
	svc := NewIngestService(registry, gw, publisher, nil, nopLogger{}, "faq")
	return svc, registry, publisher
}

func TestIngestAppendsLocallyThenForwards(t *testing.T) {
	gw := &fakeGateway{}
	svc, registry, publisher := newIngestFixture(gw)

	res, err := svc.Ingest(context.Background(), &dto.IngestRequest{
		TenantId:    "tenantA",
		DatasetType: "products",
		Documents:   []entity.Document{{Id: "d1"}, {Id: "d2"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "ingested", res.Status)
	assert.Equal(t, 2, res.Count)

	assert.Equal(t, 2, registry.Count("tenantA"))
	require.Len(t, gw.ingestCalls, 1)
	assert.Equal(t, "tenantA", gw.ingestCalls[0].tenantID)
	assert.Equal(t, "products", gw.ingestCalls[0].datasetType)
	assert.Len(t, gw.ingestCalls[0].docs, 2)
	assert.Len(t, publisher.payloads, 1)
}

func TestIngestDefaultsDatasetType(t *testing.T) {
	gw := &fakeGateway{}
	svc, _, _ := newIngestFixture(gw)

	_, err := svc.Ingest(context.Background(), &dto.IngestRequest{
		TenantId:  "tenantA",
		Documents: []entity.Document{{Id: "d1"}},
	})

	require.NoError(t, err)
	require.Len(t, gw.ingestCalls, 1)
	assert.Equal(t, "faq", gw.ingestCalls[0].datasetType)
}

func TestIngestRemoteFailureDoesNotRollBackLocalAppend(t *testing.T) {
	gw := &fakeGateway{ingestErr: apperror.NewRemoteError(500, `{"error":"ingest_failed"}`)}
	svc, registry, _ := newIngestFixture(gw)

	res, err := svc.Ingest(context.Background(), &dto.IngestRequest{
		TenantId:  "tenantA",
		Documents: []entity.Document{{Id: "d1"}},
	})

	require.Error(t, err)
	assert.Nil(t, res)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindRemoteError, appErr.Kind)

	// the registry is allowed to run ahead of the remote index
	assert.Equal(t, 1, registry.Count("tenantA"))
}

func TestIngestValidation(t *testing.T) {
	gw := &fakeGateway{}
	svc, registry, _ := newIngestFixture(gw)

	for _, req := range []*dto.IngestRequest{
		{TenantId: "", Documents: []entity.Document{{Id: "d1"}}},
		{TenantId: "tenantA", Documents: nil},
		{TenantId: "tenantA", Documents: []entity.Document{}},
	} {
		_, err := svc.Ingest(context.Background(), req)
		require.Error(t, err)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
	}

	assert.Equal(t, 0, registry.Count("tenantA"))
	assert.Empty(t, gw.ingestCalls)
}

func TestLocalDeletesAreLocalOnly(t *testing.T) {
	gw := &fakeGateway{}
	svc, registry, _ := newIngestFixture(gw)

	registry.Add("tenantA", []entity.Document{{Id: "d1"}, {Id: "d2"}})

	svc.DeleteDocument("tenantA", "d1")
	assert.Equal(t, 1, registry.Count("tenantA"))

	svc.DeleteTenant("tenantA")
	assert.Equal(t, 0, registry.Count("tenantA"))

	// local delete must not touch the engine
	assert.Empty(t, gw.deletedTenants)
	assert.Empty(t, gw.deletedDocs)
}

func TestRemoteDeletesForwardOnly(t *testing.T) {
	gw := &fakeGateway{}
	svc, registry, _ := newIngestFixture(gw)
	registry.Add("tenantA", []entity.Document{{Id: "d1"}})

	require.NoError(t, svc.DeleteTenantRemote(context.Background(), "tenantA"))
	require.NoError(t, svc.DeleteDocumentRemote(context.Background(), "tenantA", "d1"))

	assert.Equal(t, []string{"tenantA"}, gw.deletedTenants)
	assert.Equal(t, []string{"tenantA/d1"}, gw.deletedDocs)
	// remote delete leaves the registry untouched
	assert.Equal(t, 1, registry.Count("tenantA"))
}

func TestListLocalAndRemoteMayDiverge(t *testing.T) {
	gw := &fakeGateway{remoteDocs: []map[string]interface{}{{"id": "d1"}, {"id": "d2"}}}
	svc, registry, _ := newIngestFixture(gw)
	registry.Add("tenantA", []entity.Document{{Id: "d1"}})

	local := svc.ListLocal("tenantA")
	remote, err := svc.ListRemote(context.Background(), "tenantA")

	require.NoError(t, err)
	assert.Len(t, local, 1)
	assert.Len(t, remote, 2)
}
