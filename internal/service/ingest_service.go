package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"equibot-be/internal/dto"
	"equibot-be/internal/entity"
	"equibot-be/internal/pkg/apperror"
	"equibot-be/internal/pkg/logger"
	"equibot-be/internal/repository/contract"
	"equibot-be/internal/repository/memory"
	"equibot-be/pkg/sidecar"
)

// IIngestService owns the ingestion path: it keeps the local registry and
// forwards documents to the retrieval engine for indexing.
type IIngestService interface {
	Ingest(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error)
	ListLocal(tenantID string) []entity.Document
	ListRemote(ctx context.Context, tenantID string) ([]map[string]interface{}, error)
	DeleteTenant(tenantID string)
	DeleteDocument(tenantID, docID string)
	DeleteTenantRemote(ctx context.Context, tenantID string) error
	DeleteDocumentRemote(ctx context.Context, tenantID, docID string) error
}

type ingestService struct {
	registry           contract.IDocumentRegistry
	gateway            sidecar.Gateway
	publisherService   IPublisherService
	answerCache        *memory.AnswerCache // nil when caching is disabled
	logger             logger.ILogger
	defaultDatasetType string
}

func NewIngestService(
	registry contract.IDocumentRegistry,
	gateway sidecar.Gateway,
	publisherService IPublisherService,
	answerCache *memory.AnswerCache,
	sysLogger logger.ILogger,
	defaultDatasetType string,
) IIngestService {
	return &ingestService{
		registry:           registry,
		gateway:            gateway,
		publisherService:   publisherService,
		answerCache:        answerCache,
		logger:             sysLogger,
		defaultDatasetType: defaultDatasetType,
	}
}

// Ingest appends to the local registry first, then forwards to the engine.
// A remote failure after the local append is reported to the caller but the
// append is NOT rolled back: the registry is the list-for-display source of
// truth and is allowed to run ahead of the remote index.
func (is *ingestService) Ingest(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error) {
	tenantID := strings.TrimSpace(request.TenantId)
	if tenantID == "" || len(request.Documents) == 0 {
		return nil, apperror.NewInvalidInput("tenantId and a non-empty documents list are required")
	}

	datasetType := request.DatasetType
	if datasetType == "" {
		datasetType = is.defaultDatasetType
	}

	totalCount := is.registry.Add(tenantID, request.Documents)
	is.invalidateAnswers(tenantID)

	is.publishAudit(ctx, tenantID, datasetType, len(request.Documents), totalCount)

	if _, err := is.gateway.Ingest(ctx, tenantID, datasetType, request.Documents); err != nil {
		is.logger.Warn("ingest", "engine indexing failed, local registry is ahead of the remote index", map[string]interface{}{
			"tenant_id": tenantID,
			"count":     len(request.Documents),
			"error":     err.Error(),
		})
		return nil, err
	}

	return &dto.IngestResponse{Status: "ingested", Count: totalCount}, nil
}

func (is *ingestService) publishAudit(ctx context.Context, tenantID, datasetType string, count, totalCount int) {
	if is.publisherService == nil {
		return
	}
	msg := dto.IngestionEventMessage{
		TenantId:    tenantID,
		DatasetType: datasetType,
		Count:       count,
		TotalCount:  totalCount,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := is.publisherService.Publish(ctx, payload); err != nil {
		is.logger.Warn("ingest", "failed to publish ingestion audit event", map[string]interface{}{
			"tenant_id": tenantID,
			"error":     err.Error(),
		})
	}
}

func (is *ingestService) ListLocal(tenantID string) []entity.Document {
	return is.registry.List(tenantID)
}

// ListRemote returns the engine's view of the tenant, for display parity with
// the local registry. The two may legitimately diverge.
func (is *ingestService) ListRemote(ctx context.Context, tenantID string) ([]map[string]interface{}, error) {
	return is.gateway.List(ctx, tenantID)
}

func (is *ingestService) DeleteTenant(tenantID string) {
	is.registry.DeleteTenant(tenantID)
	is.invalidateAnswers(tenantID)
}

func (is *ingestService) DeleteDocument(tenantID, docID string) {
	is.registry.DeleteDocument(tenantID, docID)
	is.invalidateAnswers(tenantID)
}

// invalidateAnswers drops cached answers whenever the tenant's corpus changes,
// so the cache never outlives the documents that produced it.
func (is *ingestService) invalidateAnswers(tenantID string) {
	if is.answerCache != nil {
		is.answerCache.DeleteTenant(tenantID)
	}
}

func (is *ingestService) DeleteTenantRemote(ctx context.Context, tenantID string) error {
	return is.gateway.DeleteTenant(ctx, tenantID)
}

func (is *ingestService) DeleteDocumentRemote(ctx context.Context, tenantID, docID string) error {
	return is.gateway.DeleteDocument(ctx, tenantID, docID)
}
