package dto

import (
	"time"

	"equibot-be/internal/entity"
)

type IngestRequest struct {
	TenantId    string            `json:"tenantId" validate:"required"`
	DatasetType string            `json:"datasetType"` // "faq" | "products", defaults to policy value
	Documents   []entity.Document `json:"documents" validate:"required,min=1,dive"`
}

type IngestResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DeleteResponse struct {
	Status string `json:"status"`
}

// IngestionEventMessage is the audit event published on the in-process bus
// after a successful local append.
type IngestionEventMessage struct {
	TenantId    string    `json:"tenant_id"`
	DatasetType string    `json:"dataset_type"`
	Count       int       `json:"count"`
	TotalCount  int       `json:"total_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
