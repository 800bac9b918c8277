package sidecar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"equibot-be/internal/entity"
	"equibot-be/internal/pkg/apperror"
)

// Gateway is the only contract the orchestrators use to reach the retrieval
// engine. Failures are typed AppErrors so callers can tell "engine down"
// apart from "engine rejected" and "engine answered garbage".
type Gateway interface {
	Query(ctx context.Context, tenantID, query string, topK int) (*QueryResult, error)
	Ingest(ctx context.Context, tenantID, datasetType string, docs []entity.Document) (*IngestResult, error)
	List(ctx context.Context, tenantID string) ([]map[string]interface{}, error)
	DeleteTenant(ctx context.Context, tenantID string) error
	DeleteDocument(ctx context.Context, tenantID, docID string) error
}

// QueryResult is the engine's answer for a single query, citations already
// ranked by the engine.
type QueryResult struct {
	Answer    string
	Strategy  string
	LatencyMs int64
	Citations []entity.Citation
}

type IngestResult struct {
	Status string
	Count  int
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ Gateway = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Wire structs (internal to this package) ---

type queryRequest struct {
	TenantID string `json:"tenant_id"`
	Query    string `json:"query"`
	TopK     int    `json:"top_k"`
}

type queryResponse struct {
	Answer    string       `json:"answer"`
	Strategy  string       `json:"strategy"`
	LatencyMs int64        `json:"latency_ms"`
	Context   []contextDoc `json:"context"`
}

type contextDoc struct {
	Id         string                 `json:"id"`
	Title      string                 `json:"title"`
	Url        string                 `json:"url"`
	Score      *float64               `json:"score"`
	Attributes map[string]interface{} `json:"attributes"`
}

type ingestRequest struct {
	TenantID    string            `json:"tenant_id"`
	DatasetType string            `json:"dataset_type"`
	Documents   []entity.Document `json:"documents"`
}

type ingestResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// --- Gateway implementation ---

func (c *Client) Query(ctx context.Context, tenantID, query string, topK int) (*QueryResult, error) {
	if tenantID == "" {
		return nil, apperror.NewInvalidInput("tenant id is required on every engine call")
	}

	// tenant_id is the engine's partition key and must never be omitted
	payload := queryRequest{TenantID: tenantID, Query: query, TopK: topK}

	body, err := c.post(ctx, "/query", payload)
	if err != nil {
		return nil, err
	}

	var dto queryResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, apperror.NewRemoteMalformed("engine query response is not valid JSON", err)
	}

	citations := make([]entity.Citation, 0, len(dto.Context))
	for _, doc := range dto.Context {
		citations = append(citations, entity.Citation{
			Id:         doc.Id,
			Title:      doc.Title,
			Url:        doc.Url,
			Score:      doc.Score,
			Attributes: doc.Attributes,
		})
	}

	return &QueryResult{
		Answer:    dto.Answer,
		Strategy:  dto.Strategy,
		LatencyMs: dto.LatencyMs,
		Citations: citations,
	}, nil
}

func (c *Client) Ingest(ctx context.Context, tenantID, datasetType string, docs []entity.Document) (*IngestResult, error) {
	if tenantID == "" {
		return nil, apperror.NewInvalidInput("tenant id is required on every engine call")
	}

	payload := ingestRequest{TenantID: tenantID, DatasetType: datasetType, Documents: docs}

	body, err := c.post(ctx, "/ingest", payload)
	if err != nil {
		return nil, err
	}

	var dto ingestResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, apperror.NewRemoteMalformed("engine ingest response is not valid JSON", err)
	}

	return &IngestResult{Status: dto.Status, Count: dto.Count}, nil
}

func (c *Client) List(ctx context.Context, tenantID string) ([]map[string]interface{}, error) {
	if tenantID == "" {
		return nil, apperror.NewInvalidInput("tenant id is required on every engine call")
	}

	body, err := c.do(ctx, http.MethodGet, "/list/"+tenantID, nil)
	if err != nil {
		return nil, err
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, apperror.NewRemoteMalformed("engine list response is not valid JSON", err)
	}
	return docs, nil
}

func (c *Client) DeleteTenant(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return apperror.NewInvalidInput("tenant id is required on every engine call")
	}
	_, err := c.do(ctx, http.MethodDelete, "/delete/"+tenantID, nil)
	return err
}

func (c *Client) DeleteDocument(ctx context.Context, tenantID, docID string) error {
	if tenantID == "" {
		return apperror.NewInvalidInput("tenant id is required on every engine call")
	}
	if docID == "" {
		return apperror.NewInvalidInput("document id is required")
	}
	_, err := c.do(ctx, http.MethodDelete, "/delete/"+tenantID+"/"+docID, nil)
	return err
}

// --- Transport helpers ---

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payloadBytes)
}

// do performs one call, no retries: retry policy belongs to our callers so
// failure semantics stay observable.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperror.NewRemoteUnavailable(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewRemoteUnavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.NewRemoteError(resp.StatusCode, string(bodyBytes))
	}

	// A 2xx with an empty body is engine failure, not an empty-but-valid result.
	if method != http.MethodDelete && len(bodyBytes) == 0 {
		return nil, apperror.NewRemoteMalformed("engine returned an empty body", nil)
	}

	return bodyBytes, nil
}
