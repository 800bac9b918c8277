package service

import (
	"context"
	"strings"
	"time"

	"equibot-be/internal/constant"
	"equibot-be/internal/dto"
	"equibot-be/internal/pkg/apperror"
	"equibot-be/internal/pkg/logger"
	"equibot-be/internal/repository/memory"
	"equibot-be/pkg/intent"
	"equibot-be/pkg/sidecar"
)

// IBotService answers tenant-scoped questions: intent shortcut first, then
// the retrieval engine.
type IBotService interface {
	Ask(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error)
}

type botService struct {
	matcher     *intent.Matcher
	gateway     sidecar.Gateway
	answerCache *memory.AnswerCache // nil disables caching
	logger      logger.ILogger
	topK        int
}

func NewBotService(
	matcher *intent.Matcher,
	gateway sidecar.Gateway,
	answerCache *memory.AnswerCache,
	sysLogger logger.ILogger,
	topK int,
) IBotService {
	return &botService{
		matcher:     matcher,
		gateway:     gateway,
		answerCache: answerCache,
		logger:      sysLogger,
		topK:        topK,
	}
}

func (bs *botService) Ask(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	tenantID := strings.TrimSpace(request.TenantId)
	query := strings.TrimSpace(request.Query)
	if tenantID == "" || query == "" {
		return nil, apperror.NewInvalidInput("tenantId and query are required")
	}

	start := time.Now()

	// Intent shortcut: no engine round trip, no sources.
	if answer, ok := bs.matcher.TryAnswer(query); ok {
		bs.logger.Info("bot", "intent rule matched", map[string]interface{}{
			"tenant_id": tenantID,
		})
		return &dto.QueryResponse{
			Answer:       answer,
			StrategyUsed: constant.StrategyIntent,
			LatencyMs:    time.Since(start).Milliseconds(),
			Sources:      []dto.CitationDTO{},
		}, nil
	}

	if bs.answerCache != nil {
		if cached, found := bs.answerCache.Get(tenantID, query); found {
			bs.logger.Debug("bot", "answer cache hit", map[string]interface{}{
				"tenant_id": tenantID,
			})
			res := *cached
			res.LatencyMs = time.Since(start).Milliseconds()
			return &res, nil
		}
	}

	result, err := bs.gateway.Query(ctx, tenantID, query, bs.topK)
	if err != nil {
		// Surface the failure kind unchanged. An unreachable engine must stay
		// distinguishable from "no relevant documents found".
		bs.logger.Error("bot", "engine query failed", map[string]interface{}{
			"tenant_id": tenantID,
			"error":     err.Error(),
		})
		return nil, err
	}

	response := composeRemote(result)
	if bs.answerCache != nil {
		bs.answerCache.Set(tenantID, query, response)
	}
	return response, nil
}

// composeRemote maps an engine result into the caller-facing response shape.
// Citations keep the engine's ranking order; no re-ranking here.
func composeRemote(result *sidecar.QueryResult) *dto.QueryResponse {
	sources := make([]dto.CitationDTO, 0, len(result.Citations))
	for _, c := range result.Citations {
		sources = append(sources, dto.CitationDTO{
			Id:         c.Id,
			Title:      c.Title,
			Url:        c.Url,
			Score:      c.Score,
			Attributes: c.Attributes,
		})
	}

	strategy := result.Strategy
	if strategy == "" {
		strategy = constant.StrategyRag
	}

	return &dto.QueryResponse{
		Answer:       result.Answer,
		StrategyUsed: strategy,
		LatencyMs:    result.LatencyMs,
		Sources:      sources,
	}
}
