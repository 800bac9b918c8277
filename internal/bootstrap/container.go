package bootstrap

import (
	"log"
	"time"

	"equibot-be/internal/config"
	"equibot-be/internal/constant"
	"equibot-be/internal/controller"
	"equibot-be/internal/pkg/logger"
	"equibot-be/internal/repository/memory"
	"equibot-be/internal/service"
	"equibot-be/pkg/intent"
	"equibot-be/pkg/sidecar"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	BotController    controller.IBotController
	IngestController controller.IIngestController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	SysLogger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. Intent rules: built-ins plus the optional rule file. A malformed rule
	// set is a startup failure, not a runtime one.
	rules := intent.DefaultRules()
	if cfg.Bot.IntentRulesPath != "" {
		extra, err := intent.LoadRules(cfg.Bot.IntentRulesPath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load intent rules: %v", err)
		}
		rules = append(rules, extra...)
	}
	matcher, err := intent.NewMatcher(rules)
	if err != nil {
		log.Fatalf("[FATAL] Failed to compile intent rules: %v", err)
	}
	log.Printf("[INFO] Intent matcher loaded with %d rules", len(rules))

	// 4. Gateway to the retrieval engine
	gateway := sidecar.NewClient(cfg.Sidecar.BaseURL, time.Duration(cfg.Sidecar.TimeoutSeconds)*time.Second)
	log.Printf("[INFO] Sidecar gateway targeting %s", cfg.Sidecar.BaseURL)

	// 5. Stores
	registry := memory.NewDocumentRegistry()
	var answerCache *memory.AnswerCache
	if cfg.Bot.AnswerCacheTTLMin > 0 {
		answerCache = memory.NewAnswerCache(time.Duration(cfg.Bot.AnswerCacheTTLMin) * time.Minute)
	}

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, constant.IngestionEventsTopic)
	botService := service.NewBotService(matcher, gateway, answerCache, sysLogger, cfg.Bot.TopK)
	ingestService := service.NewIngestService(registry, gateway, publisherService, answerCache, sysLogger, cfg.Bot.DefaultDatasetType)
	consumerService := service.NewConsumerService(pubSub, constant.IngestionEventsTopic, auditLogger)

	return &Container{
		BotController:    controller.NewBotController(botService),
		IngestController: controller.NewIngestController(ingestService),
		ConsumerService:  consumerService,
		SysLogger:        sysLogger,
	}
}
