package config

import (
	"log"
	"os"
	"strconv"

	"equibot-be/internal/constant"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Sidecar SidecarConfig
	Bot     BotConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
}

type SidecarConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type BotConfig struct {
	TopK               int
	DefaultDatasetType string
	IntentRulesPath    string // optional JSON rule file merged after the built-in rules
	AnswerCacheTTLMin  int    // 0 disables the local answer cache
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5140"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "ingestion_audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5096"),
		},
		Sidecar: SidecarConfig{
			BaseURL:        getEnv("SIDECAR_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvAsInt("SIDECAR_TIMEOUT_SECONDS", 60),
		},
		Bot: BotConfig{
			TopK:               getEnvAsInt("BOT_TOP_K", constant.DefaultTopK),
			DefaultDatasetType: getEnv("BOT_DEFAULT_DATASET_TYPE", "faq"),
			IntentRulesPath:    getEnv("INTENT_RULES_PATH", ""),
			// Off by default: with caching on, a repeated query is answered
			// locally instead of being forwarded to the engine again.
			AnswerCacheTTLMin: getEnvAsInt("ANSWER_CACHE_TTL_MINUTES", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
