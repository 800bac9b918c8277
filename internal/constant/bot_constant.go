package constant

const (
	StrategyIntent = "intent"
	StrategyRag    = "rag"
	StrategyCache  = "cache"
	StrategyError  = "error"

	DatasetTypeFaq      = "faq"
	DatasetTypeProducts = "products"

	// DefaultTopK is the fixed retrieval depth forwarded to the engine on the
	// rag path. Policy value, overridable via BOT_TOP_K.
	DefaultTopK = 3

	// IngestionEventsTopic carries ingestion audit events on the in-process bus.
	IngestionEventsTopic = "INGESTION_EVENTS"
)
