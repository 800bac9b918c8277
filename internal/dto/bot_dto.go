package dto

type QueryRequest struct {
	TenantId string `json:"tenantId" validate:"required"`
	Query    string `json:"query" validate:"required"`
}

type QueryResponse struct {
	Answer       string        `json:"answer"`
	StrategyUsed string        `json:"strategyUsed"`
	LatencyMs    int64         `json:"latencyMs"`
	Sources      []CitationDTO `json:"sources"`
}

type CitationDTO struct {
	Id         string                 `json:"id,omitempty"`
	Title      string                 `json:"title,omitempty"`
	Url        string                 `json:"url,omitempty"`
	Score      *float64               `json:"score,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}
