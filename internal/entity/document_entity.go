package entity

// Document is a single ingested record owned by a tenant. It covers both FAQ
// pairs and product-style records; every field beyond Id is optional and
// schema-free. Documents are never mutated in place; re-ingesting the same id
// appends a new entry.
type Document struct {
	Id         string                 `json:"id" validate:"required"`
	Title      string                 `json:"title,omitempty"`
	Question   string                 `json:"question,omitempty"` // for FAQs
	Answer     string                 `json:"answer,omitempty"`   // for FAQs
	Url        string                 `json:"url,omitempty"`      // kb link / product page
	Tags       []string               `json:"tags,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"` // for products
}

// Citation is a retrieval result item attached to a composed answer. Derived
// from the engine's context documents, never stored locally.
type Citation struct {
	Id         string                 `json:"id,omitempty"`
	Title      string                 `json:"title,omitempty"`
	Url        string                 `json:"url,omitempty"`
	Score      *float64               `json:"score,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}
