package api

import "github.com/shopspring/decimal"

// Job status values reported by the pricing backend.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusFailed     = "failed"
)

// Suggestion is a single candidate item name.
type Suggestion struct {
	Name string `json:"name"`
}

// ClarifyResult holds the backend's normalization candidates for one raw item
// text. Immutable once received. Suggested may be nil: the backend answered
// but had nothing to offer, which is distinct from a failed request.
type ClarifyResult struct {
	Suggested    *Suggestion
	Alternatives []Suggestion
}

// Product is one merchant offer for an item. Server-supplied, immutable.
type Product struct {
	Name     string          `json:"name"`
	Merchant string          `json:"merchant"`
	Price    decimal.Decimal `json:"price"`
	Location string          `json:"location,omitempty"`
}

// JobStatus is one poll response for a pricing job.
type JobStatus struct {
	Status        string               `json:"status"`
	QueuePosition *int                 `json:"queue_position,omitempty"`
	Results       map[string][]Product `json:"results,omitempty"`
	ZipCode       string               `json:"zip_code,omitempty"`
	TotalTime     *float64             `json:"total_time,omitempty"`
}

type clarifyRequest struct {
	Item    string   `json:"item"`
	Context []string `json:"context"`
}

type cartRequest struct {
	Items            []string `json:"items"`
	Zipcode          string   `json:"zipcode"`
	PrioritizeNearby bool     `json:"prioritize_nearby"`
}

type cartResponse struct {
	JobID string `json:"job_id"`
}
