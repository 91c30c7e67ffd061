package models

// ChatRequest represents one inbound chat message
type ChatRequest struct {
	Message    string `json:"message" binding:"required"`
	CustomerID int64  `json:"customer_id,omitempty"`
}

// TaskResult holds the outcome of one dispatched task
type TaskResult struct {
	Task   string `json:"task"`
	Result any    `json:"result"`
}

// ChatResponse aggregates the results of every task bound to the
// detected intent
type ChatResponse struct {
	Intent    string       `json:"intent"`
	Responses []TaskResult `json:"responses"`
}
