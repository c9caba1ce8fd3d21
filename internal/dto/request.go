package dto

import "time"

// RequestInput is the structured submission payload.
type RequestInput struct {
	Text string `json:"text"`
}

// CreateRequestRequest is the body of POST /requests. InputData is a pointer
// so a missing field is distinguishable from an empty one.
type CreateRequestRequest struct {
	ModuleID  string        `json:"module_id"`
	InputData *RequestInput `json:"input_data"`
}

// CreateRequestResponse acknowledges a stored submission.
type CreateRequestResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// RequestSummary is one entry in the dashboard listing.
type RequestSummary struct {
	RequestID string       `json:"request_id"`
	ModuleID  string       `json:"module_id"`
	InputData RequestInput `json:"input_data"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// ListRequestsResponse carries at most the 10 most recent submissions,
// newest first.
type ListRequestsResponse struct {
	Success bool             `json:"success"`
	Data    []RequestSummary `json:"data"`
}

// AssessmentResultDetail is the processor-written result attached to a
// request detail once scoring has happened.
type AssessmentResultDetail struct {
	AssessedLevel string  `json:"assessedLevel"`
	WordCount     int     `json:"wordCount"`
	SentenceCount int     `json:"sentenceCount"`
	GrammarScore  float64 `json:"grammarScore"`
	ReportURL     string  `json:"reportUrl,omitempty"`
}

// RequestDetail is the single-request view. Field casing matches the
// original dashboard contract.
type RequestDetail struct {
	RequestID string                  `json:"requestId"`
	ModuleID  string                  `json:"moduleId"`
	InputData RequestInput            `json:"inputData"`
	Status    string                  `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	Result    *AssessmentResultDetail `json:"result,omitempty"`
}

// GetRequestResponse wraps a request detail.
type GetRequestResponse struct {
	Success bool          `json:"success"`
	Data    RequestDetail `json:"data"`
}
