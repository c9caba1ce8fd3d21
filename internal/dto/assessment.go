package dto

// EvaluateRequest is the body of the inline evaluation endpoints. Field
// casing matches the original client payload.
type EvaluateRequest struct {
	Text      string `json:"text"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// Analysis reports the heuristic metrics. AverageWordLength is formatted to
// two decimals the way the dashboard displays it.
type Analysis struct {
	WordCount         int    `json:"wordCount"`
	SentenceCount     int    `json:"sentenceCount"`
	AverageWordLength string `json:"averageWordLength"`
}

// EvaluateResponse acknowledges a persisted inline evaluation.
type EvaluateResponse struct {
	Success      bool       `json:"success"`
	AssessmentID int64      `json:"assessmentId"`
	RequestID    string     `json:"requestId"`
	Message      string     `json:"message"`
	Timestamps   Timestamps `json:"timestamps"`
}

// PreviewResponse returns metrics without persisting anything.
type PreviewResponse struct {
	Success      bool       `json:"success"`
	RequestID    string     `json:"requestId"`
	EnglishLevel string     `json:"englishLevel"`
	Analysis     Analysis   `json:"analysis"`
	Message      string     `json:"message"`
	Timestamps   Timestamps `json:"timestamps"`
}
