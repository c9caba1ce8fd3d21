package domain

import (
	"context"
	"strings"
	"time"
)

// RequestStatus is the processing state of a submission. The gateway only
// ever writes StatusPending; the background processor owns every transition
// to a terminal state.
type RequestStatus string

const (
	StatusPending       RequestStatus = "pending"
	StatusProcessed     RequestStatus = "processed"
	StatusFailed        RequestStatus = "failed"
	StatusQuotaExceeded RequestStatus = "quota_exceeded"
)

// ResultTableSuffix is appended to the lower-cased module id to name the
// table holding that module's results. The table's existence is established
// by convention only and is not verified at submission time.
const ResultTableSuffix = "_results"

// ResultTableFor derives the result-table reference for a module id,
// e.g. "ENG_WRITE_PARA" -> "eng_write_para_results".
func ResultTableFor(moduleID string) string {
	return strings.ToLower(moduleID) + ResultTableSuffix
}

// RequestInput is the free-form submission payload.
type RequestInput struct {
	Text string `json:"text"`
}

// Request represents a submitted assessment request.
type Request struct {
	ID          string
	UserID      string
	ModuleID    string
	Input       RequestInput
	Status      RequestStatus
	ResultTable string
	CreatedAt   time.Time
}

// AssessmentResult is the per-module result row produced by the background
// processor. Read-only from the gateway's perspective.
type AssessmentResult struct {
	RequestID     string
	AssessedLevel string
	WordCount     int
	SentenceCount int
	GrammarScore  float64
	ReportURL     string
	UpdatedAt     time.Time
}

// RequestRepository defines the interface for request data persistence.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req *Request) error
	// GetRecentByUser returns at most limit requests owned by userID,
	// newest first.
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]Request, error)
	// GetByIDAndUser returns (nil, nil) when no row matches the pair, which
	// covers both a missing id and an id owned by another user.
	GetByIDAndUser(ctx context.Context, requestID, userID string) (*Request, error)
}

// ResultRepository reads per-module result rows via the result-table
// reference stored on the request.
type ResultRepository interface {
	// GetByRequestID returns (nil, nil) when the processor has not written
	// a result yet.
	GetByRequestID(ctx context.Context, resultTable, requestID string) (*AssessmentResult, error)
}
