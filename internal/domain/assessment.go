package domain

import (
	"context"
	"time"
)

// ProcessingFlag mirrors the legacy request_processed column on the
// english_assessments table. The background listener flips "no" to "yes";
// the gateway writes "no" on success and "failed" when recording a
// best-effort failure row.
type ProcessingFlag string

const (
	ProcessingPending  ProcessingFlag = "no"
	ProcessingDone     ProcessingFlag = "yes"
	ProcessingFailed   ProcessingFlag = "failed"
	ProcessingQuotaHit ProcessingFlag = "quota_exceeded"
)

// EnglishAssessment is one inline-scored submission row.
type EnglishAssessment struct {
	ID                int64
	UserID            string
	UserEmail         string
	SubmittedText     string
	WordCount         int
	SentenceCount     int
	AverageWordLength float64
	AssessedLevel     string
	RequestID         string
	ClientTimestamp   string
	RequestProcessed  ProcessingFlag
	CreatedAt         time.Time
}

// AssessmentRepository persists inline heuristic assessments.
type AssessmentRepository interface {
	// CreateAssessment inserts one row and returns its generated id.
	CreateAssessment(ctx context.Context, a *EnglishAssessment) (int64, error)
}
