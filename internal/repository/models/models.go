package models

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// User represents a row in the users table. The primary key is the subject
// identifier asserted by the identity provider.
type User struct {
	UserID            string         `db:"user_id"`
	Email             string         `db:"email"`
	Phone             sql.NullString `db:"phone"`
	AccountStatus     string         `db:"account_status"`
	QuotaLimitEnglish int            `db:"quota_limit_english"`
	QuotaUsedEnglish  int            `db:"quota_used_english"`
	CreatedAt         time.Time      `db:"created_at"`
	LastLogin         time.Time      `db:"last_login"`
}

// Request represents a row in the requests table.
type Request struct {
	RequestID   string         `db:"request_id"`  // ULID
	UserID      string         `db:"user_id"`     // Foreign key to users
	ModuleID    string         `db:"module_id"`   // Selects the downstream scorer
	InputData   types.JSONText `db:"input_data"`  // Structured submission payload
	Status      string         `db:"status"`      // pending until the processor advances it
	ResultTable string         `db:"result_table"` // Naming-convention reference, unverified
	CreatedAt   time.Time      `db:"created_at"`
}

// AssessmentResult represents a row in a per-module result table such as
// eng_write_para_results. Written only by the background processor.
type AssessmentResult struct {
	ID            int64           `db:"id"`
	RequestID     string          `db:"request_id"`
	AssessedLevel string          `db:"assessed_level"`
	WordCount     int             `db:"word_count"`
	SentenceCount int             `db:"sentence_count"`
	GrammarScore  sql.NullFloat64 `db:"grammar_score"`
	ReportURL     sql.NullString  `db:"report_url"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// EnglishAssessment represents a row in the english_assessments table,
// produced by the inline heuristic evaluation flow.
type EnglishAssessment struct {
	ID                int64     `db:"id"`
	UserID            string    `db:"user_id"`
	UserEmail         string    `db:"user_email"`
	SubmittedText     string    `db:"submitted_text"`
	WordCount         int       `db:"word_count"`
	SentenceCount     int       `db:"sentence_count"`
	AverageWordLength float64   `db:"average_word_length"`
	AssessedLevel     string    `db:"assessed_level"`
	RequestID         string    `db:"request_id"` // Client-generated correlation id
	ClientTimestamp   string    `db:"client_timestamp"`
	RequestProcessed  string    `db:"request_processed"`
	CreatedAt         time.Time `db:"created_at"`
}
