package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"vidvaan/internal/domain"
	"vidvaan/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// Result tables are named by convention (lower-cased module id plus a fixed
// suffix); nothing verifies the table actually exists before it is queried.
// The identifier pattern keeps the interpolated name from carrying anything
// but a plain table name.
var validResultTable = regexp.MustCompile(`^[a-z0-9_]+$`)

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainResult(m *models.AssessmentResult) *domain.AssessmentResult {
	if m == nil {
		return nil
	}
	return &domain.AssessmentResult{
		RequestID:     m.RequestID,
		AssessedLevel: m.AssessedLevel,
		WordCount:     m.WordCount,
		SentenceCount: m.SentenceCount,
		GrammarScore:  m.GrammarScore.Float64,
		ReportURL:     m.ReportURL.String,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GetByRequestID reads the processor-written result row for a request.
// (nil, nil) means the request has not been processed yet, which is not an
// error: scoring is asynchronous.
func (r *sqlxResultRepository) GetByRequestID(ctx context.Context, resultTable, requestID string) (*domain.AssessmentResult, error) {
	if !validResultTable.MatchString(resultTable) {
		return nil, fmt.Errorf("malformed result table reference: %q", resultTable)
	}

	query := fmt.Sprintf(`SELECT id, request_id, assessed_level, word_count, sentence_count, grammar_score, report_url, created_at, updated_at
	          FROM %s WHERE request_id = :request_id`, resultTable)

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByRequestID: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"request_id": requestID}
	var m models.AssessmentResult
	if err := stmt.GetContext(ctx, &m, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result from %s: %w", resultTable, err)
	}
	return toDomainResult(&m), nil
}
