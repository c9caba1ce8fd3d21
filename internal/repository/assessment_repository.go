package repository

import (
	"context"
	"fmt"
	"time"

	"vidvaan/internal/domain"
	"vidvaan/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxAssessmentRepository implements domain.AssessmentRepository using sqlx.
type sqlxAssessmentRepository struct {
	db *sqlx.DB
}

// NewSQLXAssessmentRepository creates a new instance of sqlxAssessmentRepository.
func NewSQLXAssessmentRepository(db *sqlx.DB) domain.AssessmentRepository {
	return &sqlxAssessmentRepository{db: db}
}

func fromDomainAssessment(a *domain.EnglishAssessment) *models.EnglishAssessment {
	if a == nil {
		return nil
	}
	return &models.EnglishAssessment{
		UserID:            a.UserID,
		UserEmail:         a.UserEmail,
		SubmittedText:     a.SubmittedText,
		WordCount:         a.WordCount,
		SentenceCount:     a.SentenceCount,
		AverageWordLength: a.AverageWordLength,
		AssessedLevel:     a.AssessedLevel,
		RequestID:         a.RequestID,
		ClientTimestamp:   a.ClientTimestamp,
		RequestProcessed:  string(a.RequestProcessed),
		CreatedAt:         a.CreatedAt,
	}
}

// CreateAssessment inserts one inline-scored submission row and returns the
// generated id.
func (r *sqlxAssessmentRepository) CreateAssessment(ctx context.Context, a *domain.EnglishAssessment) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m := fromDomainAssessment(a)

	query := `INSERT INTO english_assessments
	            (user_id, user_email, submitted_text, word_count, sentence_count, average_word_length,
	             assessed_level, request_id, client_timestamp, request_processed, created_at)
	          VALUES
	            (:user_id, :user_email, :submitted_text, :word_count, :sentence_count, :average_word_length,
	             :assessed_level, :request_id, :client_timestamp, :request_processed, :created_at)
	          RETURNING id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare query for CreateAssessment: %w", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, m); err != nil {
		return 0, fmt.Errorf("failed to create assessment: %w", err)
	}
	return id, nil
}
