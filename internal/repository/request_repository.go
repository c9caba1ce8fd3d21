package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidvaan/internal/domain"
	"vidvaan/internal/repository/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// pgInvalidTextRepresentation is raised when a value cannot be coerced to a
// column's type, e.g. a malformed identifier. Remapped to an invalid-input
// domain error instead of surfacing as an internal one.
const pgInvalidTextRepresentation = "22P02"

func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

// sqlxRequestRepository implements domain.RequestRepository using sqlx.
type sqlxRequestRepository struct {
	db *sqlx.DB
}

// NewSQLXRequestRepository creates a new instance of sqlxRequestRepository.
func NewSQLXRequestRepository(db *sqlx.DB) domain.RequestRepository {
	return &sqlxRequestRepository{db: db}
}

func toDomainRequest(m *models.Request) (*domain.Request, error) {
	if m == nil {
		return nil, nil
	}
	var input domain.RequestInput
	if len(m.InputData) > 0 {
		if err := json.Unmarshal(m.InputData, &input); err != nil {
			return nil, fmt.Errorf("failed to decode input_data for request %s: %w", m.RequestID, err)
		}
	}
	return &domain.Request{
		ID:          m.RequestID,
		UserID:      m.UserID,
		ModuleID:    m.ModuleID,
		Input:       input,
		Status:      domain.RequestStatus(m.Status),
		ResultTable: m.ResultTable,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func fromDomainRequest(req *domain.Request) (*models.Request, error) {
	if req == nil {
		return nil, nil
	}
	input, err := json.Marshal(req.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input_data: %w", err)
	}
	return &models.Request{
		RequestID:   req.ID,
		UserID:      req.UserID,
		ModuleID:    req.ModuleID,
		InputData:   types.JSONText(input),
		Status:      string(req.Status),
		ResultTable: req.ResultTable,
		CreatedAt:   req.CreatedAt,
	}, nil
}

// CreateRequest inserts a new submission row with its initial status.
func (r *sqlxRequestRepository) CreateRequest(ctx context.Context, req *domain.Request) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	m, err := fromDomainRequest(req)
	if err != nil {
		return err
	}

	query := `INSERT INTO requests (request_id, user_id, module_id, input_data, status, result_table, created_at)
	          VALUES (:request_id, :user_id, :module_id, :input_data, :status, :result_table, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetRecentByUser returns the newest requests owned by userID, capped at limit.
func (r *sqlxRequestRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Request, error) {
	query := `SELECT request_id, user_id, module_id, input_data, status, result_table, created_at
	          FROM requests
	          WHERE user_id = :user_id
	          ORDER BY created_at DESC
	          LIMIT :limit`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetRecentByUser: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"user_id": userID, "limit": limit}
	var rows []models.Request
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	requests := make([]domain.Request, 0, len(rows))
	for i := range rows {
		req, err := toDomainRequest(&rows[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

// GetByIDAndUser fetches one request owned by userID. A missing row and a
// row owned by someone else are indistinguishable: both return (nil, nil).
func (r *sqlxRequestRepository) GetByIDAndUser(ctx context.Context, requestID, userID string) (*domain.Request, error) {
	query := `SELECT request_id, user_id, module_id, input_data, status, result_table, created_at
	          FROM requests
	          WHERE request_id = :request_id AND user_id = :user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByIDAndUser: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"request_id": requestID, "user_id": userID}
	var m models.Request
	if err := stmt.GetContext(ctx, &m, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isInvalidTextRepresentation(err) {
			return nil, domain.NewError(domain.CodeInvalidFormat, "Invalid request ID format", err)
		}
		return nil, fmt.Errorf("failed to get request by id: %w", err)
	}
	return toDomainRequest(&m)
}
