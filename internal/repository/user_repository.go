package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vidvaan/internal/domain"
	"vidvaan/internal/repository/models"
	"vidvaan/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:            m.UserID,
		Email:         m.Email,
		Phone:         m.Phone.String,
		AccountStatus: domain.AccountStatus(m.AccountStatus),
		QuotaLimit:    m.QuotaLimitEnglish,
		QuotaUsed:     m.QuotaUsedEnglish,
		CreatedAt:     m.CreatedAt,
		LastLogin:     m.LastLogin,
	}
}

// UpsertUser inserts the user on first verified login and refreshes email,
// phone and last_login afterwards. A single atomic statement; no transaction
// spans it.
func (r *sqlxUserRepository) UpsertUser(ctx context.Context, userID, email, phone string) (*domain.User, error) {
	query := `INSERT INTO users (user_id, email, phone)
	          VALUES (:user_id, :email, :phone)
	          ON CONFLICT (user_id)
	          DO UPDATE SET
	            email = EXCLUDED.email,
	            phone = COALESCE(EXCLUDED.phone, users.phone),
	            last_login = CURRENT_TIMESTAMP
	          RETURNING user_id, email, phone, account_status, quota_limit_english, quota_used_english, created_at, last_login`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for UpsertUser: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"phone":   util.StringToNullString(phone),
	}

	var user models.User
	if err := stmt.GetContext(ctx, &user, args); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByID retrieves a user by the identity-provider subject id.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user models.User
	query := `SELECT user_id, email, phone, account_status, quota_limit_english, quota_used_english, created_at, last_login
	          FROM users WHERE user_id = :user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetUserByID: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"user_id": userID}
	if err := stmt.GetContext(ctx, &user, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found; services decide how to surface it
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}
