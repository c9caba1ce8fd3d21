package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupResultTestDB creates a new sqlx.DB instance and sqlmock for result repository testing.
func setupResultTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestSQLXResultRepository_GetByRequestID_Success(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "assessed_level", "word_count", "sentence_count", "grammar_score", "report_url", "created_at", "updated_at"}).
		AddRow(int64(7), "01HVZ5R7W2Y0Q9K3N6M8P4T1XA", "Intermediate", 42, 5, 78.5, "https://cdn.example.com/reports/7.pdf", now, now)

	mock.ExpectPrepare(`FROM eng_write_para_results WHERE request_id`).
		ExpectQuery().
		WithArgs("01HVZ5R7W2Y0Q9K3N6M8P4T1XA").
		WillReturnRows(rows)

	result, err := repo.GetByRequestID(context.Background(), "eng_write_para_results", "01HVZ5R7W2Y0Q9K3N6M8P4T1XA")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Intermediate", result.AssessedLevel)
	assert.Equal(t, 42, result.WordCount)
	assert.Equal(t, 78.5, result.GrammarScore)
	assert.Equal(t, "https://cdn.example.com/reports/7.pdf", result.ReportURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXResultRepository_GetByRequestID_Unprocessed(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	mock.ExpectPrepare(`FROM eng_write_para_results WHERE request_id`).
		ExpectQuery().
		WithArgs("01HVZ5R7W2Y0Q9K3N6M8P4T1XA").
		WillReturnError(sql.ErrNoRows)

	result, err := repo.GetByRequestID(context.Background(), "eng_write_para_results", "01HVZ5R7W2Y0Q9K3N6M8P4T1XA")

	// Scoring is asynchronous: no row yet is not an error
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXResultRepository_GetByRequestID_MalformedTable(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	// The identifier guard must reject anything but a plain table name
	// before any SQL is built.
	for _, table := range []string{"", "Results", "results; DROP TABLE users", "eng results"} {
		result, err := repo.GetByRequestID(context.Background(), table, "01HVZ5R7W2Y0Q9K3N6M8P4T1XA")
		assert.Error(t, err, "table %q should be rejected", table)
		assert.Nil(t, result)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
