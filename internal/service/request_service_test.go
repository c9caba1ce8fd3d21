package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/util"

	"github.com/stretchr/testify/assert"
)

// Manual mock for domain.RequestRepository
type mockRequestRepository struct {
	CreateRequestFunc   func(ctx context.Context, req *domain.Request) error
	GetRecentByUserFunc func(ctx context.Context, userID string, limit int) ([]domain.Request, error)
	GetByIDAndUserFunc  func(ctx context.Context, requestID, userID string) (*domain.Request, error)
}

func (m *mockRequestRepository) CreateRequest(ctx context.Context, req *domain.Request) error {
	return m.CreateRequestFunc(ctx, req)
}

func (m *mockRequestRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Request, error) {
	return m.GetRecentByUserFunc(ctx, userID, limit)
}

func (m *mockRequestRepository) GetByIDAndUser(ctx context.Context, requestID, userID string) (*domain.Request, error) {
	return m.GetByIDAndUserFunc(ctx, requestID, userID)
}

// Manual mock for domain.ResultRepository
type mockResultRepository struct {
	GetByRequestIDFunc func(ctx context.Context, resultTable, requestID string) (*domain.AssessmentResult, error)
}

func (m *mockResultRepository) GetByRequestID(ctx context.Context, resultTable, requestID string) (*domain.AssessmentResult, error) {
	return m.GetByRequestIDFunc(ctx, resultTable, requestID)
}

func TestCreateRequest_Success(t *testing.T) {
	var stored *domain.Request
	repo := &mockRequestRepository{
		CreateRequestFunc: func(ctx context.Context, req *domain.Request) error {
			stored = req
			return nil
		},
	}
	svc := NewRequestService(repo, &mockResultRepository{})

	resp, err := svc.CreateRequest(context.Background(), "uid-123", &dto.CreateRequestRequest{
		ModuleID:  "ENG_WRITE_PARA",
		InputData: &dto.RequestInput{Text: "A paragraph of text."},
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Request submitted successfully", resp.Message)
	assert.True(t, util.IsValidULID(resp.RequestID))

	assert.NotNil(t, stored)
	assert.Equal(t, resp.RequestID, stored.ID)
	assert.Equal(t, "uid-123", stored.UserID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "eng_write_para_results", stored.ResultTable)
}

func TestCreateRequest_MissingFields(t *testing.T) {
	svc := NewRequestService(&mockRequestRepository{}, &mockResultRepository{})

	tests := []struct {
		name   string
		req    *dto.CreateRequestRequest
		fields []string
	}{
		{
			name:   "Missing both",
			req:    &dto.CreateRequestRequest{},
			fields: []string{"module_id", "input_data"},
		},
		{
			name:   "Missing input_data",
			req:    &dto.CreateRequestRequest{ModuleID: "ENG_WRITE_PARA"},
			fields: []string{"input_data"},
		},
		{
			name:   "Empty text counts as missing",
			req:    &dto.CreateRequestRequest{ModuleID: "ENG_WRITE_PARA", InputData: &dto.RequestInput{}},
			fields: []string{"input_data"},
		},
		{
			name:   "Missing module_id",
			req:    &dto.CreateRequestRequest{InputData: &dto.RequestInput{Text: "hi"}},
			fields: []string{"module_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CreateRequest(context.Background(), "uid-123", tt.req)
			assert.Nil(t, resp)

			var validationErrs domain.ValidationErrors
			assert.ErrorAs(t, err, &validationErrs)
			assert.Len(t, validationErrs, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, validationErrs[i].Field)
			}
		})
	}
}

func TestCreateRequest_InvalidModuleID(t *testing.T) {
	svc := NewRequestService(&mockRequestRepository{}, &mockResultRepository{})

	resp, err := svc.CreateRequest(context.Background(), "uid-123", &dto.CreateRequestRequest{
		ModuleID:  "ENG WRITE PARA;",
		InputData: &dto.RequestInput{Text: "hi"},
	})

	assert.Nil(t, resp)
	var validationErrs domain.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, domain.CodeInvalidFormat, validationErrs[0].Code)
}

func TestCreateRequest_RepositoryError(t *testing.T) {
	repo := &mockRequestRepository{
		CreateRequestFunc: func(ctx context.Context, req *domain.Request) error {
			return errors.New("insert failed")
		},
	}
	svc := NewRequestService(repo, &mockResultRepository{})

	resp, err := svc.CreateRequest(context.Background(), "uid-123", &dto.CreateRequestRequest{
		ModuleID:  "ENG_WRITE_PARA",
		InputData: &dto.RequestInput{Text: "hi"},
	})

	assert.Nil(t, resp)
	assert.Error(t, err)
}

func TestListRequests_CapsAtTen(t *testing.T) {
	var requestedLimit int
	repo := &mockRequestRepository{
		GetRecentByUserFunc: func(ctx context.Context, userID string, limit int) ([]domain.Request, error) {
			requestedLimit = limit
			return []domain.Request{
				{ID: util.NewULID(), UserID: userID, ModuleID: "ENG_WRITE_PARA", Status: domain.StatusPending, CreatedAt: time.Now()},
			}, nil
		},
	}
	svc := NewRequestService(repo, &mockResultRepository{})

	resp, err := svc.ListRequests(context.Background(), "uid-123")

	assert.NoError(t, err)
	assert.Equal(t, MaxRecentRequests, requestedLimit)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
}

func TestListRequests_EmptyIsNotAnError(t *testing.T) {
	repo := &mockRequestRepository{
		GetRecentByUserFunc: func(ctx context.Context, userID string, limit int) ([]domain.Request, error) {
			return nil, nil
		},
	}
	svc := NewRequestService(repo, &mockResultRepository{})

	resp, err := svc.ListRequests(context.Background(), "uid-123")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data, "empty list should serialize as [], not null")
}

func TestGetRequestByID_InvalidFormat(t *testing.T) {
	svc := NewRequestService(&mockRequestRepository{}, &mockResultRepository{})

	resp, err := svc.GetRequestByID(context.Background(), "uid-123", "not-a-ulid")

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidFormat, domainErr.Code)
}

func TestGetRequestByID_NotFoundOrForeign(t *testing.T) {
	repo := &mockRequestRepository{
		GetByIDAndUserFunc: func(ctx context.Context, requestID, userID string) (*domain.Request, error) {
			return nil, nil
		},
	}
	svc := NewRequestService(repo, &mockResultRepository{})

	resp, err := svc.GetRequestByID(context.Background(), "uid-123", util.NewULID())

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeRequestNotFound, domainErr.Code)
	assert.Equal(t, "Request not found or access denied", domainErr.Message)
}

func TestGetRequestByID_WithResult(t *testing.T) {
	requestID := util.NewULID()
	repo := &mockRequestRepository{
		GetByIDAndUserFunc: func(ctx context.Context, rid, userID string) (*domain.Request, error) {
			return &domain.Request{
				ID:          rid,
				UserID:      userID,
				ModuleID:    "ENG_WRITE_PARA",
				Input:       domain.RequestInput{Text: "Some text"},
				Status:      domain.StatusProcessed,
				ResultTable: "eng_write_para_results",
				CreatedAt:   time.Now(),
			}, nil
		},
	}
	results := &mockResultRepository{
		GetByRequestIDFunc: func(ctx context.Context, resultTable, rid string) (*domain.AssessmentResult, error) {
			assert.Equal(t, "eng_write_para_results", resultTable)
			return &domain.AssessmentResult{
				RequestID:     rid,
				AssessedLevel: "Advanced",
				WordCount:     120,
				SentenceCount: 8,
				GrammarScore:  91.5,
			}, nil
		},
	}
	svc := NewRequestService(repo, results)

	resp, err := svc.GetRequestByID(context.Background(), "uid-123", requestID)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Data.Result)
	assert.Equal(t, "Advanced", resp.Data.Result.AssessedLevel)
	assert.Equal(t, 120, resp.Data.Result.WordCount)
}

func TestGetRequestByID_PendingHasNoResult(t *testing.T) {
	repo := &mockRequestRepository{
		GetByIDAndUserFunc: func(ctx context.Context, rid, userID string) (*domain.Request, error) {
			return &domain.Request{ID: rid, UserID: userID, ModuleID: "ENG_WRITE_PARA", Status: domain.StatusPending, ResultTable: "eng_write_para_results"}, nil
		},
	}
	results := &mockResultRepository{
		GetByRequestIDFunc: func(ctx context.Context, resultTable, rid string) (*domain.AssessmentResult, error) {
			return nil, nil
		},
	}
	svc := NewRequestService(repo, results)

	resp, err := svc.GetRequestByID(context.Background(), "uid-123", util.NewULID())

	assert.NoError(t, err)
	assert.Nil(t, resp.Data.Result)
}

func TestGetRequestByID_ResultLookupFailureDegrades(t *testing.T) {
	repo := &mockRequestRepository{
		GetByIDAndUserFunc: func(ctx context.Context, rid, userID string) (*domain.Request, error) {
			return &domain.Request{ID: rid, UserID: userID, ModuleID: "ENG_WRITE_PARA", Status: domain.StatusProcessed, ResultTable: "eng_write_para_results"}, nil
		},
	}
	results := &mockResultRepository{
		GetByRequestIDFunc: func(ctx context.Context, resultTable, rid string) (*domain.AssessmentResult, error) {
			return nil, errors.New("relation does not exist")
		},
	}
	svc := NewRequestService(repo, results)

	resp, err := svc.GetRequestByID(context.Background(), "uid-123", util.NewULID())

	// The detail still comes back; only the result is absent
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Nil(t, resp.Data.Result)
}
