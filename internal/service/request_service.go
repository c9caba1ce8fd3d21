package service

import (
	"context"
	"fmt"
	"regexp"

	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/logger"
	"vidvaan/internal/util"

	"go.uber.org/zap"
)

// MaxRecentRequests caps the dashboard listing.
const MaxRecentRequests = 10

// Module ids are short tags like ENG_WRITE_PARA.
var validModuleID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)

// RequestService exposes the gateway operations over submitted requests.
type RequestService interface {
	CreateRequest(ctx context.Context, userID string, req *dto.CreateRequestRequest) (*dto.CreateRequestResponse, error)
	ListRequests(ctx context.Context, userID string) (*dto.ListRequestsResponse, error)
	GetRequestByID(ctx context.Context, userID, requestID string) (*dto.GetRequestResponse, error)
}

type requestServiceImpl struct {
	requestRepo domain.RequestRepository
	resultRepo  domain.ResultRepository
}

// NewRequestService creates a new instance of RequestService.
func NewRequestService(requestRepo domain.RequestRepository, resultRepo domain.ResultRepository) RequestService {
	return &requestServiceImpl{
		requestRepo: requestRepo,
		resultRepo:  resultRepo,
	}
}

// CreateRequest validates and stores one submission with status pending.
// Duplicate payloads from the same user are accepted; the gateway imposes no
// uniqueness on content.
func (s *requestServiceImpl) CreateRequest(ctx context.Context, userID string, req *dto.CreateRequestRequest) (*dto.CreateRequestResponse, error) {
	var errs domain.ValidationErrors
	if req.ModuleID == "" {
		errs = append(errs, domain.NewMissingFieldError("module_id"))
	} else if !validModuleID.MatchString(req.ModuleID) {
		errs = append(errs, domain.NewInvalidFormatError("module_id", req.ModuleID))
	}
	if req.InputData == nil || req.InputData.Text == "" {
		errs = append(errs, domain.NewMissingFieldError("input_data"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	request := &domain.Request{
		ID:          util.NewULID(),
		UserID:      userID,
		ModuleID:    req.ModuleID,
		Input:       domain.RequestInput{Text: req.InputData.Text},
		Status:      domain.StatusPending,
		ResultTable: domain.ResultTableFor(req.ModuleID),
	}

	if err := s.requestRepo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request in repository: %w", err)
	}

	logger.Get().Info("Request submitted",
		zap.String("requestID", request.ID),
		zap.String("userID", userID),
		zap.String("moduleID", request.ModuleID))

	return &dto.CreateRequestResponse{
		Success:   true,
		Message:   "Request submitted successfully",
		RequestID: request.ID,
	}, nil
}

// ListRequests returns the caller's newest submissions, at most
// MaxRecentRequests of them. No requests is an empty list, not an error.
func (s *requestServiceImpl) ListRequests(ctx context.Context, userID string) (*dto.ListRequestsResponse, error) {
	requests, err := s.requestRepo.GetRecentByUser(ctx, userID, MaxRecentRequests)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests from repository: %w", err)
	}

	summaries := make([]dto.RequestSummary, len(requests))
	for i, r := range requests {
		summaries[i] = dto.RequestSummary{
			RequestID: r.ID,
			ModuleID:  r.ModuleID,
			InputData: dto.RequestInput{Text: r.Input.Text},
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt,
		}
	}

	return &dto.ListRequestsResponse{Success: true, Data: summaries}, nil
}

// GetRequestByID returns one owned submission, attaching the processor's
// result when it exists. A foreign-owned id and a nonexistent id produce the
// same not-found outcome.
func (s *requestServiceImpl) GetRequestByID(ctx context.Context, userID, requestID string) (*dto.GetRequestResponse, error) {
	if !util.IsValidULID(requestID) {
		return nil, domain.NewError(domain.CodeInvalidFormat, "Invalid request ID format", nil)
	}

	request, err := s.requestRepo.GetByIDAndUser(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.NewError(domain.CodeRequestNotFound, "Request not found or access denied", nil)
	}

	detail := dto.RequestDetail{
		RequestID: request.ID,
		ModuleID:  request.ModuleID,
		InputData: dto.RequestInput{Text: request.Input.Text},
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}

	// Scoring is asynchronous: a missing result row simply means the
	// processor has not gotten there yet. Lookup failures (including a
	// result table that only exists by naming convention) degrade to an
	// absent result rather than failing the whole detail.
	if request.ResultTable != "" {
		result, err := s.resultRepo.GetByRequestID(ctx, request.ResultTable, request.ID)
		if err != nil {
			logger.Get().Warn("Result lookup failed",
				zap.String("requestID", request.ID),
				zap.String("resultTable", request.ResultTable),
				zap.Error(err))
		} else if result != nil {
			detail.Result = &dto.AssessmentResultDetail{
				AssessedLevel: result.AssessedLevel,
				WordCount:     result.WordCount,
				SentenceCount: result.SentenceCount,
				GrammarScore:  result.GrammarScore,
				ReportURL:     result.ReportURL,
			}
		}
	}

	return &dto.GetRequestResponse{Success: true, Data: detail}, nil
}
