package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"vidvaan/internal/analysis"
	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssessmentService runs the inline heuristic evaluation flow. The
// authoritative per-module scoring still happens asynchronously; these rows
// are picked up by the background listener via request_processed.
type AssessmentService interface {
	Evaluate(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluateResponse, error)
	Preview(req *dto.EvaluateRequest) *dto.PreviewResponse
}

type assessmentServiceImpl struct {
	assessmentRepo domain.AssessmentRepository
}

// NewAssessmentService creates a new instance of AssessmentService.
func NewAssessmentService(assessmentRepo domain.AssessmentRepository) AssessmentService {
	return &assessmentServiceImpl{assessmentRepo: assessmentRepo}
}

// ValidateEvaluateRequest checks the evaluation body for missing fields and
// a malformed correlation id.
func ValidateEvaluateRequest(req *dto.EvaluateRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if req.Text == "" {
		errs = append(errs, domain.NewMissingFieldError("text"))
	}
	if req.UserID == "" {
		errs = append(errs, domain.NewMissingFieldError("userId"))
	}
	if req.UserEmail == "" {
		errs = append(errs, domain.NewMissingFieldError("userEmail"))
	}
	if req.RequestID == "" {
		errs = append(errs, domain.NewMissingFieldError("requestId"))
	} else if _, err := uuid.Parse(req.RequestID); err != nil {
		errs = append(errs, domain.NewInvalidFormatError("requestId", req.RequestID))
	}
	if req.Timestamp == "" {
		errs = append(errs, domain.NewMissingFieldError("timestamp"))
	}
	return errs
}

func (s *assessmentServiceImpl) buildAssessment(req *dto.EvaluateRequest, m analysis.Metrics, flag domain.ProcessingFlag) *domain.EnglishAssessment {
	return &domain.EnglishAssessment{
		UserID:            req.UserID,
		UserEmail:         req.UserEmail,
		SubmittedText:     req.Text,
		WordCount:         m.WordCount,
		SentenceCount:     m.SentenceCount,
		AverageWordLength: m.AverageWordLength,
		// Level is re-assessed by the listener; rows start as Pending.
		AssessedLevel:    "Pending",
		RequestID:        req.RequestID,
		ClientTimestamp:  req.Timestamp,
		RequestProcessed: flag,
	}
}

// Evaluate computes metrics and persists one assessment row awaiting the
// background listener.
func (s *assessmentServiceImpl) Evaluate(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluateResponse, error) {
	if errs := ValidateEvaluateRequest(req); len(errs) > 0 {
		return nil, errs
	}

	metrics := analysis.Analyze(req.Text)

	id, err := s.assessmentRepo.CreateAssessment(ctx, s.buildAssessment(req, metrics, domain.ProcessingPending))
	if err != nil {
		s.recordFailure(ctx, req, metrics)
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}

	logger.Get().Info("Assessment submitted",
		zap.Int64("assessmentID", id),
		zap.String("requestID", req.RequestID),
		zap.String("userID", req.UserID),
		zap.Int("wordCount", metrics.WordCount))

	return &dto.EvaluateResponse{
		Success:      true,
		AssessmentID: id,
		RequestID:    req.RequestID,
		Message:      "Text submitted successfully. Processing will be done by background listener.",
		Timestamps: dto.Timestamps{
			Client: req.Timestamp,
			Server: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// recordFailure best-effort writes a failed row so the submission is not
// lost silently. Its own failure is logged and swallowed.
func (s *assessmentServiceImpl) recordFailure(ctx context.Context, req *dto.EvaluateRequest, m analysis.Metrics) {
	if _, err := s.assessmentRepo.CreateAssessment(ctx, s.buildAssessment(req, m, domain.ProcessingFailed)); err != nil {
		logger.Get().Error("Failed to record failed assessment row",
			zap.String("requestID", req.RequestID),
			zap.Error(err))
	}
}

// Preview computes metrics and the proficiency bucket without touching the
// store. Validation is the caller's job.
func (s *assessmentServiceImpl) Preview(req *dto.EvaluateRequest) *dto.PreviewResponse {
	metrics := analysis.Analyze(req.Text)

	return &dto.PreviewResponse{
		Success:      true,
		RequestID:    req.RequestID,
		EnglishLevel: metrics.Level,
		Analysis: dto.Analysis{
			WordCount:         metrics.WordCount,
			SentenceCount:     metrics.SentenceCount,
			AverageWordLength: strconv.FormatFloat(metrics.AverageWordLength, 'f', 2, 64),
		},
		Message: "Text analyzed successfully",
		Timestamps: dto.Timestamps{
			Client: req.Timestamp,
			Server: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
