package service

import (
	"context"
	"fmt"

	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/identity"
	"vidvaan/internal/logger"

	"go.uber.org/zap"
)

// UserService maintains the account row derived from verified identities.
type UserService interface {
	// UpsertProfile creates the account on first login and refreshes
	// email, phone and last_login on every later one.
	UpsertProfile(ctx context.Context, ident *identity.Identity, phone string) (*dto.UpsertUserResponse, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) UpsertProfile(ctx context.Context, ident *identity.Identity, phone string) (*dto.UpsertUserResponse, error) {
	// Phone-only accounts carry no email claim; the account row requires one.
	if ident.Email == "" {
		return nil, domain.NewInvalidInputError("User email not found in token. Please ensure your account has a valid email address.")
	}

	user, err := s.userRepo.UpsertUser(ctx, ident.UID, ident.Email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user in repository: %w", err)
	}

	logger.Get().Info("User profile upserted",
		zap.String("userID", user.ID),
		zap.String("email", user.Email))

	return &dto.UpsertUserResponse{
		Success: true,
		User: dto.UserProfile{
			UserID:            user.ID,
			Email:             user.Email,
			Phone:             user.Phone,
			AccountStatus:     string(user.AccountStatus),
			QuotaLimitEnglish: user.QuotaLimit,
			QuotaUsedEnglish:  user.QuotaUsed,
		},
	}, nil
}
