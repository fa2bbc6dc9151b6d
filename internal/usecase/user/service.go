package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "skillconnect/internal/domain/user"
	appErrors "skillconnect/pkg/errors"

	"github.com/google/uuid"
)

// Service implements profile reads for the authenticated user
type Service struct {
	userRepo domainUser.Repository
}

func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

// Me returns the profile of the calling user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return ToUserResponse(u), nil
}
