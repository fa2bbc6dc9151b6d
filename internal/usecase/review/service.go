package review

import (
	"context"
	"errors"
	"fmt"

	domainReview "skillconnect/internal/domain/review"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/validator"
	appErrors "skillconnect/pkg/errors"

	"github.com/google/uuid"
)

const defaultLimit = 10

// Service exposes read access to worker reviews
type Service struct {
	reviewRepo domainReview.Repository
	userRepo   domainUser.Repository
}

func NewService(reviewRepo domainReview.Repository, userRepo domainUser.Repository) *Service {
	return &Service{reviewRepo: reviewRepo, userRepo: userRepo}
}

func (s *Service) ListByWorker(ctx context.Context, workerID uuid.UUID, req *ListReviewsRequest) ([]*ReviewResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	limit := defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	worker, err := s.userRepo.GetByID(ctx, workerID)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil || worker.Type != domainUser.TypeWorker {
		return nil, appErrors.NewNotFoundError("Worker not found", domainUser.ErrUserNotFound)
	}

	reviews, err := s.reviewRepo.ListByWorker(ctx, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return ToReviewResponses(reviews), nil
}
