package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainReview "skillconnect/internal/domain/review"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/logger"
	reviewUsecase "skillconnect/internal/usecase/review"
	"skillconnect/internal/validator"
	appErrors "skillconnect/pkg/errors"
	"skillconnect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recentReviewsLimit   = 10
	defaultFeaturedLimit = 6
)

// Service implements the worker directory
type Service struct {
	userRepo   domainUser.Repository
	reviewRepo domainReview.Repository
}

func NewService(userRepo domainUser.Repository, reviewRepo domainReview.Repository) *Service {
	return &Service{userRepo: userRepo, reviewRepo: reviewRepo}
}

// ListWorkers applies equality filters in the store and the remaining
// substring, rate and distance filters here, then sorts and paginates.
func (s *Service) ListWorkers(ctx context.Context, req *ListWorkersRequest) (*WorkerListResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	page, limit := utils.PageParams(req.Page, req.Limit)

	var near *geoPoint
	if req.Near != "" {
		p, err := parseNear(req.Near)
		if err != nil {
			return nil, appErrors.NewValidationError("Validation failed", appErrors.FieldError{
				Field:   "near",
				Message: err.Error(),
			})
		}
		near = p
	} else if req.RadiusKm != nil {
		return nil, appErrors.NewValidationError("Validation failed", appErrors.FieldError{
			Field:   "near",
			Message: "near is required with radiusKm",
		})
	}

	filter := &domainUser.WorkerFilter{MinRating: req.MinRating}
	if req.Category != "" {
		category := domainUser.Category(req.Category)
		filter.Category = &category
	}
	switch req.Availability {
	case AvailabilityAny:
	case "":
		available := domainUser.AvailabilityAvailable
		filter.Availability = &available
	default:
		availability := domainUser.Availability(req.Availability)
		filter.Availability = &availability
	}

	candidates, err := s.userRepo.ListWorkers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	location := strings.ToLower(strings.TrimSpace(req.Location))
	radius := defaultRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	workers := make([]*domainUser.User, 0, len(candidates))
	distances := make(map[uuid.UUID]float64)
	for _, u := range candidates {
		if !u.IsWorker() {
			continue
		}
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		if location != "" && !matchesLocation(u, location) {
			continue
		}
		if req.MaxRate != nil && u.Worker.HourlyRate > *req.MaxRate {
			continue
		}
		if near != nil {
			if u.Worker.Location == nil {
				continue
			}
			d := near.distanceKm(u.Worker.Location)
			if d > radius {
				continue
			}
			distances[u.ID] = d
		}
		workers = append(workers, u)
	}

	sortByRating(workers)
	items, pagination := utils.Paginate(workers, page, limit)

	out := make([]*WorkerResponse, 0, len(items))
	for _, u := range items {
		resp := ToWorkerResponse(u)
		if d, ok := distances[u.ID]; ok {
			resp.DistanceKm = &d
		}
		out = append(out, resp)
	}

	return &WorkerListResponse{Workers: out, Pagination: pagination}, nil
}

func (s *Service) GetWorkerByID(ctx context.Context, workerID uuid.UUID) (*WorkerDetailResponse, error) {
	u, err := s.getWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByWorker(ctx, workerID, recentReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	detail := &WorkerDetailResponse{
		WorkerResponse: ToWorkerResponse(u),
		Certifications: []string{},
		Reviews:        reviewUsecase.ToReviewResponses(reviews),
	}
	if u.Worker.Certifications != nil {
		detail.Certifications = u.Worker.Certifications
	}
	if u.Worker.IDVerification != nil {
		detail.IDVerificationStatus = u.Worker.IDVerification.Status
	}
	return detail, nil
}

// FeaturedWorkers returns available, verified workers with the best ratings
func (s *Service) FeaturedWorkers(ctx context.Context, req *FeaturedWorkersRequest) ([]*WorkerResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	limit := defaultFeaturedLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	available := domainUser.AvailabilityAvailable
	workers, err := s.userRepo.ListWorkers(ctx, &domainUser.WorkerFilter{
		Availability:  &available,
		VerifiedOnly:  true,
		OrderByRating: true,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list featured workers: %w", err)
	}

	out := make([]*WorkerResponse, 0, len(workers))
	for _, u := range workers {
		out = append(out, ToWorkerResponse(u))
	}
	return out, nil
}

// CategoryStats counts available workers per category
func (s *Service) CategoryStats(ctx context.Context) ([]*CategoryStat, error) {
	counts, err := s.userRepo.CountAvailableByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}

	out := make([]*CategoryStat, 0, len(counts))
	for _, c := range counts {
		if c.Category == "" {
			continue
		}
		out = append(out, &CategoryStat{Category: c.Category, Count: c.Count, Available: c.Count})
	}
	return out, nil
}

// UpdateAvailability lets a worker change their own availability
func (s *Service) UpdateAvailability(ctx context.Context, workerID uuid.UUID, req *UpdateAvailabilityRequest) (*WorkerResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsWorker() {
		return nil, appErrors.NewAppError(appErrors.CodeForbidden, "Only workers can update availability", domainUser.ErrNotAWorker)
	}

	availability := domainUser.Availability(req.Availability)
	if err := s.userRepo.UpdateAvailability(ctx, workerID, availability); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	logger.Info("Worker availability updated",
		zap.String("worker_id", workerID.String()),
		zap.String("from", string(u.Worker.Availability)),
		zap.String("to", string(availability)),
		zap.String("event", "availability_updated"),
	)

	u.Worker.Availability = availability
	return ToWorkerResponse(u), nil
}

func (s *Service) getWorker(ctx context.Context, workerID uuid.UUID) (*domainUser.User, error) {
	u, err := s.userRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("Worker not found", err)
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if !u.IsWorker() {
		return nil, appErrors.NewNotFoundError("User is not a worker", domainUser.ErrUserNotFound)
	}
	return u, nil
}
