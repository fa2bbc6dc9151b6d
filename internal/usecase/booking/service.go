package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainBooking "skillconnect/internal/domain/booking"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/logger"
	"skillconnect/internal/notification"
	userUsecase "skillconnect/internal/usecase/user"
	"skillconnect/internal/validator"
	appErrors "skillconnect/pkg/errors"
	"skillconnect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the booking lifecycle
type Service struct {
	bookingRepo domainBooking.Repository
	userRepo    domainUser.Repository
	notifier    notification.Notifier
	now         func() time.Time
}

func NewService(
	bookingRepo domainBooking.Repository,
	userRepo domainUser.Repository,
	notifier notification.Notifier,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, customerID uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.WorkerID == customerID {
		return nil, appErrors.NewValidationError("Validation failed", appErrors.FieldError{
			Field:   "workerId",
			Message: domainBooking.ErrSelfBooking.Error(),
		})
	}
	scheduledDate, err := validator.ParseISODate(req.ScheduledDate)
	if err != nil {
		return nil, appErrors.NewValidationError("Validation failed", appErrors.FieldError{
			Field:   "scheduledDate",
			Message: "Invalid date format",
		})
	}

	worker, err := s.userRepo.GetByID(ctx, req.WorkerID)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil || !worker.IsWorker() {
		return nil, appErrors.NewNotFoundError("Worker not found", domainUser.ErrUserNotFound)
	}
	if worker.Worker.Availability != domainUser.AvailabilityAvailable {
		logger.Warn("Booking attempt for unavailable worker",
			zap.String("worker_id", worker.ID.String()),
			zap.String("availability", string(worker.Worker.Availability)),
			zap.String("event", "booking_rejected_unavailable"),
		)
		return nil, appErrors.NewConflictError("Worker is not available for bookings", domainBooking.ErrWorkerUnavailable)
	}

	b := &domainBooking.Booking{
		CustomerID:    customerID,
		WorkerID:      worker.ID,
		Category:      worker.Worker.Category,
		Title:         utils.SanitizeString(req.Title),
		Description:   utils.SanitizeText(req.Description),
		ScheduledDate: scheduledDate,
		ScheduledTime: utils.SanitizeString(req.ScheduledTime),
		Location:      req.Location.ToDomain(),
		Status:        domainBooking.StatusPending,
		Images:        append([]string{}, req.Images...),
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("Booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("worker_id", worker.ID.String()),
		zap.String("event", "booking_created"),
	)

	s.notify(ctx, &notification.Event{
		Type:      notification.EventBookingCreated,
		BookingID: b.ID,
		UserID:    b.WorkerID,
		Status:    string(b.Status),
		Message:   "You have a new booking request",
	})

	return ToBookingResponse(b), nil
}

// ListBookingsForUser returns the bookings userID takes part in, newest
// first, each with the other party's summary.
func (s *Service) ListBookingsForUser(ctx context.Context, userID uuid.UUID, req *ListBookingsRequest) (*BookingListResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	page, limit := utils.PageParams(req.Page, req.Limit)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	isWorker := user.Type == domainUser.TypeWorker
	filter := &domainBooking.Filter{}
	if isWorker {
		filter.WorkerID = &user.ID
	} else {
		filter.CustomerID = &user.ID
	}
	if req.Status != nil {
		status := domainBooking.Status(*req.Status)
		filter.Status = &status
	}

	all, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	items, pagination := utils.Paginate(all, page, limit)

	counterpartIDs := make([]uuid.UUID, 0, len(items))
	for _, b := range items {
		if isWorker {
			counterpartIDs = append(counterpartIDs, b.CustomerID)
		} else {
			counterpartIDs = append(counterpartIDs, b.WorkerID)
		}
	}
	counterparts, err := s.userRepo.GetByIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking parties: %w", err)
	}

	bookings := make([]*BookingResponse, 0, len(items))
	for _, b := range items {
		resp := ToBookingResponse(b)
		if isWorker {
			resp.Customer = userUsecase.ToCustomerSummary(counterparts[b.CustomerID])
		} else {
			resp.Worker = userUsecase.ToCustomerSummary(counterparts[b.WorkerID])
		}
		bookings = append(bookings, resp)
	}

	return &BookingListResponse{Bookings: bookings, Pagination: pagination}, nil
}

func (s *Service) GetBookingByID(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.getForParticipant(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}

	parties, err := s.userRepo.GetByIDs(ctx, []uuid.UUID{b.CustomerID, b.WorkerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load booking parties: %w", err)
	}

	resp := ToBookingResponse(b)
	resp.Customer = userUsecase.ToCustomerSummary(parties[b.CustomerID])
	resp.Worker = userUsecase.ToWorkerSummary(parties[b.WorkerID])
	return resp, nil
}

// UpdateStatus moves a booking along the transition table. Writes from a
// terminal status are rejected.
func (s *Service) UpdateStatus(ctx context.Context, actorID, bookingID uuid.UUID, req *UpdateStatusRequest) (*StatusUpdateResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	next := domainBooking.Status(req.Status)

	b, err := s.getForParticipant(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status.IsTerminal() {
		return nil, appErrors.NewConflictError(
			fmt.Sprintf("Booking is already %s", b.Status),
			domainBooking.ErrBookingTerminal,
		)
	}
	if !domainBooking.CanTransition(b.Status, next) {
		return nil, appErrors.NewConflictError(
			fmt.Sprintf("Cannot change booking status from %s to %s", b.Status, next),
			domainBooking.ErrInvalidStatusTransition,
		)
	}

	update := &domainBooking.StatusUpdate{
		From:   b.Status,
		Status: next,
	}
	if req.Reason != nil && *req.Reason != "" {
		reason := utils.SanitizeText(*req.Reason)
		update.Reason = &reason
	}
	if req.Price != nil && next == domainBooking.StatusAccepted {
		price := *req.Price
		update.Price = &price
	}
	if next == domainBooking.StatusCompleted {
		at := s.now()
		update.CompletedAt = &at
	}

	updated, err := s.applyUpdate(ctx, bookingID, update)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(b.Status)),
		zap.String("to", string(next)),
		zap.String("actor_id", actorID.String()),
		zap.String("event", "booking_status_updated"),
	)

	// The customer hears about the worker's decision, the worker about everything else
	recipient := updated.WorkerID
	if next == domainBooking.StatusAccepted || next == domainBooking.StatusRejected {
		recipient = updated.CustomerID
	}
	s.notify(ctx, &notification.Event{
		Type:      notification.EventBookingStatusChanged,
		BookingID: updated.ID,
		UserID:    recipient,
		Status:    string(next),
		Message:   fmt.Sprintf("Booking %s", next),
	})

	return ToStatusUpdateResponse(updated), nil
}

func (s *Service) CancelBooking(ctx context.Context, actorID, bookingID uuid.UUID, req *CancelBookingRequest) (*StatusUpdateResponse, error) {
	if req == nil {
		req = &CancelBookingRequest{}
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	b, err := s.getForParticipant(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, appErrors.NewConflictError(
			"Cannot cancel a completed or already cancelled booking",
			domainBooking.ErrBookingTerminal,
		)
	}

	reason := domainBooking.DefaultCancelReason
	if req.Reason != nil && *req.Reason != "" {
		reason = utils.SanitizeText(*req.Reason)
	}

	updated, err := s.applyUpdate(ctx, bookingID, &domainBooking.StatusUpdate{
		From:   b.Status,
		Status: domainBooking.StatusCancelled,
		Reason: &reason,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(b.Status)),
		zap.String("actor_id", actorID.String()),
		zap.String("event", "booking_cancelled"),
	)

	s.notify(ctx, &notification.Event{
		Type:      notification.EventBookingCancelled,
		BookingID: updated.ID,
		UserID:    updated.WorkerID,
		Status:    string(domainBooking.StatusCancelled),
		Message:   "Booking cancelled",
	})

	return ToStatusUpdateResponse(updated), nil
}

func (s *Service) getForParticipant(ctx context.Context, actorID, bookingID uuid.UUID) (*domainBooking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domainBooking.ErrBookingNotFound) {
			return nil, appErrors.NewNotFoundError("Booking not found", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if actorID != b.CustomerID && actorID != b.WorkerID {
		return nil, appErrors.NewAppError(appErrors.CodeForbidden, "You are not a party to this booking", appErrors.ErrInsufficientPermissions)
	}
	return b, nil
}

func (s *Service) applyUpdate(ctx context.Context, bookingID uuid.UUID, update *domainBooking.StatusUpdate) (*domainBooking.Booking, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, update)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, domainBooking.ErrBookingNotFound):
		return nil, appErrors.NewNotFoundError("Booking not found", err)
	case errors.Is(err, domainBooking.ErrStatusChanged):
		return nil, appErrors.NewConflictError("Booking status changed, please reload and retry", err)
	default:
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
}

func (s *Service) notify(ctx context.Context, event *notification.Event) {
	if s.notifier == nil {
		return
	}
	if event.At.IsZero() {
		event.At = s.now()
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		logger.Warn("Failed to deliver booking notification",
			zap.String("booking_id", event.BookingID.String()),
			zap.String("user_id", event.UserID.String()),
			zap.Error(err),
		)
	}
}
