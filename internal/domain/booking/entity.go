package booking

import (
	"time"

	domainUser "skillconnect/internal/domain/user"

	"github.com/google/uuid"
)

// Status represents the lifecycle stage of a booking
type Status string

const (
	StatusPending    Status = "pending"     // Customer requested, awaiting worker
	StatusAccepted   Status = "accepted"    // Worker agreed, price may be set
	StatusRejected   Status = "rejected"    // Worker declined
	StatusInProgress Status = "in_progress" // Work has started
	StatusCompleted  Status = "completed"   // Work done
	StatusCancelled  Status = "cancelled"   // Called off before completion
)

// DefaultCancelReason is recorded when a cancellation carries no reason
const DefaultCancelReason = "Cancelled by user"

// Statuses returns every known status
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusAccepted,
		StatusRejected,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// Booking is a scheduled service engagement between a customer and a worker
type Booking struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	WorkerID   uuid.UUID

	// Copied from the worker when the booking is created
	Category domainUser.Category

	Title         string
	Description   string
	ScheduledDate time.Time
	ScheduledTime string
	Location      domainUser.Location

	Status Status
	Price  *float64
	Images []string
	Reason *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// StatusUpdate describes a single status write. The store applies it only
// while the booking is still in From, so concurrent writers cannot both win.
type StatusUpdate struct {
	From        Status
	Status      Status
	Reason      *string
	Price       *float64
	CompletedAt *time.Time
}
