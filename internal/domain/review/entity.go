package review

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a finished booking. Reviews are written
// by a separate subsystem; this service only reads them.
type Review struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	CustomerID uuid.UUID
	WorkerID   uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Repository defines read access to reviews
type Repository interface {
	// ListByWorker returns up to limit reviews, newest first
	ListByWorker(ctx context.Context, workerID uuid.UUID, limit int) ([]*Review, error)
}
