package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for booking repository operations
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, update *StatusUpdate) (*Booking, error)

	// List returns every booking matching filter, newest first
	List(ctx context.Context, filter *Filter) ([]*Booking, error)
}

// Filter represents equality filters for listing bookings
type Filter struct {
	CustomerID *uuid.UUID
	WorkerID   *uuid.UUID
	Status     *Status
}
