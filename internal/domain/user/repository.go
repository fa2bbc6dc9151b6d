package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateAvailability(ctx context.Context, userID uuid.UUID, availability Availability) error

	ListWorkers(ctx context.Context, filter *WorkerFilter) ([]*User, error)
	CountAvailableByCategory(ctx context.Context) ([]CategoryCount, error)
}

// WorkerFilter holds the equality and threshold filters applied by the store.
// Substring and range filters are applied by the caller.
type WorkerFilter struct {
	Category     *Category
	Availability *Availability
	MinRating    *float64
	VerifiedOnly bool

	// When set, results are ordered by rating then review count, both descending
	OrderByRating bool
	Limit         int
}
