package memory

import (
	"context"
	"testing"

	domainUser "skillconnect/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorker(phone string, category domainUser.Category, rating float64, reviews int, availability domainUser.Availability) *domainUser.User {
	return &domainUser.User{
		Name:       "Worker " + phone,
		Phone:      phone,
		Type:       domainUser.TypeWorker,
		IsVerified: true,
		Worker: &domainUser.WorkerProfile{
			Category:     category,
			Skills:       []string{"wiring"},
			Availability: availability,
			Rating:       rating,
			ReviewCount:  reviews,
		},
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &domainUser.User{Phone: "+2348012345678", IsVerified: true}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domainUser.TypeCustomer, u.Type)

	byPhone, err := repo.GetByPhone(ctx, "+2348012345678")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byPhone.ID)

	err = repo.Create(ctx, &domainUser.User{Phone: "+2348012345678"})
	assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)

	_, err = repo.GetByPhone(ctx, "+2348000000000")
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	w := newWorker("+2348011111111", domainUser.CategoryPlumber, 4, 2, domainUser.AvailabilityAvailable)
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	got.Worker.Availability = domainUser.AvailabilityBusy
	got.Worker.Skills[0] = "changed"

	again, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domainUser.AvailabilityAvailable, again.Worker.Availability)
	assert.Equal(t, "wiring", again.Worker.Skills[0])
}

func TestUserRepository_ListWorkers(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, newWorker("+2348010000001", domainUser.CategoryPlumber, 4.0, 10, domainUser.AvailabilityAvailable)))
	require.NoError(t, repo.Create(ctx, newWorker("+2348010000002", domainUser.CategoryPlumber, 4.5, 1, domainUser.AvailabilityAvailable)))
	require.NoError(t, repo.Create(ctx, newWorker("+2348010000003", domainUser.CategoryPlumber, 4.0, 20, domainUser.AvailabilityAvailable)))
	require.NoError(t, repo.Create(ctx, newWorker("+2348010000004", domainUser.CategoryTailor, 5.0, 3, domainUser.AvailabilityBusy)))
	require.NoError(t, repo.Create(ctx, &domainUser.User{Phone: "+2348010000005"}))

	category := domainUser.CategoryPlumber
	workers, err := repo.ListWorkers(ctx, &domainUser.WorkerFilter{Category: &category, OrderByRating: true})
	require.NoError(t, err)
	require.Len(t, workers, 3)
	assert.Equal(t, "+2348010000002", workers[0].Phone)
	assert.Equal(t, "+2348010000003", workers[1].Phone)
	assert.Equal(t, "+2348010000001", workers[2].Phone)

	available := domainUser.AvailabilityAvailable
	minRating := 4.2
	workers, err = repo.ListWorkers(ctx, &domainUser.WorkerFilter{Availability: &available, MinRating: &minRating})
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, 4.5, workers[0].Worker.Rating)

	workers, err = repo.ListWorkers(ctx, &domainUser.WorkerFilter{OrderByRating: true, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, workers, 2)
	assert.Equal(t, 5.0, workers[0].Worker.Rating)
}

func TestUserRepository_CountAvailableByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, newWorker("+2348010000001", domainUser.CategoryPlumber, 0, 0, domainUser.AvailabilityAvailable)))
	require.NoError(t, repo.Create(ctx, newWorker("+2348010000002", domainUser.CategoryPlumber, 0, 0, domainUser.AvailabilityAvailable)))
	require.NoError(t, repo.Create(ctx, newWorker("+2348010000003", domainUser.CategoryTailor, 0, 0, domainUser.AvailabilityBusy)))

	counts, err := repo.CountAvailableByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domainUser.CategoryCount{{Category: domainUser.CategoryPlumber, Count: 2}}, counts)
}

func TestUserRepository_UpdateAvailability(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	w := newWorker("+2348010000001", domainUser.CategoryPlumber, 0, 0, domainUser.AvailabilityAvailable)
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.UpdateAvailability(ctx, w.ID, domainUser.AvailabilityBusy))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domainUser.AvailabilityBusy, got.Worker.Availability)

	customer := &domainUser.User{Phone: "+2348010000009"}
	require.NoError(t, repo.Create(ctx, customer))
	assert.ErrorIs(t, repo.UpdateAvailability(ctx, customer.ID, domainUser.AvailabilityBusy), domainUser.ErrUserNotFound)
}
