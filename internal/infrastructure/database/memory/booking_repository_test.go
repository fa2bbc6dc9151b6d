package memory

import (
	"context"
	"testing"
	"time"

	domainBooking "skillconnect/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_UpdateStatusComparesFrom(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	b := &domainBooking.Booking{CustomerID: uuid.New(), WorkerID: uuid.New(), Title: "Fix sink"}
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, domainBooking.StatusPending, b.Status)

	price := 5000.0
	updated, err := repo.UpdateStatus(ctx, b.ID, &domainBooking.StatusUpdate{
		From:   domainBooking.StatusPending,
		Status: domainBooking.StatusAccepted,
		Price:  &price,
	})
	require.NoError(t, err)
	assert.Equal(t, domainBooking.StatusAccepted, updated.Status)
	require.NotNil(t, updated.Price)
	assert.Equal(t, price, *updated.Price)

	// A second writer that read "pending" loses
	_, err = repo.UpdateStatus(ctx, b.ID, &domainBooking.StatusUpdate{
		From:   domainBooking.StatusPending,
		Status: domainBooking.StatusRejected,
	})
	assert.ErrorIs(t, err, domainBooking.ErrStatusChanged)

	_, err = repo.UpdateStatus(ctx, uuid.New(), &domainBooking.StatusUpdate{From: domainBooking.StatusPending, Status: domainBooking.StatusAccepted})
	assert.ErrorIs(t, err, domainBooking.ErrBookingNotFound)
}

func TestBookingRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	customer := uuid.New()
	worker := uuid.New()
	first := &domainBooking.Booking{CustomerID: customer, WorkerID: worker}
	second := &domainBooking.Booking{CustomerID: customer, WorkerID: worker}
	other := &domainBooking.Booking{CustomerID: uuid.New(), WorkerID: worker}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.List(ctx, &domainBooking.Filter{CustomerID: &customer})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	list, err = repo.List(ctx, &domainBooking.Filter{WorkerID: &worker})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	cancelled := domainBooking.StatusCancelled
	list, err = repo.List(ctx, &domainBooking.Filter{WorkerID: &worker, Status: &cancelled})
	require.NoError(t, err)
	assert.Empty(t, list)
}
