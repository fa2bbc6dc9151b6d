package review

import (
	"context"
	"testing"
	"time"

	domainReview "skillconnect/internal/domain/review"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/infrastructure/database/memory"
	appErrors "skillconnect/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByWorker(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Reviews, store.Users)

	worker := &domainUser.User{
		Phone:  "+2348010000002",
		Type:   domainUser.TypeWorker,
		Worker: &domainUser.WorkerProfile{Category: domainUser.CategoryTailor},
	}
	require.NoError(t, store.Users.Create(ctx, worker))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		store.Reviews.Add(&domainReview.Review{
			WorkerID:  worker.ID,
			Rating:    i%5 + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	store.Reviews.Add(&domainReview.Review{WorkerID: uuid.New(), Rating: 1, CreatedAt: base})

	reviews, err := svc.ListByWorker(ctx, worker.ID, &ListReviewsRequest{})
	require.NoError(t, err)
	require.Len(t, reviews, 10)
	assert.True(t, reviews[0].CreatedAt.Equal(base.Add(11*time.Hour)))

	limit := 3
	reviews, err = svc.ListByWorker(ctx, worker.ID, &ListReviewsRequest{Limit: &limit})
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	_, err = svc.ListByWorker(ctx, uuid.New(), &ListReviewsRequest{})
	assert.True(t, appErrors.HasCode(err, appErrors.CodeNotFound))
}
