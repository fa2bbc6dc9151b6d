package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainReview "skillconnect/internal/domain/review"

	"github.com/google/uuid"
)

// ReviewRepository is read-mostly; Add exists so demo data and tests can seed it.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []*domainReview.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Add(review *domainReview.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *review
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.reviews = append(r.reviews, &c)
}

func (r *ReviewRepository) ListByWorker(_ context.Context, workerID uuid.UUID, limit int) ([]*domainReview.Review, error) {
	r.mu.RLock()
	out := make([]*domainReview.Review, 0)
	for _, rev := range r.reviews {
		if rev.WorkerID == workerID {
			c := *rev
			out = append(out, &c)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
