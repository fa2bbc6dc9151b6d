package postgres

import (
	"context"
	"fmt"

	domainReview "skillconnect/internal/domain/review"
	"skillconnect/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, limit int) ([]*domainReview.Review, error) {
	db := r.db.DB.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var dbModels []models.ReviewModel
	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*domainReview.Review, len(dbModels))
	for i, m := range dbModels {
		reviews[i] = &domainReview.Review{
			ID:         m.ID,
			BookingID:  m.BookingID,
			CustomerID: m.CustomerID,
			WorkerID:   m.WorkerID,
			Rating:     m.Rating,
			Comment:    m.Comment,
			CreatedAt:  m.CreatedAt,
		}
	}
	return reviews, nil
}
