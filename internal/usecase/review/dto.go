package review

import (
	"time"

	domainReview "skillconnect/internal/domain/review"

	"github.com/google/uuid"
)

type ListReviewsRequest struct {
	Limit *int `form:"limit" validate:"omitempty,min=1,max=50"`
}

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"bookingId"`
	CustomerID uuid.UUID `json:"customerId"`
	WorkerID   uuid.UUID `json:"workerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToReviewResponse(r *domainReview.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		CustomerID: r.CustomerID,
		WorkerID:   r.WorkerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReviewResponses(reviews []*domainReview.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out
}
