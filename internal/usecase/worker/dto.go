package worker

import (
	"time"

	domainUser "skillconnect/internal/domain/user"
	reviewUsecase "skillconnect/internal/usecase/review"
	"skillconnect/pkg/utils"

	"github.com/google/uuid"
)

// AvailabilityAny disables the availability filter. An empty value means available.
const AvailabilityAny = "all"

type ListWorkersRequest struct {
	Category     string   `form:"category" validate:"omitempty,worker_category"`
	Location     string   `form:"location" validate:"omitempty,max=100"`
	Search       string   `form:"search" validate:"omitempty,max=100"`
	MinRating    *float64 `form:"minRating" validate:"omitempty,min=0,max=5"`
	MaxRate      *float64 `form:"maxRate" validate:"omitempty,min=0"`
	Availability string   `form:"availability" validate:"omitempty,oneof=available busy not_taking_jobs all"`
	Near         string   `form:"near" validate:"omitempty,max=64"`
	RadiusKm     *float64 `form:"radiusKm" validate:"omitempty,gt=0,max=500"`
	Page         *int     `form:"page" validate:"omitempty,min=1"`
	Limit        *int     `form:"limit" validate:"omitempty,min=1,max=50"`
}

type FeaturedWorkersRequest struct {
	Limit *int `form:"limit" validate:"omitempty,min=1,max=50"`
}

type UpdateAvailabilityRequest struct {
	Availability string `json:"availability" validate:"required,availability"`
}

// WorkerResponse is the public view of a worker. Guarantor and ID document
// details are never exposed.
type WorkerResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Name         string                     `json:"name"`
	Email        string                     `json:"email,omitempty"`
	Phone        string                     `json:"phone"`
	Category     domainUser.Category        `json:"category"`
	Skills       []string                   `json:"skills"`
	Experience   int                        `json:"experience"`
	Rating       float64                    `json:"rating"`
	ReviewCount  int                        `json:"reviewCount"`
	HourlyRate   float64                    `json:"hourlyRate"`
	Location     *domainUser.Location       `json:"location,omitempty"`
	Availability domainUser.Availability    `json:"availability"`
	IsVerified   bool                       `json:"isVerified"`
	ProfileImage *string                    `json:"profileImage,omitempty"`
	Portfolio    []domainUser.PortfolioItem `json:"portfolio"`
	DistanceKm   *float64                   `json:"distanceKm,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

type WorkerDetailResponse struct {
	*WorkerResponse
	Certifications       []string                        `json:"certifications"`
	IDVerificationStatus string                          `json:"idVerificationStatus,omitempty"`
	Reviews              []*reviewUsecase.ReviewResponse `json:"reviews"`
}

type WorkerListResponse struct {
	Workers    []*WorkerResponse `json:"workers"`
	Pagination utils.Pagination  `json:"pagination"`
}

type CategoryStat struct {
	Category  domainUser.Category `json:"category"`
	Count     int                 `json:"count"`
	Available int                 `json:"available"`
}

func ToWorkerResponse(u *domainUser.User) *WorkerResponse {
	resp := &WorkerResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
		Skills:       []string{},
		Portfolio:    []domainUser.PortfolioItem{},
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if w := u.Worker; w != nil {
		resp.Category = w.Category
		resp.Experience = w.Experience
		resp.Rating = w.Rating
		resp.ReviewCount = w.ReviewCount
		resp.HourlyRate = w.HourlyRate
		resp.Location = w.Location
		resp.Availability = w.Availability
		if w.Skills != nil {
			resp.Skills = w.Skills
		}
		if w.Portfolio != nil {
			resp.Portfolio = w.Portfolio
		}
	}
	return resp
}
