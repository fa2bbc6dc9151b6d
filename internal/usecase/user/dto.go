package user

import (
	"time"

	domainUser "skillconnect/internal/domain/user"

	"github.com/google/uuid"
)

// WorkerProfileResponse is flattened into UserResponse for workers
type WorkerProfileResponse struct {
	Category       domainUser.Category        `json:"category"`
	Skills         []string                   `json:"skills"`
	Experience     int                        `json:"experience"`
	HourlyRate     float64                    `json:"hourlyRate"`
	Location       *domainUser.Location       `json:"location,omitempty"`
	Availability   domainUser.Availability    `json:"availability"`
	Rating         float64                    `json:"rating"`
	ReviewCount    int                        `json:"reviewCount"`
	Portfolio      []domainUser.PortfolioItem `json:"portfolio"`
	Certifications []string                   `json:"certifications"`
	Guarantor      *domainUser.Guarantor      `json:"guarantor,omitempty"`
	IDVerification *domainUser.IDVerification `json:"idVerification,omitempty"`
}

type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Type         domainUser.Type `json:"type"`
	IsVerified   bool            `json:"isVerified"`
	ProfileImage *string         `json:"profileImage,omitempty"`

	*WorkerProfileResponse

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SummaryResponse is the counterpart embedded in booking responses.
// Category and rating are set for workers only.
type SummaryResponse struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	ProfileImage *string             `json:"profileImage,omitempty"`
	Category     domainUser.Category `json:"category,omitempty"`
	Rating       *float64            `json:"rating,omitempty"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Type:         u.Type,
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.IsWorker() {
		resp.WorkerProfileResponse = ToWorkerProfileResponse(u.Worker)
	}
	return resp
}

func ToWorkerProfileResponse(w *domainUser.WorkerProfile) *WorkerProfileResponse {
	return &WorkerProfileResponse{
		Category:       w.Category,
		Skills:         nonNil(w.Skills),
		Experience:     w.Experience,
		HourlyRate:     w.HourlyRate,
		Location:       w.Location,
		Availability:   w.Availability,
		Rating:         w.Rating,
		ReviewCount:    w.ReviewCount,
		Portfolio:      nonNil(w.Portfolio),
		Certifications: nonNil(w.Certifications),
		Guarantor:      w.Guarantor,
		IDVerification: w.IDVerification,
	}
}

// ToCustomerSummary omits worker-only fields
func ToCustomerSummary(u *domainUser.User) *SummaryResponse {
	if u == nil {
		return nil
	}
	return &SummaryResponse{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
	}
}

func ToWorkerSummary(u *domainUser.User) *SummaryResponse {
	if u == nil {
		return nil
	}
	s := u.Summary()
	rating := s.Rating
	return &SummaryResponse{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		ProfileImage: s.ProfileImage,
		Category:     s.Category,
		Rating:       &rating,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// LocationRequest is the location shape accepted by every endpoint
type LocationRequest struct {
	Address   string   `json:"address" validate:"required,min=3,max=300"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	City      string   `json:"city" validate:"omitempty,max=100"`
	State     string   `json:"state" validate:"omitempty,max=100"`
	Country   string   `json:"country" validate:"omitempty,max=100"`
}

// ToDomain assumes the request passed validation
func (l *LocationRequest) ToDomain() domainUser.Location {
	loc := domainUser.Location{
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		Country: l.Country,
	}
	if l.Latitude != nil {
		loc.Latitude = *l.Latitude
	}
	if l.Longitude != nil {
		loc.Longitude = *l.Longitude
	}
	return loc
}
