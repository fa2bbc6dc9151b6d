package auth

import (
	domainUser "skillconnect/internal/domain/user"
	userUsecase "skillconnect/internal/usecase/user"
)

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,ng_phone"`
}

type SendOTPResponse struct {
	ExpiresIn int `json:"expiresIn"` // seconds

	// Only populated outside production when OTP_EXPOSE_IN_DEMO is set
	Code string `json:"code,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,ng_phone"`
	OTP   string `json:"otp" validate:"required,numeric,min=4,max=8"`
}

type AuthResponse struct {
	User      *userUsecase.UserResponse `json:"user"`
	Token     string                    `json:"token"`
	ExpiresAt int64                     `json:"expiresAt"`
}

type VerifyOTPResponse struct {
	AuthResponse
	IsNewUser bool `json:"isNewUser"`
}

type GuarantorRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Phone        string  `json:"phone" validate:"required,ng_phone"`
	Relationship string  `json:"relationship" validate:"required,max=50"`
	IDNumber     *string `json:"idNumber" validate:"omitempty,max=50"`
}

type IDVerificationRequest struct {
	IDType     string `json:"idType" validate:"required,oneof=national_id drivers_license passport"`
	IDNumber   string `json:"idNumber" validate:"required,max=50"`
	IDImageURL string `json:"idImageUrl" validate:"required,url"`
}

type PortfolioItemRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	CompletedAt string `json:"completedAt" validate:"omitempty,iso_date"`
}

// RegisterRequest completes the profile of a phone-verified user. The
// worker fields are only read when Type is worker.
type RegisterRequest struct {
	Phone        string  `json:"phone" validate:"required,ng_phone"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	Type         string  `json:"type" validate:"required,user_type"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`

	Category       string                       `json:"category" validate:"required_if=Type worker,omitempty,worker_category"`
	Skills         []string                     `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
	Experience     int                          `json:"experience" validate:"min=0,max=60"`
	HourlyRate     float64                      `json:"hourlyRate" validate:"min=0"`
	Location       *userUsecase.LocationRequest `json:"location" validate:"omitempty"`
	Portfolio      []PortfolioItemRequest       `json:"portfolio" validate:"omitempty,max=20,dive"`
	Certifications []string                     `json:"certifications" validate:"omitempty,max=20,dive,min=1,max=100"`
	Guarantor      *GuarantorRequest            `json:"guarantor" validate:"omitempty"`
	IDVerification *IDVerificationRequest       `json:"idVerification" validate:"omitempty"`
}

func (r *RegisterRequest) UserType() domainUser.Type {
	return domainUser.Type(r.Type)
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type RefreshTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
