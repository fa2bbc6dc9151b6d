package booking

import (
	"time"

	domainBooking "skillconnect/internal/domain/booking"
	domainUser "skillconnect/internal/domain/user"
	userUsecase "skillconnect/internal/usecase/user"
	"skillconnect/pkg/utils"

	"github.com/google/uuid"
)

// Request DTOs
type CreateBookingRequest struct {
	WorkerID      uuid.UUID                    `json:"workerId" validate:"required"`
	Title         string                       `json:"title" validate:"required,min=5,max=200"`
	Description   string                       `json:"description" validate:"required,min=10,max=2000"`
	ScheduledDate string                       `json:"scheduledDate" validate:"required,iso_date"`
	ScheduledTime string                       `json:"scheduledTime" validate:"required,max=20"`
	Location      *userUsecase.LocationRequest `json:"location" validate:"required"`
	Images        []string                     `json:"images" validate:"omitempty,max=10,dive,url"`
}

type ListBookingsRequest struct {
	Status *string `form:"status" validate:"omitempty,booking_status"`
	Page   *int    `form:"page" validate:"omitempty,min=1"`
	Limit  *int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

type UpdateStatusRequest struct {
	Status string   `json:"status" validate:"required,booking_status"`
	Reason *string  `json:"reason" validate:"omitempty,max=500"`
	Price  *float64 `json:"price" validate:"omitempty,gt=0"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs
type BookingResponse struct {
	ID            uuid.UUID            `json:"id"`
	CustomerID    uuid.UUID            `json:"customerId"`
	WorkerID      uuid.UUID            `json:"workerId"`
	Category      domainUser.Category  `json:"category"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	ScheduledDate time.Time            `json:"scheduledDate"`
	ScheduledTime string               `json:"scheduledTime"`
	Location      domainUser.Location  `json:"location"`
	Status        domainBooking.Status `json:"status"`
	Price         *float64             `json:"price,omitempty"`
	Images        []string             `json:"images"`
	Reason        *string              `json:"reason,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`

	// Set on detail reads; list reads set only the counterpart
	Customer *userUsecase.SummaryResponse `json:"customer,omitempty"`
	Worker   *userUsecase.SummaryResponse `json:"worker,omitempty"`
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	Pagination utils.Pagination   `json:"pagination"`
}

type StatusUpdateResponse struct {
	BookingID   uuid.UUID            `json:"bookingId"`
	Status      domainBooking.Status `json:"status"`
	Price       *float64             `json:"price,omitempty"`
	Reason      *string              `json:"reason,omitempty"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
}

func ToBookingResponse(b *domainBooking.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	images := b.Images
	if images == nil {
		images = []string{}
	}
	return &BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		WorkerID:      b.WorkerID,
		Category:      b.Category,
		Title:         b.Title,
		Description:   b.Description,
		ScheduledDate: b.ScheduledDate,
		ScheduledTime: b.ScheduledTime,
		Location:      b.Location,
		Status:        b.Status,
		Price:         b.Price,
		Images:        images,
		Reason:        b.Reason,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CompletedAt:   b.CompletedAt,
	}
}

func ToStatusUpdateResponse(b *domainBooking.Booking) *StatusUpdateResponse {
	return &StatusUpdateResponse{
		BookingID:   b.ID,
		Status:      b.Status,
		Price:       b.Price,
		Reason:      b.Reason,
		UpdatedAt:   b.UpdatedAt,
		CompletedAt: b.CompletedAt,
	}
}
