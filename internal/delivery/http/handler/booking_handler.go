package handler

import (
	"net/http"

	"skillconnect/internal/usecase/booking"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *booking.Service
}

func NewBookingHandler(service *booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes mounts the booking endpoints on an authenticated group
func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/user/:userId", h.ListUserBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.DELETE("/:id", h.CancelBooking)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.CreateBooking(c.Request.Context(), customerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Booking created successfully", resp)
}

// ListUserBookings lists bookings where the caller is customer or worker.
// Callers can only list their own.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}
	if userID != callerID {
		utils.ErrorResponse(c, http.StatusForbidden, "You can only view your own bookings")
		return
	}

	var req booking.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListBookingsForUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bookings retrieved successfully", resp)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking")
	if !ok {
		return
	}

	resp, err := h.service.GetBookingByID(c.Request.Context(), actorID, bookingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Booking retrieved successfully", resp)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking")
	if !ok {
		return
	}

	var req booking.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actorID, bookingID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Booking status updated successfully", resp)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking")
	if !ok {
		return
	}

	var req booking.CancelBookingRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.CancelBooking(c.Request.Context(), actorID, bookingID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Booking cancelled successfully", resp)
}
