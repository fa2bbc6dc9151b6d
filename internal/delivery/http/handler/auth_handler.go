package handler

import (
	"net/http"

	"skillconnect/internal/usecase/auth"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes mounts /auth. otpLimit guards the endpoints that send or
// check codes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, otpLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/send-otp", otpLimit, h.SendOTP)
		authGroup.POST("/verify-otp", otpLimit, h.VerifyOTP)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/refresh-token", h.RefreshToken)
	}
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req auth.SendOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.SendOTP(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully", resp)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req auth.VerifyOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP verified successfully", resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Registration successful", resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req auth.RefreshTokenRequest

	if err := bindOptionalJSON(c, &req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", resp)
}
