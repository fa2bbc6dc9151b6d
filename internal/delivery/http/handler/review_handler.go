package handler

import (
	"net/http"

	"skillconnect/internal/usecase/review"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service *review.Service
}

func NewReviewHandler(service *review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reviews/worker/:workerId", h.ListWorkerReviews)
}

func (h *ReviewHandler) ListWorkerReviews(c *gin.Context) {
	workerID, ok := uuidParam(c, "workerId", "worker")
	if !ok {
		return
	}

	var req review.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	reviews, err := h.service.ListByWorker(c.Request.Context(), workerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}
