package handler

import (
	"net/http"

	"skillconnect/internal/usecase/worker"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	service *worker.Service
}

func NewWorkerHandler(service *worker.Service) *WorkerHandler {
	return &WorkerHandler{service: service}
}

// RegisterRoutes mounts the public worker directory
func (h *WorkerHandler) RegisterRoutes(router *gin.RouterGroup) {
	workers := router.Group("/workers")
	{
		workers.GET("", h.ListWorkers)
		workers.GET("/featured/list", h.FeaturedWorkers)
		workers.GET("/categories/stats", h.CategoryStats)
		workers.GET("/:id", h.GetWorker)
	}
}

// RegisterWorkerRoutes mounts endpoints reserved for authenticated workers
func (h *WorkerHandler) RegisterWorkerRoutes(router *gin.RouterGroup) {
	router.PATCH("/workers/me/availability", h.UpdateAvailability)
}

func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	var req worker.ListWorkersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListWorkers(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Workers retrieved successfully", resp)
}

func (h *WorkerHandler) GetWorker(c *gin.Context) {
	workerID, ok := uuidParam(c, "id", "worker")
	if !ok {
		return
	}

	resp, err := h.service.GetWorkerByID(c.Request.Context(), workerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Worker retrieved successfully", resp)
}

func (h *WorkerHandler) FeaturedWorkers(c *gin.Context) {
	var req worker.FeaturedWorkersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.FeaturedWorkers(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Featured workers retrieved successfully", resp)
}

func (h *WorkerHandler) CategoryStats(c *gin.Context) {
	stats, err := h.service.CategoryStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category statistics retrieved successfully", stats)
}

func (h *WorkerHandler) UpdateAvailability(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req worker.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.service.UpdateAvailability(c.Request.Context(), workerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Availability updated successfully", resp)
}
