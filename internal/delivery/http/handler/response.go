package handler

import (
	"errors"
	"io"
	"net/http"

	"skillconnect/internal/middleware"
	appErrors "skillconnect/pkg/errors"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithError writes err as an envelope. Usecase errors carry their own
// status and message; anything else is logged and reported as a 500.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) && appErr.Code != appErrors.CodeInternal {
		status := appErrors.StatusCode(err)
		if len(appErr.Details) > 0 {
			utils.ValidationErrorResponse(c, status, appErr.Message, appErr.Details)
			return
		}
		utils.ErrorResponse(c, status, appErr.Message)
		return
	}

	middleware.RequestLogger(c).Error("Internal server error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	_ = c.Error(err)

	message := "Internal server error"
	if gin.Mode() != gin.ReleaseMode {
		message += ": " + err.Error()
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, message)
}

// respondWithBindError reports a body or query that could not be decoded
func respondWithBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
}

// bindOptionalJSON decodes the body into obj and treats an empty body as {}
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == uuid.Nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ValidationErrorResponse(c, http.StatusBadRequest, "Validation failed", []appErrors.FieldError{
			{Field: name, Message: "Invalid " + label + " ID"},
		})
		return uuid.Nil, false
	}
	return id, true
}
