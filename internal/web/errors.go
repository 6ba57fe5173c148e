package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/taskring/internal/domain"
)

// APIError is the error body returned by every endpoint.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func badRequest(code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// toAPIError maps domain errors to HTTP statuses.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, domain.ErrTaskNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "task_not_found", Message: err.Error()}
	case errors.Is(err, domain.ErrCategoryNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "category_not_found", Message: err.Error()}
	case errors.Is(err, domain.ErrTaskConflict):
		return &APIError{Status: http.StatusConflict, Code: "task_conflict", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInterval):
		return badRequest("invalid_interval", err.Error())
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"}
	}
}

func writeError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	c.JSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
