package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrdesk/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors and failures to HTTP status codes
// and error codes. The Failure reason is passed through verbatim: it is the
// user-visible message the screens render.
func MapDomainError(err error) (status int, code, msg string) {
	var f *domain.Failure
	if errors.As(err, &f) {
		switch f.Kind {
		case domain.FailureValidation:
			return http.StatusBadRequest, "VALIDATION_FAILED", f.Reason
		case domain.FailureRemoteValidation:
			return http.StatusUnprocessableEntity, "REMOTE_VALIDATION_FAILED", f.Reason
		case domain.FailureNotFound:
			return http.StatusNotFound, "NOT_FOUND", f.Reason
		case domain.FailureNetwork:
			return http.StatusBadGateway, "REMOTE_UNREACHABLE", f.Reason
		case domain.FailureTimeout:
			return http.StatusGatewayTimeout, "REMOTE_TIMEOUT", f.Reason
		case domain.FailureServer:
			return http.StatusBadGateway, "REMOTE_ERROR", f.Reason
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR", f.Reason
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUnknownResource):
		return http.StatusNotFound, "UNKNOWN_RESOURCE", "unknown resource kind"
	case errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in progress"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
