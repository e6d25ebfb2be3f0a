package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gstflow/internal/domain"
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

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "validation session not found"
	case errors.Is(err, domain.ErrNoRows):
		return http.StatusBadRequest, "NO_ROWS", "spreadsheet contains no data rows"
	case errors.Is(err, domain.ErrNoInvoices):
		return http.StatusBadRequest, "NO_INVOICES", "no invoices supplied"
	case errors.Is(err, domain.ErrMissingCustomer):
		return http.StatusBadRequest, "MISSING_CUSTOMER", "first row has no customer name"
	case errors.Is(err, domain.ErrAllInvoicesFailed):
		return http.StatusUnprocessableEntity, "ALL_INVOICES_FAILED", "no invoice could be built from the rows"
	case errors.Is(err, domain.ErrInvalidAPIToken):
		return http.StatusUnauthorized, "INVALID_API_TOKEN", "api token must be of the form key:secret"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx, xlsm, csv"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().Str("request_id", c.GetString("request_id")).Err(err).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
