package handler

import (
	"errors"
	"net/http"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/esimhub/backend/internal/interfaces/http/dto"
	"github.com/esimhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDHeader); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// DomainError maps a domain or provider error to its HTTP response.
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound),
		errors.Is(err, ordering.ErrLineItemNotFound),
		errors.Is(err, ordering.ErrNotProvisioned),
		errors.Is(err, ordering.ErrProvisioningNoQRCode),
		errors.Is(err, catalog.ErrRegionNotFound),
		errors.Is(err, catalog.ErrCollectionNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		h.ErrorWithCode(c, dto.ErrCodeNotFound, err.Error())

	case errors.Is(err, ordering.ErrOrderNoLineItems),
		errors.Is(err, ordering.ErrLineItemMissingPlan):
		h.ErrorWithCode(c, dto.ErrCodeInvalidState, err.Error())

	case errors.Is(err, provider.ErrUnavailable):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, err.Error())

	case errors.Is(err, provider.ErrInvalidResponse):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamInvalid, err.Error())

	case errors.Is(err, provider.ErrRequestFailed),
		errors.Is(err, provider.ErrTokenUnavailable),
		errors.Is(err, ordering.ErrProvisioningFailed):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamFailed, err.Error())

	default:
		h.ErrorWithCode(c, dto.ErrCodeInternal, err.Error())
	}
}
