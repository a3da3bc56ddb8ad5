package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"art-auction/internal/auctionerrors"
	"art-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Permanent rejections and retryable system failures get distinct statuses.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	case errors.Is(err, auctionerrors.ErrValidation):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusForbidden, "action not permitted"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrBidTooHigh):
		return http.StatusConflict, "bid exceeds maximum limit"
	case errors.Is(err, auctionerrors.ErrPrecondition):
		return http.StatusConflict, "operation not allowed in current state"
	case errors.Is(err, auctionerrors.ErrAlreadyExists):
		return http.StatusConflict, "record already exists"
	case errors.Is(err, auctionerrors.ErrContention):
		return http.StatusServiceUnavailable, "update contention, please retry"
	case errors.Is(err, auctionerrors.ErrExternalService):
		return http.StatusBadGateway, "payment processor unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError maps the error and sends it, logging the failure.
func RespondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["handler"] = handlerName
	ctx["error"] = err.Error()
	utils.Error(handlerName+": request failed", ctx)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
