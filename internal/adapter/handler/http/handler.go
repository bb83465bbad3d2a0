package http

import (
	"errors"
	"net/http"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,
	domain.ErrValidation:    http.StatusBadRequest,

	domain.ErrPaymentFailed:     http.StatusPaymentRequired,
	domain.ErrRefundNotAllowed:  http.StatusUnprocessableEntity,
	domain.ErrInsufficientStock: http.StatusConflict,
}

// statusFromError maps core errors to HTTP statuses. Typed state errors land
// on 409; anything unknown is a 500.
func statusFromError(err error) (int, bool) {
	for target, code := range errorStatusMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, known := statusFromError(err)
	if !known {
		h.logger.Error("error processing request", zap.Error(err))
		ctx.Status(statusCode)
		return
	}
	ctx.JSON(statusCode, errorResponse{Error: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

// handleAbort ends the request from middleware with the mapped status code.
func handleAbort(ctx *gin.Context, err error) {
	statusCode, _ := statusFromError(err)
	_ = ctx.AbortWithError(statusCode, err)
}
