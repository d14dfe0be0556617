package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type errorKind struct {
	err    error
	kind   string
	status int
}

// errorKinds is matched in order with errors.Is, so more specific sentinels
// come before the ones they may wrap.
var errorKinds = []errorKind{
	{domain.ErrInvalidAmount, "INVALID_AMOUNT", http.StatusBadRequest},
	{domain.ErrValidation, "VALIDATION", http.StatusBadRequest},
	{domain.ErrBadRequest, "VALIDATION", http.StatusBadRequest},
	{domain.ErrInvalidSignature, "INVALID_SIGNATURE", http.StatusBadRequest},
	{domain.ErrOrderNotFound, "ORDER_NOT_FOUND", http.StatusNotFound},
	{domain.ErrDataNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrDuplicateRequest, "DUPLICATE_REQUEST", http.StatusConflict},
	{domain.ErrConflictingData, "CONFLICT", http.StatusConflict},
	{domain.ErrInvalidStatusTransition, "INVALID_TRANSITION", http.StatusConflict},
	{domain.ErrGateway, "GATEWAY", http.StatusInternalServerError},
	{domain.ErrStorage, "STORAGE", http.StatusInternalServerError},
	{domain.ErrConfiguration, "CONFIGURATION", http.StatusInternalServerError},

	{domain.ErrInvalidCredentials, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrEmptyAuthorizationHeader, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrInvalidToken, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrExpiredToken, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrForbidden, "FORBIDDEN", http.StatusForbidden},
}

var internalKind = errorKind{domain.ErrInternal, "INTERNAL", http.StatusInternalServerError}

func classify(err error) errorKind {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k
		}
	}
	return internalKind
}

// message exposes details only for request errors. Everything else is
// reported by its sentinel text to keep internals out of responses.
func (k errorKind) message(err error) string {
	if errors.Is(k.err, domain.ErrValidation) || errors.Is(k.err, domain.ErrInvalidAmount) {
		return err.Error()
	}
	return k.err.Error()
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(j).String()), nil
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) logUnexpected(ctx *gin.Context, k errorKind, err error) {
	if k.status >= http.StatusInternalServerError {
		h.logger.Error("error processing request",
			zap.String("path", ctx.FullPath()), zap.String("kind", k.kind), zap.Error(err))
	}
}

// handleValidationError answers a request that could not be decoded.
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.handleError(ctx, fmt.Errorf("%w: %w", domain.ErrValidation, err))
}

// handleAbort sends an error response and stops the handler chain.
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	k := classify(err)
	h.logUnexpected(ctx, k, err)
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(k.status, errorResponse{Error: k.message(err), Kind: k.kind})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	k := classify(err)
	h.logUnexpected(ctx, k, err)
	ctx.JSON(k.status, errorResponse{Error: k.message(err), Kind: k.kind})
}

// handleSuccessWithStatus sends data with status, or an empty body when data is nil.
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
