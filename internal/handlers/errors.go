package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/shop-backoffice/internal/draft"
	"github.com/01moynul/shop-backoffice/internal/goods"
	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/spec"
	"github.com/01moynul/shop-backoffice/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a domain error onto a status code and a JSON body.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var verr *spec.ValidationError
	var apiErr *goods.APIError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, spec.ErrBlankGroupName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, spec.ErrRowNotFound),
		errors.Is(err, spec.ErrOptionNotFound),
		errors.Is(err, spec.ErrGroupIndex),
		errors.Is(err, draft.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, session.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, spec.ErrEmptySelection),
		errors.Is(err, spec.ErrBatchClosed),
		errors.Is(err, session.ErrSubmitting),
		errors.Is(err, upload.ErrObjectExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, spec.ErrTooManyRows),
		errors.Is(err, spec.ErrInvalidOptionValue),
		errors.Is(err, spec.ErrDuplicateOptionValue),
		errors.Is(err, goods.ErrIncompleteSpecs),
		errors.Is(err, goods.ErrSkuPriceMissing),
		errors.Is(err, goods.ErrStockMismatch),
		errors.Is(err, goods.ErrUnknownCategory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.As(err, &apiErr):
		h.Logger.Warn("goods service rejected the request",
			zap.Int("status", apiErr.Status),
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message, "code": apiErr.Code})

	default:
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// upstreamError reports a failed Goods Service call. Transport failures have
// no APIError and still map to 502.
func (h *Handlers) upstreamError(c *gin.Context, err error) {
	var apiErr *goods.APIError
	if errors.As(err, &apiErr) {
		h.respondError(c, err)
		return
	}
	h.Logger.Error("goods service unreachable", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "Goods service unavailable"})
}

// intParam reads a non-negative integer path parameter.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " index"})
		return 0, false
	}
	return v, true
}
