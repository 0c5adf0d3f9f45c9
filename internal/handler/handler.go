// Package handler exposes the ledger over a JSON REST API.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/internal/pricing"
	"github.com/prajan97/diamond-intel/pkg/types"
)

// Handlers groups the per-resource handlers.
type Handlers struct {
	Stone      *StoneHandler
	Contact    *ContactHandler
	Deal       *DealHandler
	Price      *PriceHandler
	Stats      *StatsHandler
	Calculator *CalculatorHandler
}

// Option configures NewHandlers.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used to date generated files.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewHandlers wires every handler to ledger. A nil logger discards output.
func NewHandlers(ledger types.Ledger, logger *zap.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Handlers{
		Stone:      NewStoneHandler(ledger, logger, o.now),
		Contact:    NewContactHandler(ledger),
		Deal:       NewDealHandler(ledger),
		Price:      NewPriceHandler(ledger),
		Stats:      NewStatsHandler(ledger),
		Calculator: NewCalculatorHandler(),
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes data with 200.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Deleted acknowledges a delete.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}

// Error writes an error body with status.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// BadRequest rejects malformed input.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound reports a missing record.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError surfaces a store failure with its raw message.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// Fail maps err onto a response: missing records are 404, calculator input
// errors 400 and everything else 500 with the raw message.
func Fail(c *gin.Context, err error) {
	c.Error(err)
	switch {
	case errors.Is(err, types.ErrNotFound):
		NotFound(c, "Not found")
	case errors.Is(err, pricing.ErrInvalidCost), errors.Is(err, pricing.ErrInvalidCarat):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// bindJSON decodes the request body into dst. An empty body decodes as {}.
// It writes a 400 and returns false when the body is not valid JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the :id route parameter, writing a 400 on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

// queryID parses an optional integer query parameter. A missing parameter
// yields nil.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		BadRequest(c, "invalid "+name+": "+raw)
		return nil, false
	}
	return &id, true
}
