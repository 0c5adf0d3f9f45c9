package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// PriceHandler serves the price log. Entries are append-only.
type PriceHandler struct {
	ledger types.Ledger
}

func NewPriceHandler(ledger types.Ledger) *PriceHandler {
	return &PriceHandler{ledger: ledger}
}

// List GET /api/prices
func (h *PriceHandler) List(c *gin.Context) {
	prices, err := h.ledger.ListPrices(c.Request.Context(), types.PriceFilter{Shape: c.Query("shape")})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, prices)
}

// Create POST /api/prices
func (h *PriceHandler) Create(c *gin.Context) {
	var in types.PriceInput
	if !bindJSON(c, &in) {
		return
	}
	entry, err := h.ledger.CreatePrice(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, entry)
}
