package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prajan97/diamond-intel/pkg/types"
)

type DealHandler struct {
	ledger types.Ledger
}

func NewDealHandler(ledger types.Ledger) *DealHandler {
	return &DealHandler{ledger: ledger}
}

// List GET /api/deals
func (h *DealHandler) List(c *gin.Context) {
	deals, err := h.ledger.ListDeals(c.Request.Context(), types.DealFilter{Status: c.Query("status")})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, deals)
}

// Get GET /api/deals/:id
func (h *DealHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deal, err := h.ledger.GetDeal(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, deal)
}

// Create POST /api/deals
//
// Reserves the stone.
func (h *DealHandler) Create(c *gin.Context) {
	var in types.DealInput
	if !bindJSON(c, &in) {
		return
	}
	deal, err := h.ledger.CreateDeal(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, deal)
}

// Update PUT /api/deals/:id
//
// Completed sells the stone, Lost releases it.
func (h *DealHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.DealUpdate
	if !bindJSON(c, &in) {
		return
	}
	deal, err := h.ledger.UpdateDeal(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, deal)
}

// Delete DELETE /api/deals/:id
func (h *DealHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteDeal(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Deleted(c)
}
