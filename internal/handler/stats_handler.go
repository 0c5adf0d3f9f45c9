package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prajan97/diamond-intel/pkg/types"
)

type StatsHandler struct {
	ledger types.Ledger
}

func NewStatsHandler(ledger types.Ledger) *StatsHandler {
	return &StatsHandler{ledger: ledger}
}

// Get GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.ledger.Stats(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, stats)
}
