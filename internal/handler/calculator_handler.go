package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prajan97/diamond-intel/internal/pricing"
)

// CalculatorHandler needs no store.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// Calculate POST /api/calculate
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req pricing.MarginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := pricing.CalculateMargin(req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, result)
}
