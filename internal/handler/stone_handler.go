package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/internal/report"
	"github.com/prajan97/diamond-intel/pkg/types"
)

type StoneHandler struct {
	ledger types.Ledger
	logger *zap.Logger
	now    func() time.Time
}

func NewStoneHandler(ledger types.Ledger, logger *zap.Logger, now func() time.Time) *StoneHandler {
	return &StoneHandler{ledger: ledger, logger: logger, now: now}
}

func stoneFilter(c *gin.Context) (types.StoneFilter, bool) {
	supplierID, ok := queryID(c, "supplier_id")
	if !ok {
		return types.StoneFilter{}, false
	}
	return types.StoneFilter{
		Status:     c.Query("status"),
		Shape:      c.Query("shape"),
		SupplierID: supplierID,
	}, true
}

// List GET /api/stones
func (h *StoneHandler) List(c *gin.Context) {
	filter, ok := stoneFilter(c)
	if !ok {
		return
	}
	stones, err := h.ledger.ListStones(c.Request.Context(), filter)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, stones)
}

// Get GET /api/stones/:id
func (h *StoneHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	stone, err := h.ledger.GetStone(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, stone)
}

// Create POST /api/stones
func (h *StoneHandler) Create(c *gin.Context) {
	var in types.StoneInput
	if !bindJSON(c, &in) {
		return
	}
	stone, err := h.ledger.CreateStone(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, stone)
}

// Update PUT /api/stones/:id
func (h *StoneHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.StoneInput
	if !bindJSON(c, &in) {
		return
	}
	stone, err := h.ledger.UpdateStone(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, stone)
}

// Delete DELETE /api/stones/:id
func (h *StoneHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteStone(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Deleted(c)
}

// Export GET /api/stones/export
//
// Takes the same filters as List and returns the inventory as an XLSX file.
func (h *StoneHandler) Export(c *gin.Context) {
	filter, ok := stoneFilter(c)
	if !ok {
		return
	}
	stones, err := h.ledger.ListStones(c.Request.Context(), filter)
	if err != nil {
		Fail(c, err)
		return
	}

	f, err := report.StonesWorkbook(stones)
	if err != nil {
		Fail(c, fmt.Errorf("building workbook: %w", err))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("inventory_%s.xlsx", h.now().UTC().Format(time.DateOnly))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; all that is left is to log it.
		h.logger.Error("writing workbook", zap.Error(err))
	}
}
