package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prajan97/diamond-intel/pkg/types"
)

type ContactHandler struct {
	ledger types.Ledger
}

func NewContactHandler(ledger types.Ledger) *ContactHandler {
	return &ContactHandler{ledger: ledger}
}

// List GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.ledger.ListContacts(c.Request.Context(), types.ContactFilter{Type: c.Query("type")})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, contacts)
}

// Get GET /api/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contact, err := h.ledger.GetContact(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, contact)
}

// Create POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var in types.ContactInput
	if !bindJSON(c, &in) {
		return
	}
	contact, err := h.ledger.CreateContact(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, contact)
}

// Update PUT /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.ContactInput
	if !bindJSON(c, &in) {
		return
	}
	contact, err := h.ledger.UpdateContact(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, contact)
}

// Delete DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteContact(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Deleted(c)
}
