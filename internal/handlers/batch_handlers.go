package handlers

import (
	"net/http"

	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/spec"
	"github.com/gin-gonic/gin"
)

type ToggleInput struct {
	Name string `json:"name" binding:"required"`
}

// SelectAll is the handler for POST /v1/goods/editor/:id/selection/all
// A fully selected table is cleared instead.
func (h *Handlers) SelectAll(c *gin.Context) {
	h.mutate(c, func(s *session.Session) error {
		s.Editor.SelectAll()
		return nil
	})
}

// ToggleRow is the handler for POST /v1/goods/editor/:id/selection/toggle
func (h *Handlers) ToggleRow(c *gin.Context) {
	var input ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(s *session.Session) error {
		_, err := s.Editor.ToggleRow(input.Name)
		return err
	})
}

// OpenBatchEdit is the handler for POST /v1/goods/editor/:id/batch
func (h *Handlers) OpenBatchEdit(c *gin.Context) {
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.OpenBatchEdit()
	})
}

// CancelBatchEdit is the handler for DELETE /v1/goods/editor/:id/batch
func (h *Handlers) CancelBatchEdit(c *gin.Context) {
	h.mutate(c, func(s *session.Session) error {
		s.Editor.CancelBatchEdit()
		return nil
	})
}

// ApplyBatchEdit is the handler for POST /v1/goods/editor/:id/batch/apply
func (h *Handlers) ApplyBatchEdit(c *gin.Context) {
	// 1. --- Bind the patch (absent fields stay untouched) ---
	var patch spec.BatchPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Apply to the selection ---
	var (
		updated int
		snap    session.Snapshot
	)
	err := h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		n, err := s.Editor.ApplyBatchEdit(patch)
		if err != nil {
			return err
		}
		updated = n
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{
		"message": "Batch edit applied",
		"updated": updated,
		"editor":  snap,
	})
}
