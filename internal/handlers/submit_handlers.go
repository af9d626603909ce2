package handlers

import (
	"net/http"

	"github.com/01moynul/shop-backoffice/internal/draft"
	"github.com/01moynul/shop-backoffice/internal/goods"
	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitGoods is the handler for POST /v1/goods/editor/:id/submit
// New goods go to shop/goods/add, opened goods to shop/goods/edit. The editor
// state is kept whatever the outcome.
func (h *Handlers) SubmitGoods(c *gin.Context) {
	id, shop := c.Param("id"), shopID(c)

	// 1. --- Build and check the payload, mark the session busy ---
	var payload models.Goods
	err := h.Sessions.Do(id, shop, func(s *session.Session) error {
		if s.Submitting {
			return session.ErrSubmitting
		}
		payload = goods.Payload(s.Form, s.Editor.Groups(), s.Editor.Rows())
		if err := goods.CheckSubmit(payload); err != nil {
			return err
		}
		s.Submitting = true
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 2. --- Send to the Goods Service ---
	isNew := payload.ID == 0
	var saved *models.Goods
	if isNew {
		saved, err = h.Goods.Add(c.Request.Context(), token(c), &payload)
	} else {
		saved, err = h.Goods.Edit(c.Request.Context(), token(c), &payload)
	}

	// 3. --- Release the session, remember the new goods id ---
	h.Sessions.Do(id, shop, func(s *session.Session) error {
		s.Submitting = false
		if err == nil && saved.ID != 0 {
			s.Form.ID = saved.ID
		}
		return nil
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	// 4. --- A published new goods no longer needs its draft ---
	if isNew {
		if err := h.Drafts.Clear(c.Request.Context(), shop); err != nil {
			h.Logger.Warn("failed to clear draft after submit", zap.Int64("shop_id", shop), zap.Error(err))
		}
	}

	h.Logger.Info("goods submitted", zap.Int64("shop_id", shop), zap.Int64("goods_id", saved.ID), zap.Bool("new", isNew))
	c.JSON(http.StatusOK, gin.H{
		"message": "Goods submitted successfully",
		"goods":   saved,
	})
}

// SaveDraft is the handler for POST /v1/goods/editor/:id/draft
func (h *Handlers) SaveDraft(c *gin.Context) {
	var d draft.Draft
	err := h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		d = draft.Draft{Form: s.Form, Specs: s.Editor.Groups(), Skus: s.Editor.Rows()}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	info, err := h.Drafts.Save(c.Request.Context(), shopID(c), d)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Draft saved",
		"draft":   info,
	})
}

// GetDraftInfo is the handler for GET /v1/goods/draft
func (h *Handlers) GetDraftInfo(c *gin.Context) {
	info, err := h.Drafts.Info(c.Request.Context(), shopID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": info})
}

// ClearDraft is the handler for DELETE /v1/goods/draft
func (h *Handlers) ClearDraft(c *gin.Context) {
	if err := h.Drafts.Clear(c.Request.Context(), shopID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
}
