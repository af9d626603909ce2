package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/shop-backoffice/internal/goods"
	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/spec"
	"github.com/gin-gonic/gin"
)

// OpenEditorInput picks what the new editor session starts from.
// With neither field set the form is blank.
type OpenEditorInput struct {
	GoodsID   int64 `json:"goodsId" binding:"omitempty,gt=0"`
	FromDraft bool  `json:"fromDraft"`
}

type GroupInput struct {
	Name string `json:"name" binding:"required"`
}

type OptionInput struct {
	Value string `json:"value"`
}

type CategoryInput struct {
	CategoryID int64 `json:"categoryId" binding:"required,gt=0"`
}

type RowInput struct {
	Name string `json:"name" binding:"required"`
	spec.RowPatch
}

// OpenEditor is the handler for POST /v1/goods/editor
func (h *Handlers) OpenEditor(c *gin.Context) {
	// 1. --- Bind Input (empty body means a blank form) ---
	var input OpenEditorInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	ctx := c.Request.Context()

	// 2. --- Load the starting state ---
	var (
		form   models.Goods
		groups []models.Spec
		rows   []spec.Row
	)
	switch {
	case input.GoodsID > 0:
		g, err := h.Goods.Detail(ctx, token(c), input.GoodsID)
		if err != nil {
			h.upstreamError(c, err)
			return
		}
		form, groups, rows = goods.Split(*g)

	case input.FromDraft:
		d, err := h.Drafts.Load(ctx, shopID(c))
		if err != nil {
			h.respondError(c, err)
			return
		}
		form, groups = d.Form, d.Specs
		rows = spec.Rebuild(groups, d.Skus)
	}

	// 3. --- Commission bounds of the goods category (unknown category keeps the default) ---
	bounds := spec.DefaultBounds
	if form.CategoryID != 0 {
		opts, err := h.Goods.CategoryOptions(ctx, token(c))
		if err != nil {
			h.upstreamError(c, err)
			return
		}
		if b, ok := goods.BoundsFor(opts, form.CategoryID); ok {
			bounds = b
		}
	}

	// 4. --- Register the session ---
	s := h.Sessions.Open(shopID(c), form, groups, rows, bounds)
	var snap session.Snapshot
	h.Sessions.Do(s.ID, s.ShopID, func(s *session.Session) error {
		snap = s.Snapshot()
		return nil
	})
	c.JSON(http.StatusCreated, snap)
}

// GetEditor is the handler for GET /v1/goods/editor/:id
func (h *Handlers) GetEditor(c *gin.Context) {
	h.mutate(c, func(*session.Session) error { return nil })
}

// CloseEditor is the handler for DELETE /v1/goods/editor/:id
func (h *Handlers) CloseEditor(c *gin.Context) {
	if err := h.Sessions.Close(c.Param("id"), shopID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Editor session closed"})
}

// UpdateForm is the handler for PUT /v1/goods/editor/:id/form
// The goods id and category stay with the session; the category changes
// through SetCategory so the commission bounds follow it.
func (h *Handlers) UpdateForm(c *gin.Context) {
	var input models.Goods
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutate(c, func(s *session.Session) error {
		input.ID = s.Form.ID
		input.CategoryID = s.Form.CategoryID
		input.SpecList, input.SkuList = nil, nil
		s.Form = input
		return nil
	})
}

// SetCategory is the handler for PUT /v1/goods/editor/:id/category
func (h *Handlers) SetCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bounds, err := h.categoryBounds(c.Request.Context(), c, input.CategoryID)
	if err != nil {
		return
	}
	h.mutate(c, func(s *session.Session) error {
		s.Form.CategoryID = input.CategoryID
		s.Editor.SetBounds(bounds)
		return nil
	})
}

// AddGroup is the handler for POST /v1/goods/editor/:id/groups
func (h *Handlers) AddGroup(c *gin.Context) {
	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.AddGroup(input.Name)
	})
}

// RenameGroup is the handler for PATCH /v1/goods/editor/:id/groups/:group
func (h *Handlers) RenameGroup(c *gin.Context) {
	group, ok := intParam(c, "group")
	if !ok {
		return
	}
	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.RenameGroup(group, input.Name)
	})
}

// DeleteGroup is the handler for DELETE /v1/goods/editor/:id/groups/:group
func (h *Handlers) DeleteGroup(c *gin.Context) {
	group, ok := intParam(c, "group")
	if !ok {
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.DeleteGroup(group)
	})
}

// AddOption is the handler for POST /v1/goods/editor/:id/groups/:group/options
func (h *Handlers) AddOption(c *gin.Context) {
	group, ok := intParam(c, "group")
	if !ok {
		return
	}
	var input OptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.AddOption(group, input.Value)
	})
}

// RenameOption is the handler for PATCH /v1/goods/editor/:id/groups/:group/options/:option
func (h *Handlers) RenameOption(c *gin.Context) {
	group, ok := intParam(c, "group")
	if !ok {
		return
	}
	option, ok := intParam(c, "option")
	if !ok {
		return
	}
	var input OptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.RenameOption(group, option, input.Value)
	})
}

// DeleteOption is the handler for DELETE /v1/goods/editor/:id/groups/:group/options/:option
func (h *Handlers) DeleteOption(c *gin.Context) {
	group, ok := intParam(c, "group")
	if !ok {
		return
	}
	option, ok := intParam(c, "option")
	if !ok {
		return
	}
	h.mutate(c, func(s *session.Session) error {
		return s.Editor.DeleteOption(group, option)
	})
}

// UpdateRow is the handler for PATCH /v1/goods/editor/:id/skus
func (h *Handlers) UpdateRow(c *gin.Context) {
	var input RowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var row spec.Row
	err := h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		var err error
		row, err = s.Editor.UpdateRow(input.Name, input.RowPatch)
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": row})
}

// mutate runs fn against the session named by :id and answers with the
// resulting snapshot.
func (h *Handlers) mutate(c *gin.Context, fn func(s *session.Session) error) {
	var snap session.Snapshot
	err := h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// categoryBounds resolves the commission range of a category. On failure the
// response has already been written.
func (h *Handlers) categoryBounds(ctx context.Context, c *gin.Context, categoryID int64) (spec.Bounds, error) {
	opts, err := h.Goods.CategoryOptions(ctx, token(c))
	if err != nil {
		h.upstreamError(c, err)
		return spec.Bounds{}, err
	}
	bounds, ok := goods.BoundsFor(opts, categoryID)
	if !ok {
		h.respondError(c, goods.ErrUnknownCategory)
		return spec.Bounds{}, goods.ErrUnknownCategory
	}
	return bounds, nil
}
