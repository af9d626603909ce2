package handlers

import (
	"github.com/01moynul/shop-backoffice/internal/draft"
	"github.com/01moynul/shop-backoffice/internal/goods"
	"github.com/01moynul/shop-backoffice/internal/middleware"
	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Sessions *session.Registry
	Goods    goods.Service
	Drafts   *draft.Store
	Uploader upload.Uploader
	Logger   *zap.Logger
}

func shopID(c *gin.Context) int64 {
	return c.GetInt64(middleware.ShopIDKey)
}

func token(c *gin.Context) string {
	return c.GetString(middleware.TokenKey)
}
