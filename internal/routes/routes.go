package routes

import (
	"net/http"

	"github.com/01moynul/shop-backoffice/internal/handlers"
	"github.com/01moynul/shop-backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigin string
	JWTSecret  string
	// UploadDir is served at /uploads when images are stored locally.
	UploadDir string
}

func SetupRouter(h *handlers.Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// --- APPLY THE CORS GUARD ---
	router.Use(middleware.CORSMiddleware(opts.CORSOrigin))

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(opts.JWTSecret))
		{
			// --- Draft ---
			auth.GET("/goods/draft", h.GetDraftInfo)
			auth.DELETE("/goods/draft", h.ClearDraft)

			// --- Goods Editor Session ---
			auth.POST("/goods/editor", h.OpenEditor)

			editor := auth.Group("/goods/editor/:id")
			{
				editor.GET("", h.GetEditor)
				editor.DELETE("", h.CloseEditor)
				editor.PUT("/form", h.UpdateForm)
				editor.PUT("/category", h.SetCategory)

				// Specs and their values
				editor.POST("/groups", h.AddGroup)
				editor.PATCH("/groups/:group", h.RenameGroup)
				editor.DELETE("/groups/:group", h.DeleteGroup)
				editor.POST("/groups/:group/options", h.AddOption)
				editor.PATCH("/groups/:group/options/:option", h.RenameOption)
				editor.DELETE("/groups/:group/options/:option", h.DeleteOption)

				// SKU table
				editor.PATCH("/skus", h.UpdateRow)
				editor.POST("/skus/image", h.UploadSkuImage)

				// Selection and batch edit
				editor.POST("/selection/all", h.SelectAll)
				editor.POST("/selection/toggle", h.ToggleRow)
				editor.POST("/batch", h.OpenBatchEdit)
				editor.DELETE("/batch", h.CancelBatchEdit)
				editor.POST("/batch/apply", h.ApplyBatchEdit)

				editor.POST("/submit", h.SubmitGoods)
				editor.POST("/draft", h.SaveDraft)
			}
		}
	}

	return router
}
