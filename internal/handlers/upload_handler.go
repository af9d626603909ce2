package handlers

import (
	"net/http"

	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/spec"
	"github.com/01moynul/shop-backoffice/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadSkuImage handles POST /v1/goods/editor/:id/skus/image
// Multipart fields: "name" is the SKU identity, "file" the image.
func (h *Handlers) UploadSkuImage(c *gin.Context) {
	// 1. Get the SKU and the file from the request
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU name is required"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// 2. Make sure the SKU exists before storing anything
	err = h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		if _, ok := s.Editor.Row(name); !ok {
			return spec.ErrRowNotFound
		}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. Store the file under a unique name
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	objectName := upload.ObjectName(name, file.Filename)
	url, err := h.Uploader.Save(c.Request.Context(), objectName, src, file.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.Error("failed to store sku image", zap.String("object", objectName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	// 4. Attach the URL to the row
	var row spec.Row
	err = h.Sessions.Do(c.Param("id"), shopID(c), func(s *session.Session) error {
		var err error
		row, err = s.Editor.SetImage(name, url)
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": url,
		"sku": row,
	})
}
