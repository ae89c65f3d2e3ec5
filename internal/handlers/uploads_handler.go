package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/media"
)

const maxUploadBytes = 10 << 20

func (a *api) registerUploadRoutes(admin *gin.RouterGroup) {
	admin.POST("/uploads", a.upload)
	admin.DELETE("/uploads/*public_id", a.deleteUpload)
}

func (a *api) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "file", "message": "a file is required"})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if err := media.CheckImage(contentType); err != nil {
		a.writeError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		a.writeError(c, err)
		return
	}
	defer f.Close()

	asset, err := a.cfg.Media.Upload(c.Request.Context(), fh.Filename, contentType, f)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// deleteUpload takes the public id as a wildcard since ids may contain a folder.
func (a *api) deleteUpload(c *gin.Context) {
	id := c.Param("public_id")
	if len(id) > 0 && id[0] == '/' {
		id = id[1:]
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "public_id", "message": "public id is required"})
		return
	}
	if err := a.cfg.Media.Delete(c.Request.Context(), id); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
