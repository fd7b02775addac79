package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/media"
)

const (
	msgTooLarge    = "File too large. Maximum size is 5 MB."
	msgUnsupported = "File type not allowed. Use JPEG, PNG, GIF, WebP, or SVG."
)

type MediaHandler struct {
	lib media.Library
}

func NewMediaHandler(lib media.Library) *MediaHandler {
	return &MediaHandler{lib: lib}
}

func (h *MediaHandler) List(c *gin.Context) {
	images, err := h.lib.List(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to list media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file provided")
		return
	}
	if fh.Size > media.MaxSize {
		fail(c, http.StatusBadRequest, msgTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		serverError(c, err, "Failed to upload file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, media.MaxSize+1))
	if err != nil {
		serverError(c, err, "Failed to upload file")
		return
	}

	img, err := h.lib.Upload(c.Request.Context(), fh.Filename, data)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		fail(c, http.StatusBadRequest, msgTooLarge)
		return
	case errors.Is(err, media.ErrUnsupportedType):
		fail(c, http.StatusBadRequest, msgUnsupported)
		return
	case err != nil:
		serverError(c, err, "Failed to upload file")
		return
	}

	uploadBytes.Observe(float64(len(data)))
	reqLog(c).Info("media uploaded", logger.String("filename", img.Filename), logger.Int("bytes", len(data)))
	c.JSON(http.StatusCreated, gin.H{"image": img})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	name := c.Param("filename")
	err := h.lib.Delete(c.Request.Context(), name)
	switch {
	case errors.Is(err, media.ErrInvalidFilename):
		fail(c, http.StatusBadRequest, "Invalid filename")
		return
	case errors.Is(err, media.ErrNotFound):
		fail(c, http.StatusNotFound, "File not found")
		return
	case err != nil:
		serverError(c, err, "Failed to delete file")
		return
	}
	reqLog(c).Info("media deleted", logger.String("filename", name))
	c.Status(http.StatusNoContent)
}
