package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/store"
)

type ContentHandler struct {
	doc *store.Document[model.SiteContent]
}

func NewContentHandler(doc *store.Document[model.SiteContent]) *ContentHandler {
	return &ContentHandler{doc: doc}
}

func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.doc.Read(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to load content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// Replace stores the submitted content. Sections or fields left out of the
// request take their default values.
func (h *ContentHandler) Replace(c *gin.Context) {
	var body struct {
		Content json.RawMessage `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Content) == 0 || body.Content[0] != '{' {
		fail(c, http.StatusBadRequest, "content object is required")
		return
	}
	content, err := model.DecodeSiteContent(body.Content)
	if err != nil {
		fail(c, http.StatusBadRequest, "content object is required")
		return
	}

	if err := h.doc.Write(c.Request.Context(), content); err != nil {
		serverError(c, err, "Failed to save content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}
