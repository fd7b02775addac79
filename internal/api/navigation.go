package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/store"
)

type NavigationHandler struct {
	doc *store.Document[[]model.NavItem]
}

func NewNavigationHandler(doc *store.Document[[]model.NavItem]) *NavigationHandler {
	return &NavigationHandler{doc: doc}
}

func (h *NavigationHandler) List(c *gin.Context) {
	items, err := h.doc.Read(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to load navigation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type navInput struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Replace swaps in the whole list. Order is taken from array position and
// any submitted order value is ignored.
func (h *NavigationHandler) Replace(c *gin.Context) {
	var body struct {
		Items json.RawMessage `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	var in []navInput
	if len(body.Items) == 0 || body.Items[0] != '[' || json.Unmarshal(body.Items, &in) != nil {
		fail(c, http.StatusBadRequest, "items must be an array")
		return
	}

	items := make([]model.NavItem, 0, len(in))
	for _, it := range in {
		id, _ := it.ID.(string)
		label, href := strings.TrimSpace(it.Label), strings.TrimSpace(it.Href)
		if id == "" || label == "" || href == "" {
			fail(c, http.StatusBadRequest, "Each item needs an id, label, and href")
			return
		}
		items = append(items, model.NavItem{ID: id, Label: label, Href: href})
	}
	items = model.Renumber(items)

	if err := h.doc.Write(c.Request.Context(), items); err != nil {
		serverError(c, err, "Failed to save navigation")
		return
	}
	reqLog(c).Info("navigation replaced", logger.Int("items", len(items)))
	c.JSON(http.StatusOK, gin.H{"items": items})
}
