package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/slug"
	"github.com/dieledev/showcase/internal/store"
	"github.com/dieledev/showcase/internal/validate"
)

type ProjectHandler struct {
	doc *store.Document[[]model.Project]
	now func() time.Time
}

func NewProjectHandler(doc *store.Document[[]model.Project], now func() time.Time) *ProjectHandler {
	return &ProjectHandler{doc: doc, now: now}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.doc.Read(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	projects, err := h.doc.Read(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to load project")
		return
	}
	i := model.FindProject(projects, c.Param("slug"))
	if i < 0 {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projects[i]})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	if errs := validate.Project(body, false); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	projects, err := h.doc.Read(ctx)
	if err != nil {
		serverError(c, err, "Failed to save data")
		return
	}

	now := h.timestamp()
	p := model.Project{
		Slug:        slug.Slugify(validate.Text(body["title"]), model.Slugs(projects)),
		Title:       validate.Text(body["title"]),
		Description: validate.Text(body["description"]),
		ImageURL:    validate.Text(body["imageUrl"]),
		LinkURL:     validate.Text(body["linkUrl"]),
		Tags:        tagList(body["tags"]),
		Status:      model.Status(validate.Text(body["status"])),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.doc.Write(ctx, append(projects, p)); err != nil {
		serverError(c, err, "Failed to save data")
		return
	}

	reqLog(c).Info("project created", logger.String("slug", p.Slug))
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}
	if errs := validate.Project(body, true); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	projects, err := h.doc.Read(ctx)
	if err != nil {
		serverError(c, err, "Failed to save data")
		return
	}
	i := model.FindProject(projects, c.Param("slug"))
	if i < 0 {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}

	p := projects[i]
	if _, ok := body["title"]; ok {
		p.Title = validate.Text(body["title"])
	}
	if _, ok := body["description"]; ok {
		p.Description = validate.Text(body["description"])
	}
	if _, ok := body["imageUrl"]; ok {
		p.ImageURL = validate.Text(body["imageUrl"])
	}
	if _, ok := body["linkUrl"]; ok {
		p.LinkURL = validate.Text(body["linkUrl"])
	}
	if _, ok := body["tags"]; ok {
		p.Tags = tagList(body["tags"])
	}
	if _, ok := body["status"]; ok {
		p.Status = model.Status(validate.Text(body["status"]))
	}
	p.UpdatedAt = h.timestamp()

	updated := append([]model.Project(nil), projects...)
	updated[i] = p
	if err := h.doc.Write(ctx, updated); err != nil {
		serverError(c, err, "Failed to save data")
		return
	}

	reqLog(c).Info("project updated", logger.String("slug", p.Slug))
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	projects, err := h.doc.Read(ctx)
	if err != nil {
		serverError(c, err, "Failed to save data")
		return
	}
	s := c.Param("slug")
	i := model.FindProject(projects, s)
	if i < 0 {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}

	remaining := append(append([]model.Project{}, projects[:i]...), projects[i+1:]...)
	if err := h.doc.Write(ctx, remaining); err != nil {
		serverError(c, err, "Failed to save data")
		return
	}

	reqLog(c).Info("project deleted", logger.String("slug", s))
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) timestamp() time.Time {
	return h.now().UTC().Truncate(time.Millisecond)
}

// bindObject decodes a JSON object body and splits a comma separated tags
// string. It answers 400 itself when the body is not an object.
func bindObject(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if raw, ok := body["tags"]; ok {
		body["tags"] = validate.NormalizeTags(raw)
	}
	return body, true
}

// tagList trims and lowercases validated tags for storage.
func tagList(v any) []string {
	switch t := v.(type) {
	case []string:
		return validate.Tags(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return validate.Tags(out)
	}
	return []string{}
}
