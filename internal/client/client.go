// Package client talks to a running showcase server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dieledev/showcase/internal/media"
	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/store"
)

const tokenHeader = "X-Admin-Token"

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error %d", e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + e.Fields[k]
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// --- HTTP helpers ---

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
			apiErr.Fields = payload.Fields
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// --- Projects ---

// ProjectInput is the body of a create or update. Nil fields are omitted so
// an update only touches what was set.
type ProjectInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	LinkURL     *string  `json:"linkUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out struct {
		Projects []model.Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) GetProject(ctx context.Context, slug string) (*model.Project, error) {
	var out struct {
		Project model.Project `json:"project"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*model.Project, error) {
	var out struct {
		Project model.Project `json:"project"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/projects", in, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) UpdateProject(ctx context.Context, slug string, in ProjectInput) (*model.Project, error) {
	var out struct {
		Project model.Project `json:"project"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(slug), in, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) DeleteProject(ctx context.Context, slug string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(slug), nil, nil)
}

// --- Navigation ---

func (c *Client) Navigation(ctx context.Context) ([]model.NavItem, error) {
	var out struct {
		Items []model.NavItem `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/navigation", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ReplaceNavigation(ctx context.Context, items []model.NavItem) ([]model.NavItem, error) {
	in := struct {
		Items []model.NavItem `json:"items"`
	}{Items: items}
	if in.Items == nil {
		in.Items = []model.NavItem{}
	}
	var out struct {
		Items []model.NavItem `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/navigation", in, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// --- Content ---

func (c *Client) Content(ctx context.Context) (*model.SiteContent, error) {
	var out struct {
		Content model.SiteContent `json:"content"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/content", nil, &out); err != nil {
		return nil, err
	}
	return &out.Content, nil
}

func (c *Client) ReplaceContent(ctx context.Context, content model.SiteContent) (*model.SiteContent, error) {
	in := struct {
		Content model.SiteContent `json:"content"`
	}{Content: content}
	var out struct {
		Content model.SiteContent `json:"content"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/content", in, &out); err != nil {
		return nil, err
	}
	return &out.Content, nil
}

// --- Media ---

func (c *Client) ListMedia(ctx context.Context) ([]media.Image, error) {
	var out struct {
		Images []media.Image `json:"images"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/media", nil, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader) (*media.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building upload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/media", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out struct {
		Image media.Image `json:"image"`
	}
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out.Image, nil
}

// DeleteMedia accepts either the bare file name or the listed
// "uploads/<file>" form.
func (c *Client) DeleteMedia(ctx context.Context, filename string) error {
	name := strings.TrimPrefix(filename, media.Prefix)
	return c.doJSON(ctx, http.MethodDelete, "/api/media/"+url.PathEscape(name), nil, nil)
}

// --- Auth & diagnostics ---

func (c *Client) Verify(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/verify", nil, nil)
}

func (c *Client) StorageStatus(ctx context.Context) (*store.Diagnostics, error) {
	var out store.Diagnostics
	if err := c.doJSON(ctx, http.MethodGet, "/debug/storage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
