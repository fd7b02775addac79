package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dieledev/showcase/internal/blob/blobtest"
	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/media"
	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/store"
)

const testToken = "s3cret"

var pngData = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	stores *store.Stores
}

func newEnv(t *testing.T, token string) *testEnv {
	t.Helper()
	stores := store.Open(store.Backend{FS: memfs.New()}, "memory")
	r := NewRouter(Deps{
		Stores:     stores,
		Media:      media.NewDirLibrary(memfs.New()),
		AdminToken: token,
		Version:    "test",
		Now:        func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	return &testEnv{router: r, stores: stores}
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set(TokenHeader, testToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const validProject = `{
	"title": "Hello World!",
	"description": "A project that says hello to the world.",
	"imageUrl": "/uploads/1-hello.png",
	"linkUrl": "https://example.com",
	"tags": "A, b,, C",
	"status": "Live"
}`

func TestCreateProject_NormalizesTags(t *testing.T) {
	e := newEnv(t, testToken)

	w := e.do(http.MethodPost, "/api/projects", validProject, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Project model.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello-world", resp.Project.Slug)
	assert.Equal(t, []string{"a", "b", "c"}, resp.Project.Tags)
	assert.Equal(t, "2025-01-02T03:04:05Z", resp.Project.CreatedAt.Format(time.RFC3339))

	stored, err := e.stores.Projects.Read(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"a", "b", "c"}, stored[0].Tags)
}

func TestCreateProject_SlugCollision(t *testing.T) {
	e := newEnv(t, testToken)
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/projects", validProject, true).Code)

	w := e.do(http.MethodPost, "/api/projects", validProject, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hello-world-2", decode(t, w)["project"].(map[string]any)["slug"])
}

func TestCreateProject_ValidationFailure(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPost, "/api/projects",
		`{"title":"ab","description":"short","imageUrl":"","linkUrl":"ftp://x","status":"Bogus"}`, true)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Len(t, body["fields"], 5)

	stored, err := e.stores.Projects.Read(t.Context())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMutations_RequireToken(t *testing.T) {
	e := newEnv(t, testToken)
	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/x"},
		{http.MethodDelete, "/api/projects/x"},
		{http.MethodPut, "/api/navigation"},
		{http.MethodPut, "/api/content"},
		{http.MethodPost, "/api/media"},
		{http.MethodDelete, "/api/media/x.png"},
		{http.MethodPost, "/api/auth/verify"},
		{http.MethodGet, "/debug/storage"},
	}
	for _, tc := range cases {
		w := e.do(tc.method, tc.path, `{}`, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestEmptySecret_AlwaysUnauthorized(t *testing.T) {
	e := newEnv(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", nil)
	req.Header.Set(TokenHeader, "")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPost, "/api/auth/verify", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])
}

func TestProjectLifecycle(t *testing.T) {
	e := newEnv(t, testToken)
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/projects", validProject, true).Code)

	w := e.do(http.MethodGet, "/api/projects/hello-world", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPut, "/api/projects/hello-world", `{"status":"Archived","tags":[" Go"]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decode(t, w)["project"].(map[string]any)
	assert.Equal(t, "Archived", p["status"])
	assert.Equal(t, []any{"go"}, p["tags"])
	assert.Equal(t, "Hello World!", p["title"])
	assert.Equal(t, "hello-world", p["slug"])

	w = e.do(http.MethodPut, "/api/projects/hello-world", `{"title":"x"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/api/projects/missing", `{"status":"Live"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodDelete, "/api/projects/hello-world", "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(http.MethodGet, "/api/projects/hello-world", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", decode(t, w)["error"])

	w = e.do(http.MethodDelete, "/api/projects/hello-world", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProjects_EmptyIsArray(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodGet, "/api/projects", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":[]}`, w.Body.String())
}

func TestCreateProject_BlankArrayTagRejected(t *testing.T) {
	e := newEnv(t, testToken)
	body := strings.Replace(validProject, `"A, b,, C"`, `["go", "  "]`, 1)

	w := e.do(http.MethodPost, "/api/projects", body, true)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "Each tag must be 1-20 characters", fields["tags"])

	w = e.do(http.MethodGet, "/api/projects", "", false)
	assert.JSONEq(t, `{"projects":[]}`, w.Body.String())
}

func TestCreateProject_ArrayTagsLowercased(t *testing.T) {
	e := newEnv(t, testToken)
	body := strings.Replace(validProject, `"A, b,, C"`, `[" Go", "WEB"]`, 1)

	w := e.do(http.MethodPost, "/api/projects", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode(t, w)["project"].(map[string]any)
	assert.Equal(t, []any{"go", "web"}, p["tags"])
}

func TestListNavigation_FreshStoreIsArray(t *testing.T) {
	e := newEnv(t, testToken)
	for range 2 {
		w := e.do(http.MethodGet, "/api/navigation", "", false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	}
}

func TestInvalidBody(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPost, "/api/projects", `not json`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/projects", `null`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPut, "/api/content", `not json`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/projects", `[1,2]`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNavigation_PositionWins(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPut, "/api/navigation",
		`{"items":[{"id":"b","label":" Work ","href":"#work","order":9},{"id":"a","label":"About","href":"#about","order":0}]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items []model.NavItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []model.NavItem{
		{ID: "b", Label: "Work", Href: "#work", Order: 0},
		{ID: "a", Label: "About", Href: "#about", Order: 1},
	}, resp.Items)

	w = e.do(http.MethodGet, "/api/navigation", "", false)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b", resp.Items[0].ID)
}

func TestNavigation_BadInput(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPut, "/api/navigation", `{"items":"nope"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "items must be an array", decode(t, w)["error"])

	w = e.do(http.MethodPut, "/api/navigation", `{"items":[{"id":"a","label":"  ","href":"/"}]}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Each item needs an id, label, and href", decode(t, w)["error"])
}

func TestContent_PartialUpdateKeepsDefaults(t *testing.T) {
	e := newEnv(t, testToken)
	w := e.do(http.MethodPut, "/api/content", `{"content":{"hero":{"title":"X"}}}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/content", "", false)
	var resp struct {
		Content model.SiteContent `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "X", resp.Content.Hero.Title)
	assert.Equal(t, model.DefaultSiteContent().About, resp.Content.About)

	w = e.do(http.MethodPut, "/api/content", `{"content":"text"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "content object is required", decode(t, w)["error"])
}

func TestWriteFailureIs500(t *testing.T) {
	bucket := blobtest.NewMemory()
	bucket.PutErr = errors.New("denied")
	stores := store.Open(store.Backend{Bucket: bucket}, "remote")
	r := NewRouter(Deps{Stores: stores, Media: media.NewBucketLibrary(bucket), AdminToken: testToken})

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(validProject))
	req.Header.Set(TokenHeader, testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save data"}`, w.Body.String())
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMedia_UploadListDelete(t *testing.T) {
	e := newEnv(t, testToken)

	body, ct := multipartBody(t, "Cover.png", pngData)
	req := httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set(TokenHeader, testToken)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	img := decode(t, w)["image"].(map[string]any)
	filename := img["filename"].(string)
	assert.True(t, strings.HasPrefix(filename, "uploads/"))
	assert.True(t, strings.HasSuffix(filename, "-cover.png"))

	w = e.do(http.MethodGet, "/api/media", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["images"], 1)

	w = e.do(http.MethodDelete, "/api/media/"+strings.TrimPrefix(filename, "uploads/"), "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(http.MethodDelete, "/api/media/gone.png", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodDelete, "/api/media/..secret", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid filename", decode(t, w)["error"])
}

func TestMedia_RejectsUploads(t *testing.T) {
	e := newEnv(t, testToken)

	body, ct := multipartBody(t, "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set(TokenHeader, testToken)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgUnsupported, decode(t, w)["error"])

	big := append(append([]byte{}, pngData...), make([]byte, media.MaxSize)...)
	body, ct = multipartBody(t, "big.png", big)
	req = httptest.NewRequest(http.MethodPost, "/api/media", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set(TokenHeader, testToken)
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgTooLarge, decode(t, w)["error"])

	w = e.do(http.MethodPost, "/api/media", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file provided", decode(t, w)["error"])
}

func TestHealthMetricsAndDebug(t *testing.T) {
	e := newEnv(t, testToken)

	w := e.do(http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"showcase","version":"test"}`, w.Body.String())

	e.do(http.MethodGet, "/api/projects", "", false)
	w = e.do(http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "showcase_http_requests_total")

	w = e.do(http.MethodGet, "/debug/storage", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "memory", body["mode"])
	assert.Len(t, body["documents"], 3)
}

func TestRequestID(t *testing.T) {
	e := newEnv(t, testToken)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = e.do(http.MethodGet, "/health", "", false)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware(logger.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
