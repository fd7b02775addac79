// Package api is the HTTP surface of showcase: public reads of projects,
// navigation, content and media, and token-gated writes.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/media"
	"github.com/dieledev/showcase/internal/store"
)

const corsMaxAge = 12 * time.Hour

type Deps struct {
	Stores         *store.Stores
	Media          media.Library
	Logger         logger.Logger
	AdminToken     string
	AllowedOrigins []string
	// UploadsDir, when set, is served read-only at /uploads.
	UploadsDir string
	Version    string
	Now        func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	r.MaxMultipartMemory = media.MaxSize + 1<<20
	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(MetricsMiddleware())
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  d.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", TokenHeader, requestIDHeader},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        corsMaxAge,
		}))
	}

	admin := RequireAdmin(d.AdminToken)

	r.GET("/health", health(d.Version))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/debug/storage", admin, storageDebug(d.Stores))
	if d.UploadsDir != "" {
		r.Static("/uploads", d.UploadsDir)
	}

	api := r.Group("/api")

	projects := NewProjectHandler(d.Stores.Projects, now)
	api.GET("/projects", projects.List)
	api.POST("/projects", admin, projects.Create)
	api.GET("/projects/:slug", projects.Get)
	api.PUT("/projects/:slug", admin, projects.Update)
	api.DELETE("/projects/:slug", admin, projects.Delete)

	nav := NewNavigationHandler(d.Stores.Navigation)
	api.GET("/navigation", nav.List)
	api.PUT("/navigation", admin, nav.Replace)

	content := NewContentHandler(d.Stores.Content)
	api.GET("/content", content.Get)
	api.PUT("/content", admin, content.Replace)

	mediaH := NewMediaHandler(d.Media)
	api.GET("/media", mediaH.List)
	api.POST("/media", admin, mediaH.Upload)
	api.DELETE("/media/:filename", admin, mediaH.Delete)

	api.POST("/auth/verify", admin, verify)

	return r
}
