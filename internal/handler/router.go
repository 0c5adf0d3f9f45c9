package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/internal/middleware"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// WebDir holds the built single-page app. Empty disables static serving.
	WebDir string
	Logger *zap.Logger
}

// NewRouter builds the gin engine: middleware, API routes and the
// single-page app fallback.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/stones/export"})))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterRoutes(r.Group("/api"), h)

	spa := newSPA(cfg.WebDir)
	r.NoRoute(spa.serve)
	return r
}

// RegisterRoutes mounts the REST API on api.
func RegisterRoutes(api *gin.RouterGroup, h *Handlers) {
	stones := api.Group("/stones")
	{
		stones.GET("", h.Stone.List)
		stones.GET("/export", h.Stone.Export)
		stones.GET("/:id", h.Stone.Get)
		stones.POST("", h.Stone.Create)
		stones.PUT("/:id", h.Stone.Update)
		stones.DELETE("/:id", h.Stone.Delete)
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.GET("/:id", h.Contact.Get)
		contacts.POST("", h.Contact.Create)
		contacts.PUT("/:id", h.Contact.Update)
		contacts.DELETE("/:id", h.Contact.Delete)
	}

	deals := api.Group("/deals")
	{
		deals.GET("", h.Deal.List)
		deals.GET("/:id", h.Deal.Get)
		deals.POST("", h.Deal.Create)
		deals.PUT("/:id", h.Deal.Update)
		deals.DELETE("/:id", h.Deal.Delete)
	}

	api.GET("/prices", h.Price.List)
	api.POST("/prices", h.Price.Create)

	api.GET("/stats", h.Stats.Get)
	api.POST("/calculate", h.Calculator.Calculate)
}

// spa serves files from the built frontend and falls back to index.html so
// client-side routes survive a reload.
type spa struct {
	dir string
}

func newSPA(dir string) *spa {
	return &spa{dir: dir}
}

func (s *spa) serve(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") || p == "/api" {
		NotFound(c, "Not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		NotFound(c, "Not found")
		return
	}
	if s.dir == "" {
		NotFound(c, "Not found")
		return
	}

	// path.Clean on a rooted path cannot climb above the web dir.
	file := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+p)))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		if strings.HasPrefix(p, "/assets/") {
			c.Header("Cache-Control", "public, max-age=31536000, immutable")
		}
		c.File(file)
		return
	}

	index, err := os.ReadFile(filepath.Join(s.dir, "index.html"))
	if err != nil {
		c.String(http.StatusInternalServerError, "index.html not found")
		return
	}
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "text/html; charset=utf-8", index)
}
