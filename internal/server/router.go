package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/config"
	"resume-studio/internal/exports"
	"resume-studio/internal/resumes"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers the router needs.
type RouterDeps struct {
	Config        config.Config
	ResumeHandler *resumes.Handler
	ExportHandler *exports.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(exportRateLimit()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}

	return r
}

// exportRateLimit keeps export triggering well below what a browser
// client would ever issue; everything else is effectively unlimited.
func exportRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && isExportPath(c.FullPath()) {
				return "EXPORT"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"EXPORT": {Rate: 0.5, Burst: 3},
		},
	}
}

func isExportPath(fullPath string) bool {
	switch fullPath {
	case "/api/v1/resumes/:id/export/pdf",
		"/api/v1/resumes/:id/export/docx",
		"/api/v1/exports/pdf",
		"/api/v1/exports/docx":
		return true
	}
	return false
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
