package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/NabeelAhmed1721/visionary/internal/generation"
	"github.com/NabeelAhmed1721/visionary/internal/metrics"
	"github.com/NabeelAhmed1721/visionary/internal/post"
)

// MaxBodyBytes caps request bodies; photos may arrive inline as base64.
const MaxBodyBytes = 50 << 20

type Options struct {
	// ClientDir, when set, is served at / with index.html as the fallback
	// for unknown GET paths.
	ClientDir   string
	Tracing     bool
	ServiceName string
	Metrics     *metrics.Metrics
}

// New builds the gin engine with every route of the application.
func New(posts *post.Service, gen *generation.Service, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	if opts.Tracing {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(cors.Default())
	router.Use(limitBody(MaxBodyBytes))

	dir := clientDir(opts.ClientDir)
	if dir != "" {
		router.Use(static.Serve("/", static.LocalFile(dir, true)))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := router.Group("/api/v1")
	post.RegisterRoutes(api.Group("/post"), posts)
	generation.RegisterRoutes(api.Group("/dalle"), gen)

	if dir == "" {
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Hello from DALL.E!"})
		})
	} else {
		// client-side routes such as /create-post load the app shell
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(filepath.Join(dir, "index.html"))
		})
	}
	return router
}

// clientDir returns dir when it exists, otherwise "".
func clientDir(dir string) string {
	if dir == "" {
		return ""
	}
	if _, err := os.Stat(dir); err != nil {
		slog.Warn("client directory not found, static client disabled", "dir", dir, "error", err)
		return ""
	}
	return dir
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "message": "request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.FullPath() == "/health" {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"uri", c.Request.RequestURI,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"remote_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			slog.Error("request failed", append(attrs, "error", c.Errors.String())...)
			return
		}
		slog.Info("request", attrs...)
	}
}
