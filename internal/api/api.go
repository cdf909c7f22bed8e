// Package api implements the HTTP trigger for the scraping pipeline.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/logger"
)

// Runner triggers scraping runs.
type Runner interface {
	Run(ctx context.Context, ct domain.ContentType) (*domain.RunResult, error)
}

// Pinger reports storage health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, runner Runner, db Pinger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The trigger is method-agnostic: schedulers differ in what they send.
	router.Any("/scrape/:type", scrapeHandler(log, runner))

	return router
}

// scrapeHandler runs the pipeline for the content type in the path and
// reports the run summary.
func scrapeHandler(log logger.Interface, runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := parseContentType(c.Param("type"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown content type %q", c.Param("type"))})
			return
		}

		result, err := runner.Run(c.Request.Context(), ct)
		if err != nil {
			log.Error("run failed", "content_type", string(ct), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%d upserted, %d logos uploaded, %d stale deleted",
				result.Upserted, result.LogosUploaded, result.StaleDeleted),
		})
	}
}

func parseContentType(raw string) (domain.ContentType, bool) {
	switch domain.ContentType(raw) {
	case domain.ContentOpen, domain.ContentPredicted, domain.ContentNews:
		return domain.ContentType(raw), true
	default:
		return "", false
	}
}

// corsMiddleware allows any origin and short-circuits preflight requests.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// loggingMiddleware logs each request with its latency and status.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}
