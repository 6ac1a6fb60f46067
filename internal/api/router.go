package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

// NewRouter builds the gin engine with middlewares, product routes and the
// health check.
func NewRouter(service ProductService, ping Pinger, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), Recovery(logger))

	router.GET("/health", healthHandler(ping, logger))
	NewProductHandler(service, logger).RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Route not found")
	})
	return router
}

func healthHandler(ping Pinger, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.WithError(err).Error("Health check failed")
			ErrorResponse(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
