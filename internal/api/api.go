// internal/api/api.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maakle/bombo-go/internal/api/middleware"
	"github.com/maakle/bombo-go/internal/storage"
)

// NewRouter builds the deployment-probe surface: liveness plus a readiness
// check that actually touches the sticker bucket.
func NewRouter(store storage.ObjectStorage) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := store.ListImages(ctx, ""); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return router
}
