package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"asset-registry-backend/config"
	"asset-registry-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, handler *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Reference data for the survey UI; slow-changing, so cached.
		api.GET("/locations", caching, handler.GetLocations)
		api.GET("/locations/:location_id/assets", caching, handler.GetLocationAssets)

		// Inventory survey workflow.
		api.POST("/inventory", handler.CreateSurvey)
		api.GET("/inventory", handler.ListSurveys)
		api.POST("/inventory/:id/reconcile", handler.ReconcileSurvey)

		// Push subscriptions for review notifications.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
