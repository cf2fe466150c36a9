package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"lab-admin-backend/config"
	"lab-admin-backend/internal/mw"
	"lab-admin-backend/internal/notification"
	"lab-admin-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)
	invalidate := mw.Invalidate(cacheStore)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, invalidate)
	{
		api.GET("/labs", caching, handler.ListLabs)
		api.POST("/labs", handler.CreateLab)
		api.PUT("/labs/:lab_id", handler.UpdateLab)
		api.PATCH("/labs/:lab_id/availability", handler.SetLabAvailability)
		api.DELETE("/labs/:lab_id", handler.DeleteLab)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
