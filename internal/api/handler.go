package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"lab-admin-backend/internal/notification"
	"lab-admin-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	pool    *notification.WorkerPool
}

// NewHandler creates a new API handler. pool may be nil when push
// notifications are disabled.
func NewHandler(s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		pool:    pool,
	}
}
