package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"asset-registry-backend/internal/reconcile"
	"asset-registry-backend/internal/store"
	"asset-registry-backend/internal/survey"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	builder *survey.Builder
	engine  *reconcile.Engine
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, builder *survey.Builder, engine *reconcile.Engine, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		builder: builder,
		engine:  engine,
		webpush: webpushOptions,
	}
}
