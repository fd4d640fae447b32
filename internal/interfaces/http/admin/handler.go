package admin

import (
	"time"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/livinglux/coliving-site/internal/admin/application"
	"go.uber.org/zap"
)

// DefaultHeartbeat keeps idle streams alive through proxies.
const DefaultHeartbeat = 25 * time.Second

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger    *zap.Logger
	reviews   adminapp.ReviewService
	heartbeat time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *zap.Logger
	Reviews   adminapp.ReviewService
	Heartbeat time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	heartbeat := cfg.Heartbeat
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{
		logger:    cfg.Logger,
		reviews:   cfg.Reviews,
		heartbeat: heartbeat,
	}
}

// Register mounts admin routes onto router. Callers put the session
// middleware in front.
func (h *Handler) Register(r chi.Router) {
	r.Get("/applications", h.applicationListHandler())
	r.Get("/applications/stream", h.applicationStreamHandler())
}
