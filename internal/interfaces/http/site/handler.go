// Package site serves the server-rendered pages of the public website.
package site

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/session"
	"go.uber.org/zap"
)

// Handler renders pages from the catalog and per-request view state.
type Handler struct {
	logger       *zap.Logger
	catalog      *catalog.Catalog
	sessions     *session.Manager
	submissions  publicapp.SubmissionService
	applyMode    config.ApplyMode
	contactEmail string
	secureCookie bool
	now          func() time.Time
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *zap.Logger
	Catalog       *catalog.Catalog
	Sessions      *session.Manager
	Submissions   publicapp.SubmissionService
	ApplyMode     config.ApplyMode
	ContactEmail  string
	SecureCookies bool
	Now           func() time.Time
}

// NewHandler constructs the page handler set.
func NewHandler(cfg Config) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		logger:       cfg.Logger,
		catalog:      cfg.Catalog,
		sessions:     cfg.Sessions,
		submissions:  cfg.Submissions,
		applyMode:    cfg.ApplyMode,
		contactEmail: cfg.ContactEmail,
		secureCookie: cfg.SecureCookies,
		now:          now,
	}
}

// Register mounts page routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.homeHandler())
	r.Get("/faq", h.faqHandler())
	r.Get("/properties/{id}", h.propertyHandler())
	r.Post("/properties/{id}/rooms/{roomId}/apply", h.applyHandler())
}

// render writes a page or logs why it could not.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("render page failed", zap.String("page", name), zap.Error(err))
	}
}
