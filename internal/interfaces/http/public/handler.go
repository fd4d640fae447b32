package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/notify"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/search"
	"github.com/livinglux/coliving-site/internal/session"
	"go.uber.org/zap"
)

// MailSender delivers the mail endpoint's message.
type MailSender interface {
	Configured() bool
	Send(ctx context.Context, msg notify.Message) error
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       *zap.Logger
	catalog      *catalog.Catalog
	search       search.Searcher
	sessions     *session.Manager
	submissions  publicapp.SubmissionService
	mailer       MailSender
	applyMode    config.ApplyMode
	contactEmail string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *zap.Logger
	Catalog      *catalog.Catalog
	Search       search.Searcher
	Sessions     *session.Manager
	Submissions  publicapp.SubmissionService
	Mailer       MailSender
	ApplyMode    config.ApplyMode
	ContactEmail string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	searcher := cfg.Search
	if searcher == nil {
		searcher = search.Local{Catalog: cfg.Catalog}
	}
	return &Handler{
		logger:       cfg.Logger,
		catalog:      cfg.Catalog,
		search:       searcher,
		sessions:     cfg.Sessions,
		submissions:  cfg.Submissions,
		mailer:       cfg.Mailer,
		applyMode:    cfg.ApplyMode,
		contactEmail: cfg.ContactEmail,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/properties", h.propertyListHandler())
	r.Get("/properties/{id}", h.propertyDetailHandler())
	r.Get("/garages", h.garageListHandler())
	r.Get("/content", h.contentHandler())
	r.Get("/search", h.searchHandler())
	r.Post("/session", h.sessionCreateHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
	r.With(authMiddleware).Post("/applications", h.applicationCreateHandler())
	r.HandleFunc("/send-application", h.sendApplicationHandler())
}
