// Package server is the composition root: it builds every adapter from
// Config, mounts the HTTP surfaces and owns the process lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	adminapp "github.com/livinglux/coliving-site/internal/admin/application"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	mongodoc "github.com/livinglux/coliving-site/internal/infrastructure/mongo"
	inflight "github.com/livinglux/coliving-site/internal/infrastructure/redis"
	adminhttp "github.com/livinglux/coliving-site/internal/interfaces/http/admin"
	commonhttp "github.com/livinglux/coliving-site/internal/interfaces/http/common"
	publichttp "github.com/livinglux/coliving-site/internal/interfaces/http/public"
	sitehttp "github.com/livinglux/coliving-site/internal/interfaces/http/site"
	"github.com/livinglux/coliving-site/internal/logging"
	"github.com/livinglux/coliving-site/internal/metrics"
	"github.com/livinglux/coliving-site/internal/notify"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/search"
	"github.com/livinglux/coliving-site/internal/session"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ServiceName labels logs and metrics.
const ServiceName = "livinglux-site"

// Server manages the HTTP lifecycle and the background workers.
type Server struct {
	logger  *zap.Logger
	client  *mongo.Client
	redis   *goredis.Client
	metrics *metrics.Metrics

	notifier *notify.Notifier
	retryJob *notify.RetryJob

	public *publichttp.Handler
	admin  *adminhttp.Handler
	site   *sitehttp.Handler

	sessions       *session.Manager
	addr           string
	allowedOrigins []string
	retrySpec      string
}

// New builds the server. client may be nil when no document store is
// configured; the submission and admin endpoints then answer 503.
func New(cfg config.Config, logger *zap.Logger, client *mongo.Client) (*Server, error) {
	content, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	srv := &Server{
		logger:         logger,
		client:         client,
		metrics:        metrics.New(ServiceName),
		sessions:       session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		retrySpec:      cfg.NotifyRetrySpec,
	}

	mailer := notify.NewMailer(cfg.SMTP)
	channels := srv.buildChannels(cfg, mailer)

	var (
		repo     publicapp.ApplicationRepository
		reader   adminapp.ApplicationReader
		failures notify.FailureStore
	)
	if client != nil {
		db := client.Database(cfg.Store.Database)
		apps := mongodoc.NewApplicationRepository(db, cfg.ApplicationsCollection(), logger, cfg.AdminPollInterval)
		repo, reader = apps, apps
		failed := mongodoc.NewFailedNotificationRepository(db, cfg.FailedNotificationCollection)
		failures = failed
		srv.retryJob = notify.NewRetryJob(logger, failed, channels, srv.metrics)
	}

	srv.notifier = notify.NewNotifier(logger, channels, failures, srv.metrics, notify.Options{})

	submissions := publicapp.NewSubmissionService(publicapp.SubmissionDeps{
		Catalog:  content,
		Repo:     repo,
		Guard:    srv.buildGuard(cfg),
		Notifier: srv.notifier,
		Recorder: srv.metrics,
	})

	srv.public = publichttp.NewHandler(publichttp.Config{
		Logger:       logger,
		Catalog:      content,
		Search:       srv.buildSearch(cfg, content),
		Sessions:     srv.sessions,
		Submissions:  submissions,
		Mailer:       mailer,
		ApplyMode:    cfg.ApplyMode,
		ContactEmail: cfg.ContactEmail,
	})
	srv.admin = adminhttp.NewHandler(adminhttp.Config{
		Logger:  logger,
		Reviews: adminapp.NewReviewService(reader),
	})
	srv.site = sitehttp.NewHandler(sitehttp.Config{
		Logger:        logger,
		Catalog:       content,
		Sessions:      srv.sessions,
		Submissions:   submissions,
		ApplyMode:     cfg.ApplyMode,
		ContactEmail:  cfg.ContactEmail,
		SecureCookies: strings.HasPrefix(cfg.SiteBaseURL, "https://"),
	})
	return srv, nil
}

func (s *Server) buildChannels(cfg config.Config, mailer *notify.Mailer) []notify.Channel {
	var channels []notify.Channel
	if mailer.Configured() {
		channels = append(channels, mailer)
	}
	bot, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	switch {
	case err == nil:
		channels = append(channels, bot)
	case errors.Is(err, notify.ErrNotConfigured):
		s.logger.Info("telegram notifications disabled")
	default:
		s.logger.Warn("telegram notifications unavailable", zap.Error(err))
	}
	return channels
}

func (s *Server) buildGuard(cfg config.Config) publicapp.SubmissionGuard {
	if cfg.RedisAddr == "" {
		return inflight.NewLocalGuard()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	client, err := inflight.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		s.logger.Warn("redis unavailable, using in-process submission guard", zap.Error(err))
		return inflight.NewLocalGuard()
	}
	s.redis = client
	return inflight.NewGuard(client, inflight.DefaultLockTTL)
}

func (s *Server) buildSearch(cfg config.Config, content *catalog.Catalog) search.Searcher {
	local := search.Local{Catalog: content}
	if cfg.MeilisearchHost == "" {
		return local
	}
	index := search.NewMeilisearch(cfg.MeilisearchHost, cfg.MeilisearchAPIKey, content)
	if err := index.Index(); err != nil {
		s.logger.Warn("meilisearch indexing failed, using local catalog search", zap.Error(err))
		return local
	}
	return search.Fallback{Primary: index, Secondary: local, Logger: s.logger}
}

// Routes assembles the full HTTP handler.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))
	router.Use(s.metrics.Middleware)

	router.Get("/healthz", s.healthHandler())
	router.Handle("/metrics", s.metrics.Handler())

	auth := commonhttp.AuthMiddleware(s.logger, s.sessions)
	router.Route("/api", func(r chi.Router) {
		s.public.Register(r, auth)
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth)
			s.admin.Register(r)
		})
	})
	s.site.Register(router)
	return router
}

// Run starts the background workers and serves HTTP until a signal or a
// listener failure.
func (s *Server) Run() error {
	if s.retryJob != nil && s.retrySpec != "" {
		if err := s.retryJob.Start(s.retrySpec); err != nil {
			s.logger.Warn("notification retry job disabled", zap.Error(err))
			s.retryJob = nil
		}
	}

	httpServer := newHTTPServer(s.addr, s.Routes())

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(httpServer, errChan, s.logger)
	s.shutdown(context.Background())
	return err
}

// newHTTPServer builds the listener-side server. Request contexts derive
// from a base context that is cancelled once Shutdown begins, so open event
// streams end instead of holding the drain.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

// withCORS adds CORS headers for the allowed origins. "*" allows any
// origin; an empty list allows every origin too.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports store reachability. A process without a store is
// up but degraded.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.client == nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
				"status": "degraded",
				"store":  "disabled",
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// shutdown drains background work and closes clients.
func (s *Server) shutdown(ctx context.Context) {
	if s.retryJob != nil {
		s.retryJob.Stop()
	}
	s.notifier.Wait()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if s.client != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.client.Disconnect(shutdownCtx); err != nil {
			s.logger.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}
}

// waitForShutdown blocks until the listener fails or SIGINT/SIGTERM
// arrives, then shuts the HTTP server down gracefully.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger *zap.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn("http server shutdown failed", zap.Error(err))
		}
	}
	return nil
}
