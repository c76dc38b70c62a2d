package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"bakkey/internal/domain"
)

const (
	defaultListenAddr = "127.0.0.1:8780"
	bodyLimit         = 16 << 10
	shutdownTimeout   = 5 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	ListenAddr   string
	RateLimitRPS float64 // per client IP on recover, restore, register and confirm; 0 disables
	RateBurst    int
}

// Deps are the services the handlers call.
type Deps struct {
	Backups  domain.BackupKeyService
	Keyring  domain.KeyringService
	Identity domain.PanelIdentityService
	Log      logrus.FieldLogger
}

// Server is the bakkeyd HTTP API.
type Server struct {
	app     *fiber.App
	opts    Options
	deps    Deps
	metrics *metrics
	limiter *MapLimiter
}

// New builds the fiber app and registers all routes.
func New(opts Options, deps Deps) *Server {
	if opts.ListenAddr == "" {
		opts.ListenAddr = defaultListenAddr
	}
	s := &Server{
		opts:    opts,
		deps:    deps,
		metrics: newMetrics(),
		limiter: NewMapLimiter(opts.RateLimitRPS, opts.RateBurst, 0),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "bakkeyd",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) routes() {
	s.app.Use(s.accessLog)
	s.app.Use(recover.New())

	s.app.Get("/metrics", s.metrics.handler())

	api := s.app.Group("/v1")
	api.Get("/health", s.health)
	api.Get("/panel/recipient", s.panelRecipient)

	limited := limitByIP(s.limiter, s.metrics)

	keys := api.Group("/backup-keys")
	keys.Post("/generate", s.generate)
	keys.Post("/recover", limited, s.recoverRecipient)
	keys.Post("/validate", s.validate)
	keys.Post("/restore", limited, s.restore)
	keys.Get("/", s.listKeys)
	keys.Post("/", limited, s.registerKey)
	keys.Get("/export", s.exportKeys)
	keys.Post("/:id/confirm", limited, s.confirmKey)
	keys.Delete("/:id", s.removeKey)
}

// accessLog writes one line per request and feeds the request metrics. The
// error handler is run here so the logged status is the one sent.
func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	elapsed := time.Since(start)
	status := c.Response().StatusCode()

	s.metrics.observe(c, status, elapsed)
	s.deps.Log.WithFields(logrus.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"remote":   c.IP(),
		"status":   status,
		"bytes":    len(c.Response().Body()),
		"duration": elapsed.String(),
	}).Info("request")
	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	apiErr := toAPIError(err)
	if apiErr.HTTPStatus >= fiber.StatusInternalServerError {
		s.deps.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return apiErr.Send(c)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Listener(ln) }()
	s.deps.Log.WithField("addr", ln.Addr().String()).Info("bakkeyd listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
