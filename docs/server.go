package docs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/logger"
)

const (
	rateLimitBurstMultiplier = 2
	rateLimitCleanup         = 3 * time.Minute
)

// Server serves the synthesized document: the JSON specification at the
// configured spec path and a human-facing viewer at the docs path.
type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	log       logger.Logger
	rebuilder *Rebuilder
}

// NewServer wires the echo instance, middleware and routes.
func NewServer(cfg *config.Config, log logger.Logger, rebuilder *Rebuilder) *Server {
	if log == nil {
		log = logger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(rateLimit(cfg.Server.RequestsPerSecond))

	s := &Server{echo: e, cfg: cfg, log: log, rebuilder: rebuilder}

	e.GET(cfg.SpecPath, s.handleSpec)
	e.GET(cfg.DocsPath, s.handleDocs)

	return s
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.log.Info().Str("addr", addr).Str("docs", s.cfg.DocsPath).Str("spec", s.cfg.SpecPath).Msg("Docs server listening")

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleSpec returns the current document verbatim as JSON.
func (s *Server) handleSpec(c echo.Context) error {
	doc := s.rebuilder.Document()
	if doc == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "specification not synthesized yet")
	}

	raw, err := doc.JSON()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to serialize specification")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, raw)
}

// handleDocs renders the HTML viewer page pointing at the spec path.
func (s *Server) handleDocs(c echo.Context) error {
	page := fmt.Sprintf(viewerPage, s.cfg.Title, s.cfg.SpecPath)
	return c.HTML(http.StatusOK, page)
}

// requestLogger logs one line per request with the assigned request id.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("Request handled")

			return err
		}
	}
}

// rateLimit limits requests per client IP. Zero or negative disables it.
func rateLimit(requestsPerSecond int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(requestsPerSecond),
				Burst:     requestsPerSecond * rateLimitBurstMultiplier,
				ExpiresIn: rateLimitCleanup,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error": "rate limit exceeded",
			})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error": "too many requests",
			})
		},
	})
}

const viewerPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({url: "%s", dom_id: "#swagger-ui"});
    };
  </script>
</body>
</html>
`
