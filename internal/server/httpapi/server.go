// Package httpapi serves the admin settings endpoints, the web app manifest
// and the icon files over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/i18n"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Deps are the services the handlers are built from.
type Deps struct {
	Icons      *services.IconService
	Settings   *services.SettingsService
	Hooks      *services.Hooks
	Auth       *services.AuthService
	Translator *i18n.Translator
	Logger     logging.Logger
	// BoardPath is the public URL path of the board, prefixed to icon srcs.
	BoardPath string
	// PresignTTL bounds redirect URLs handed out for S3-backed icons.
	PresignTTL time.Duration
}

type HTTPServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewHTTPServer(address string, d *Deps) *HTTPServer {
	return &HTTPServer{
		address: address,
		handler: SetupRoutes(d),
		logger:  d.Logger.With("module", "http_server"),
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
