package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dshills/diffreview/internal/review"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Reviewer runs one review. *review.Dispatcher satisfies it.
type Reviewer interface {
	Review(ctx context.Context, req review.Request) (review.Result, error)
}

// Options configures the service.
type Options struct {
	Addr          string
	AllowedOrigin string
	// ModelsFn lists the model table for GET /api/models.
	ModelsFn func() any
}

// Server exposes the review dispatcher over HTTP and WebSocket.
type Server struct {
	rv   Reviewer
	opts Options
	log  zerolog.Logger
}

// New creates a Server. An empty AllowedOrigin allows any origin.
func New(rv Reviewer, opts Options, log zerolog.Logger) *Server {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	return &Server{rv: rv, opts: opts, log: log.With().Str("component", "server").Logger()}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/review", s.handleReview)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWS)

	return s.withRequestID(s.cors(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		// A single generation may take minutes on a local model.
		WriteTimeout: 6 * time.Minute,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("review service listening")
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// gctx is also done when Serve fails, so this never blocks forever.
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
