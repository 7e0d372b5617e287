package review

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/rs/zerolog"
)

// ResolveFunc builds a model handle. providers.Resolve is the default.
type ResolveFunc func(p providers.Provider, apiKey string, useStrong bool, opts ...providers.Option) (providers.Model, error)

// Dispatcher runs review requests. It holds no per-call state and is safe for
// concurrent use.
type Dispatcher struct {
	resolve     ResolveFunc
	resolveOpts []providers.Option
	log         zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResolver replaces the model resolver.
func WithResolver(fn ResolveFunc) Option {
	return func(d *Dispatcher) { d.resolve = fn }
}

// WithResolveOptions passes options to every resolver call.
func WithResolveOptions(opts ...providers.Option) Option {
	return func(d *Dispatcher) { d.resolveOpts = append(d.resolveOpts, opts...) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolve: providers.Resolve,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDispatcher = NewDispatcher()

// Review runs req with the default dispatcher.
func Review(ctx context.Context, req Request) (Result, error) {
	return defaultDispatcher.Review(ctx, req)
}

// Review validates req, makes one generation call and normalizes the outcome.
func (d *Dispatcher) Review(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	model, err := d.resolve(req.Provider, req.APIKey, req.UseStrongModel, d.resolveOpts...)
	if err != nil {
		return Result{}, err
	}

	log := d.log.With().
		Str("provider", model.Name()).
		Str("model", model.ModelID()).
		Logger()

	prompt := BuildPrompt(req.Instructions, req.Diff)
	log.Debug().Object("request", req).Int("promptBytes", len(prompt)).Msg("sending review request")

	start := time.Now()
	text, err := model.Generate(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		rerr := classify(err, req.APIKey)
		log.Warn().Str("kind", string(rerr.Kind)).Dur("elapsed", elapsed).Msg("review failed")
		return Result{}, rerr
	}

	if strings.TrimSpace(text) == "" {
		log.Warn().Dur("elapsed", elapsed).Msg("model returned no text")
		return Result{}, &Error{Kind: UpstreamEmptyResponse}
	}

	log.Info().Dur("elapsed", elapsed).Int("reviewBytes", len(text)).Msg("review complete")
	return Result{
		Review:   text,
		Provider: req.Provider,
		Model:    model.ModelID(),
	}, nil
}
