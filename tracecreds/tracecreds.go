// Package tracecreds instruments a secret source for distributed
// tracing. The OpenTelemetry API is supported.
//
// This is a wrapper around an existing [SecretSource] (usually a
// [*github.com/appcreds/vaultcreds.Client]): all operations on the
// returned source are recorded as spans.
//
// In order to report traces, an OTel [trace.TracerProvider] must first be
// set up. The details of this are outside the scope of this module, but
// see the credcli example in this repository's examples directory for one
// approach.
//
// A [trace.TracerProvider] can optionally be passed to [New] using
// [WithTracerProvider].
//
// Span attributes identify the operation and the secret path; no secret
// value, token, or record field value is ever attached to a span.
package tracecreds

import (
	"context"

	"github.com/appcreds/vaultcreds"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// SecretSource is the surface of [vaultcreds.Client] that this package
// instruments.
type SecretSource interface {
	Authenticate(ctx context.Context) (*vaultcreds.Token, error)
	ReadSecret(ctx context.Context, path string) (vaultcreds.Record, error)
	Renew(ctx context.Context) (*vaultcreds.Token, error)
}

var (
	_ SecretSource = (*vaultcreds.Client)(nil)
	_ SecretSource = (*tracedSource)(nil)
)

const tracerName = "github.com/appcreds/vaultcreds/tracecreds"

// New returns a [SecretSource] that instruments src, adding a trace span
// for each operation. Options can be provided to configure the behaviour
// of the instrumented source.
func New(src SecretSource, opts ...Option) SecretSource {
	cfg := config{}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.tp == nil {
		cfg.tp = otel.GetTracerProvider()
	}

	return &tracedSource{
		src:    src,
		tracer: cfg.tp.Tracer(tracerName),
	}
}

type tracedSource struct {
	src    SecretSource
	tracer trace.Tracer
}

func (s *tracedSource) Authenticate(ctx context.Context) (*vaultcreds.Token, error) {
	ctx, span := s.tracer.Start(ctx, "secrets.Authenticate")
	defer span.End()

	token, err := s.src.Authenticate(ctx)
	if token != nil {
		span.SetAttributes(TokenTTL(token.TTL), TokenRenewable(token.Renewable))
	}

	return token, recordError(span, err)
}

func (s *tracedSource) ReadSecret(ctx context.Context, path string) (vaultcreds.Record, error) {
	ctx, span := s.tracer.Start(ctx, "secrets.ReadSecret", trace.WithAttributes(Path(path)))
	defer span.End()

	rec, err := s.src.ReadSecret(ctx, path)

	span.SetAttributes(RecordFields(len(rec)))

	return rec, recordError(span, err)
}

func (s *tracedSource) Renew(ctx context.Context) (*vaultcreds.Token, error) {
	ctx, span := s.tracer.Start(ctx, "secrets.Renew")
	defer span.End()

	token, err := s.src.Renew(ctx)
	if token != nil {
		span.SetAttributes(TokenTTL(token.TTL), TokenRenewable(token.Renewable))
	}

	return token, recordError(span, err)
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)

	return err
}
