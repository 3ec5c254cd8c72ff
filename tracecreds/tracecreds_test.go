package tracecreds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/appcreds/vaultcreds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

//nolint:gochecknoglobals
var (
	exporter = tracetest.NewInMemoryExporter()
	tp       = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
)

func attribmap(kvs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs))

	for _, attr := range kvs {
		m[string(attr.Key)] = attr.Value.AsInterface()
	}

	return m
}

type stubSource struct {
	token *vaultcreds.Token
	rec   vaultcreds.Record
	err   error
}

func (s *stubSource) Authenticate(_ context.Context) (*vaultcreds.Token, error) {
	return s.token, s.err
}

func (s *stubSource) ReadSecret(_ context.Context, _ string) (vaultcreds.Record, error) {
	return s.rec, s.err
}

func (s *stubSource) Renew(_ context.Context) (*vaultcreds.Token, error) {
	return s.token, s.err
}

func TestAuthenticateSpan(t *testing.T) {
	ctx := context.Background()

	exporter.Reset()

	src := New(&stubSource{
		token: &vaultcreds.Token{TTL: time.Hour, Renewable: true},
	}, WithTracerProvider(tp))

	token, err := src.Authenticate(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, token.TTL)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "secrets.Authenticate", spans[0].Name)

	m := attribmap(spans[0].Attributes)
	assert.EqualValues(t, 3600, m["secrets.token_ttl_seconds"])
	assert.EqualValues(t, true, m["secrets.token_renewable"])
}

func TestReadSecretSpan(t *testing.T) {
	ctx := context.Background()

	exporter.Reset()

	password := "sup3r-s3cret-value"
	src := New(&stubSource{
		rec: vaultcreds.Record{"user": "dbadmin", "password": password},
	}, WithTracerProvider(tp))

	rec, err := src.ReadSecret(ctx, "myapp/database")
	require.NoError(t, err)
	assert.Len(t, rec, 2)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "secrets.ReadSecret", spans[0].Name)

	m := attribmap(spans[0].Attributes)
	assert.Equal(t, "myapp/database", m["secrets.path"])
	assert.EqualValues(t, 2, m["secrets.record_fields"])

	// only the count is recorded - never field names or values
	for _, v := range m {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, password)
			assert.NotContains(t, s, "dbadmin")
		}
	}
}

func TestErrorSpan(t *testing.T) {
	ctx := context.Background()

	exporter.Reset()

	boom := errors.New("login rejected")
	src := New(&stubSource{err: boom}, WithTracerProvider(tp))

	_, err := src.Renew(ctx)
	assert.ErrorIs(t, err, boom)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "secrets.Renew", spans[0].Name)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}
