package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"quickload-admin/internal/common/logger"
)

func TestObservability_RecordFetch(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("quickload-admin-test", reg, logger.NewTestLogger(t))
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordFetch(ctx, "products", "success", 12*time.Millisecond)
	obs.RecordFetch(ctx, "products", "error", 3*time.Millisecond)
	obs.RecordMutation(ctx, "updateProduct", "success")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "hooks_fetch")
	assert.Contains(t, joined, "hooks_mutation")
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var nilObs *Observability
	assert.NotPanics(t, func() {
		nilObs.RecordFetch(context.Background(), "users", "success", time.Millisecond)
		nilObs.RecordMutation(context.Background(), "deleteUser", "error")
		nilObs.Shutdown()
		(&Observability{}).RecordFetch(context.Background(), "users", "error", 0)
	})
}

func TestTracing_StartSpanCarriesTraceID(t *testing.T) {
	tracing := NewTracing("quickload-admin-test")
	defer tracing.Shutdown()

	assert.Empty(t, TraceID(context.Background()))

	ctx, span := tracing.StartSpan(context.Background(), "GET /users", trace.SpanKindServer)
	defer span.End()

	assert.True(t, span.SpanContext().IsSampled())
	assert.Len(t, TraceID(ctx), 32)
}

func TestTracing_NilFallsBackToGlobal(t *testing.T) {
	var tracing *Tracing
	assert.NotPanics(t, func() {
		_, span := tracing.StartSpan(context.Background(), "noop", trace.SpanKindInternal)
		span.End()
		tracing.Shutdown()
	})
}
