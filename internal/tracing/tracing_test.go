package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpoint(t *testing.T) {
	previous := Tracer
	t.Cleanup(func() { Tracer = previous })

	shutdown, err := Init(context.Background(), nil, "lease-test", "test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := Tracer.Start(context.Background(), "calculate")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestDefaultTracerIsUsable(t *testing.T) {
	_, span := Tracer.Start(context.Background(), "unconfigured")
	defer span.End()
	assert.NotNil(t, span)
}
