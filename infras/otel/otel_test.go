package otel_test

import (
	"context"
	"errors"
	"testing"

	"todoapi/config"
	"todoapi/infras/otel"

	"github.com/stretchr/testify/assert"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "todoapi-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "test", "test.span")
	scope.SetAttributes(map[string]any{
		"bool":   true,
		"string": "value",
		"int":    1,
		"int64":  int64(2),
		"slice":  []string{"a"},
		"other":  1.5,
	})
	scope.AddEvent("event")
	scope.TraceIfError(nil)
	scope.TraceError(errors.New("boom"))
	scope.End()

	assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid())
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
