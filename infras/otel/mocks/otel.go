// Package mocks provides a no-op tracer for tests.
package mocks

import (
	"context"

	"todoapi/infras/otel"
)

type otelImpl struct{}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

type scopeImpl struct{}

func (s *scopeImpl) AddEvent(_ string)              {}
func (s *scopeImpl) End()                           {}
func (s *scopeImpl) SetAttribute(_ string, _ any)   {}
func (s *scopeImpl) SetAttributes(_ map[string]any) {}
func (s *scopeImpl) TraceError(_ error)             {}
func (s *scopeImpl) TraceIfError(_ error)           {}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
