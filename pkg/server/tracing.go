package server

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/folio/pkg/router"
)

// startNavigationSpan starts a span for one navigation. The tracer comes
// from the global provider, so spans are no-ops until main installs one.
func (s *Server) startNavigationSpan(ctx context.Context, name, source string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("folio.source", source))
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// endNavigationSpan records the navigation outcome on span and ends it.
// A miss is an expected outcome and leaves the status unset.
func endNavigationSpan(span trace.Span, nav router.Navigation, err error) {
	defer span.End()

	span.SetAttributes(
		attribute.String("folio.location", nav.Location),
		attribute.Bool("folio.found", nav.Found),
		attribute.String("folio.navigation", nav.Type.String()),
	)
	if nav.Found {
		span.SetAttributes(attribute.String("folio.route", nav.To.Name))
	}
	if err != nil && !errors.Is(err, router.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func newTracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
