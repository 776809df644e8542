// Package otel wires OpenTelemetry tracing onto the eventbus: one span per
// walk with a child span per node resolution.
package otel

import (
	"context"
	"fmt"
	"sync"

	eventbus "github.com/hanpama/asynctree/internal/eventbus"
	events "github.com/hanpama/asynctree/internal/events"
	walkid "github.com/hanpama/asynctree/internal/walkid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("asynctree")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer       trace.Tracer
	walkSpans    sync.Map // walk id -> trace.Span
	resolveSpans sync.Map // "walkid/index" -> trace.Span
}

func resolveKey(wid int64, index int) string {
	return fmt.Sprintf("%d/%d", wid, index)
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.WalkStart) {
		wid, _ := walkid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "asynctree.walk")
		span.SetAttributes(attribute.Bool("walk.rehydrating", e.Rehydrating))
		s.walkSpans.Store(wid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.WalkFinish) {
		wid, _ := walkid.FromContext(ctx)
		v, ok := s.walkSpans.LoadAndDelete(wid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("walk.entry_count", e.Entries),
			attribute.Int("walk.error_count", len(e.Errors)),
		)
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ResolveStart) {
		wid, _ := walkid.FromContext(ctx)
		parent := ctx
		if v, ok := s.walkSpans.Load(wid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "asynctree.resolve")
		span.SetAttributes(
			attribute.String("resolve.display_name", e.DisplayName),
			attribute.Int("resolve.index", e.Index),
			attribute.String("resolve.policy", e.Policy),
		)
		s.resolveSpans.Store(resolveKey(wid, e.Index), span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ResolveFinish) {
		wid, _ := walkid.FromContext(ctx)
		v, ok := s.resolveSpans.LoadAndDelete(resolveKey(wid, e.Index))
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.String("resolve.source", e.Source))
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}
