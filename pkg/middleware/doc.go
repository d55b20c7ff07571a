// Package middleware wraps drag event dispatch with tracing, metrics and
// logging.
//
// A server session hands every event frame to a Handler built with Chain.
// The first middleware passed to Chain is the outermost.
//
//	h := middleware.Chain(process,
//	    middleware.OpenTelemetry(middleware.WithTracerName("draglist")),
//	    middleware.Metrics(collector),
//	    middleware.Logging(logger),
//	)
//
// # OpenTelemetry
//
// OpenTelemetry starts one server span per event named after the event
// ("draglist.dragstart") with the session, list, event and HID as
// attributes. Handlers reach the span through trace.SpanFromContext.
// The global tracer provider is used unless WithTracerProvider is given:
//
//	otel.SetTracerProvider(tp)
//
// # Metrics
//
// Metrics observes event latency and failures on a *metrics.Collector.
// A nil collector makes it a pass-through.
package middleware
