package session

import (
	"log/slog"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Option configures a Session.
type Option func(*Session)

// WithTick sets the poll timeout. Non-positive values are ignored.
func WithTick(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithMouse controls whether mouse capture is enabled in Run.
func WithMouse(enabled bool) Option {
	return func(s *Session) { s.mouse = enabled }
}

// WithDispatcher replaces the default key dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Session) { s.dispatcher = d }
}

// WithRenderer sets the frame renderer. The default draws nothing.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTracer sets the tracer for the session.run span.
func WithTracer(t oteltrace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithID tags logs and spans with a session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}
