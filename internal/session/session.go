// Package session owns the terminal for the lifetime of the program. It
// acquires raw mode, runs the poll/dispatch/render loop and releases every
// terminal mode exactly once, whether the loop ends by quitting, by error or
// by panic.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"fileview/internal/crash"
	"fileview/internal/input"
	"fileview/internal/registry"
	"fileview/internal/state"
)

var (
	// ErrRawMode is returned by New when the terminal refuses raw mode.
	ErrRawMode = errors.New("enable raw mode")
	// ErrAltScreen is returned by Run when the alternate screen is unavailable.
	ErrAltScreen = errors.New("enter alternate screen")
)

// DefaultTick is how long Poll waits for input before the frame is redrawn.
const DefaultTick = 16 * time.Millisecond

// Terminal is the device the session drives.
type Terminal interface {
	EnableRawMode() error
	DisableRawMode() error
	EnterAltScreen() error
	LeaveAltScreen() error
	EnableMouseCapture() error
	DisableMouseCapture() error
	ShowCursor() error
	// Poll waits up to timeout for one event and reports whether one arrived.
	Poll(timeout time.Duration) (input.Event, bool, error)
	Draw(frame string) error
}

// Dispatcher applies an event to the registry and reports whether the
// session should quit.
type Dispatcher interface {
	Dispatch(ev input.Event, reg *registry.Registry) bool
}

// Renderer produces a frame from a read-only view of the registry.
type Renderer interface {
	Render(v registry.View) string
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(v registry.View) string

func (f RenderFunc) Render(v registry.View) string { return f(v) }

// Session is an acquired terminal plus the loop that drives it.
type Session struct {
	term       Terminal
	tick       time.Duration
	mouse      bool
	dispatcher Dispatcher
	renderer   Renderer
	logger     *slog.Logger
	tracer     oteltrace.Tracer
	id         string

	closeOnce sync.Once
}

// New puts term into raw mode and returns the session that owns it. The
// caller must Close the session once New succeeds.
func New(term Terminal, opts ...Option) (*Session, error) {
	s := &Session{
		term:       term,
		tick:       DefaultTick,
		mouse:      true,
		dispatcher: input.NewDispatcher(input.DefaultKeyMap()),
		renderer:   RenderFunc(func(registry.View) string { return "" }),
		logger:     slog.Default(),
		tracer:     noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := term.EnableRawMode(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRawMode, err)
	}
	s.logger.Debug("raw mode enabled", "session", s.id)
	return s, nil
}

// Run enters the alternate screen and loops until the quit key, a terminal
// error or ctx cancellation. Each iteration polls for at most one tick,
// applies the event and draws a fresh frame. A terminal error that follows
// cancellation is reported as ctx.Err().
func (s *Session) Run(ctx context.Context, reg *registry.Registry) (err error) {
	ctx, span := s.tracer.Start(ctx, "session.run",
		oteltrace.WithAttributes(attribute.String("session.id", s.id)))
	if files, ok := registry.Lookup[state.FileBuff](reg); ok {
		span.SetAttributes(attribute.Int("session.files", files.Len()))
	}
	defer func() {
		if p := recover(); p != nil {
			span.SetStatus(codes.Error, "panic: "+crash.Message(p))
			span.End()
			panic(p)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.term.EnterAltScreen(); err != nil {
		return fmt.Errorf("%w: %w", ErrAltScreen, err)
	}
	if s.mouse {
		if err := s.term.EnableMouseCapture(); err != nil {
			return fmt.Errorf("enable mouse capture: %w", err)
		}
	}

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, ok, err := s.term.Poll(s.tick)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			return fmt.Errorf("poll: %w", err)
		}
		if ok && s.handle(ctx, ev, reg) {
			span.AddEvent("quit", oteltrace.WithAttributes(attribute.Int("session.frames", frames)))
			s.logger.Debug("quit requested", "session", s.id, "frames", frames)
			return nil
		}

		if err := s.term.Draw(s.renderer.Render(reg.ReadOnly())); err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			return fmt.Errorf("draw: %w", err)
		}
		frames++
	}
}

// handle applies one event and reports whether the session should quit.
func (s *Session) handle(ctx context.Context, ev input.Event, reg *registry.Registry) bool {
	if r, ok := ev.(input.Resize); ok {
		size := state.Size{Width: r.Width, Height: r.Height}
		if cur, ok := registry.Lookup[state.Size](reg); !ok || cur != size {
			registry.Insert(reg, size)
			s.logger.Debug("terminal resized", "width", r.Width, "height", r.Height)
		}
		return false
	}

	before, tracked := registry.Lookup[state.EntryBox](reg)
	quit := s.dispatcher.Dispatch(ev, reg)
	if after, ok := registry.Lookup[state.EntryBox](reg); tracked && ok && after.Mode() != before.Mode() {
		oteltrace.SpanFromContext(ctx).AddEvent("mode",
			oteltrace.WithAttributes(attribute.String("mode", after.Mode().String())))
	}
	return quit
}

// Close releases the terminal: alternate screen, mouse capture, raw mode,
// then cursor. Every step is attempted even if an earlier one fails or
// panics; failures are logged because there is no usable screen left to
// report them on. Only the first call does anything.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		steps := []struct {
			name string
			fn   func() error
		}{
			{"leave alternate screen", s.term.LeaveAltScreen},
			{"disable mouse capture", s.term.DisableMouseCapture},
			{"disable raw mode", s.term.DisableRawMode},
			{"show cursor", s.term.ShowCursor},
		}
		for _, step := range steps {
			if err := safeCall(step.fn); err != nil {
				s.logger.Warn("terminal release step failed", "session", s.id, "step", step.name, "error", err)
			}
		}
		s.logger.Debug("terminal released", "session", s.id)
	})
}

// safeCall runs fn, turning a panic into an error so the remaining release
// steps still run.
func safeCall(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %s", crash.Message(p))
		}
	}()
	return fn()
}
