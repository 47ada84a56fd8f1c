// Package app wires configuration, state, input, rendering and the terminal
// session together for one invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"fileview/internal/config"
	"fileview/internal/crash"
	"fileview/internal/input"
	"fileview/internal/registry"
	"fileview/internal/session"
	"fileview/internal/state"
	"fileview/internal/terminal"
	"fileview/internal/ui"
)

// Options configures Run. Zero fields get production defaults.
type Options struct {
	Files  []string
	Config config.Config

	Terminal  session.Terminal // default: Bubble Tea on stdin/stdout
	Renderer  session.Renderer // default: ui.Renderer
	Clipboard input.Clipboard  // default: system clipboard
	Logger    *slog.Logger
	Tracer    oteltrace.Tracer
}

// Run shows the files until the user quits. With no files it returns
// immediately without touching the terminal. A panic anywhere in the session
// is returned as a *crash.PanicError after the terminal has been restored.
func Run(ctx context.Context, opts Options) error {
	if len(opts.Files) == 0 {
		return nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	reg, err := NewRegistry(opts.Config, opts.Files, logger)
	if err != nil {
		return err
	}
	keys := KeyMap(opts.Config)

	dispatcher := input.NewDispatcher(keys)
	dispatcher.Logger = logger
	dispatcher.Clipboard = opts.Clipboard
	if dispatcher.Clipboard == nil {
		dispatcher.Clipboard = input.SystemClipboard
	}

	term := opts.Terminal
	if term == nil {
		term = terminal.NewTea(os.Stdin, os.Stdout, terminal.WithLogger(logger))
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = ui.NewRenderer(keys)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	logger.Info("session starting", "files", len(opts.Files))
	err = crash.NewReporter().Guard(func() error {
		s, err := session.New(term,
			session.WithTick(opts.Config.Tick),
			session.WithMouse(opts.Config.Mouse),
			session.WithDispatcher(dispatcher),
			session.WithRenderer(renderer),
			session.WithLogger(logger),
			session.WithTracer(tracer),
			session.WithID(id),
		)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Run(ctx, reg)
	})

	var perr *crash.PanicError
	switch {
	case errors.As(err, &perr):
		logger.Error("session panicked", "panic", perr.Message, "stack", string(perr.Stack))
	case err != nil:
		logger.Error("session failed", "error", err)
	default:
		logger.Info("session ended", "files", registry.Get[state.FileBuff](reg).Len())
	}
	return err
}

// NewRegistry builds the initial application state: focus on the first
// navigation region, an inactive entry box, the command-line files and an
// unknown terminal size.
func NewRegistry(cfg config.Config, files []string, logger *slog.Logger) (*registry.Registry, error) {
	ptr, err := state.NewPointer(regions(cfg.Focus.Navigation), regions(cfg.Focus.Entry))
	if err != nil {
		return nil, fmt.Errorf("focus regions: %w", err)
	}
	ptr.OnChange = func(from, to state.Region) {
		logger.Debug("focus moved", "from", string(from), "to", string(to))
	}

	reg := registry.New()
	registry.Insert(reg, ptr)
	registry.Insert(reg, state.EntryBox{})
	registry.Insert(reg, state.NewFileBuff(files...))
	registry.Insert(reg, state.Args(append([]string(nil), files...)))
	registry.Insert(reg, state.Size{})
	return reg, nil
}

func regions(names []string) []state.Region {
	out := make([]state.Region, len(names))
	for i, n := range names {
		out[i] = state.Region(n)
	}
	return out
}

// KeyMap builds the bindings from cfg. Jumps are listed in navigation order
// so the help footer is stable.
func KeyMap(cfg config.Config) input.KeyMap {
	k := cfg.Keys
	km := input.KeyMap{
		Quit:      input.NewBinding(k.Quit, "quit"),
		Entry:     input.NewBinding(k.Entry, "open"),
		Commit:    input.NewBinding(k.Commit, "add"),
		Backspace: input.NewBinding(k.Backspace, "delete"),
		Paste:     input.NewBinding(k.Paste, "paste"),
	}
	for _, name := range cfg.Focus.Navigation {
		keys := k.Jumps[name]
		if len(keys) == 0 {
			continue
		}
		km.Jumps = append(km.Jumps, input.Jump{
			Binding: input.NewBinding(keys, name),
			Region:  state.Region(name),
		})
	}
	return km
}
