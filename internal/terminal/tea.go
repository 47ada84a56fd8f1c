// Package terminal drives a real terminal through Bubble Tea. The program owns
// raw mode, the alternate screen and mouse reporting; Tea exposes them as the
// individual acquire and release steps the session needs.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"

	"fileview/internal/input"
)

var (
	// ErrClosed is returned when the terminal is used after raw mode was
	// released or the program stopped on its own.
	ErrClosed = errors.New("terminal closed")
	// ErrNotTerminal is returned by EnableRawMode when the input is not a tty.
	ErrNotTerminal = errors.New("not a terminal")
)

const (
	eventBuffer     = 256
	shutdownTimeout = 2 * time.Second
)

// frameMsg carries a rendered frame into the program.
type frameMsg string

type model struct {
	ready  chan struct{}
	events chan<- input.Event
	frame  string
	logger *slog.Logger
}

func (m *model) Init() tea.Cmd {
	close(m.ready)
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f, ok := msg.(frameMsg); ok {
		m.frame = string(f)
		return m, nil
	}
	for _, ev := range translate(msg) {
		select {
		case m.events <- ev:
		default:
			m.logger.Warn("input event dropped, queue full", "event", fmt.Sprintf("%T", ev))
		}
	}
	return m, nil
}

func (m *model) View() string {
	return m.frame
}

// Tea is a terminal backed by a Bubble Tea program.
type Tea struct {
	in     *os.File
	out    io.Writer
	logger *slog.Logger

	mu  sync.Mutex
	cur *run
}

// run is one program lifetime, from EnableRawMode to DisableRawMode.
type run struct {
	prog   *tea.Program
	events chan input.Event
	done   chan struct{}
	err    error // set before done is closed
}

func (r *run) running() bool {
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Option configures a Tea.
type Option func(*Tea)

// WithLogger sets the logger for dropped events and shutdown problems.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tea) { t.logger = l }
}

// NewTea returns a terminal reading keys from in and drawing to out.
func NewTea(in *os.File, out io.Writer, opts ...Option) *Tea {
	t := &Tea{in: in, out: out, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// EnableRawMode starts the program and waits until the terminal is in raw
// mode. Calling it again while running is a no-op.
func (t *Tea) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur != nil && t.cur.running() {
		return nil
	}
	if !term.IsTerminal(t.in.Fd()) {
		return fmt.Errorf("%w: %s", ErrNotTerminal, t.in.Name())
	}

	r := &run{
		events: make(chan input.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	m := &model{ready: make(chan struct{}), events: r.events, logger: t.logger}
	r.prog = tea.NewProgram(m, programOptions(t.in, t.out)...)

	go func() {
		_, r.err = r.prog.Run()
		close(r.done)
	}()

	select {
	case <-m.ready:
	case <-r.done:
		if r.err == nil {
			return fmt.Errorf("start program: %w", ErrClosed)
		}
		return fmt.Errorf("start program: %w", r.err)
	}

	t.cur = r
	return nil
}

// programOptions leaves SIGINT and SIGTERM to the caller's context. A
// program handling them itself stops before the session sees the
// cancellation and reports a closed terminal instead.
func programOptions(in *os.File, out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	}
}

// DisableRawMode stops the program, which restores the terminal modes it
// changed. It is a no-op when the program is not running.
func (t *Tea) DisableRawMode() error {
	t.mu.Lock()
	r := t.cur
	t.cur = nil
	t.mu.Unlock()
	if r == nil {
		return nil
	}

	if r.running() {
		r.prog.Quit()
		select {
		case <-r.done:
		case <-time.After(shutdownTimeout):
			t.logger.Warn("program did not stop, killing it", "timeout", shutdownTimeout)
			r.prog.Kill()
			<-r.done
		}
	}

	if r.err != nil && !errors.Is(r.err, tea.ErrProgramKilled) {
		return fmt.Errorf("stop program: %w", r.err)
	}
	return nil
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *Tea) EnterAltScreen() error {
	return t.acquire(tea.EnterAltScreen())
}

// LeaveAltScreen returns to the main screen buffer.
func (t *Tea) LeaveAltScreen() error {
	return t.release(tea.ExitAltScreen())
}

// EnableMouseCapture turns on mouse reporting for clicks and drags.
func (t *Tea) EnableMouseCapture() error {
	return t.acquire(tea.EnableMouseCellMotion())
}

// DisableMouseCapture turns mouse reporting off.
func (t *Tea) DisableMouseCapture() error {
	return t.release(tea.DisableMouse())
}

// ShowCursor makes the cursor visible. It writes directly to the output, so
// it also works after the program has stopped.
func (t *Tea) ShowCursor() error {
	if _, err := io.WriteString(t.out, ansi.ShowCursor); err != nil {
		return fmt.Errorf("show cursor: %w", err)
	}
	return nil
}

// Poll waits up to timeout for the next input event. It reports false when
// nothing arrived.
func (t *Tea) Poll(timeout time.Duration) (input.Event, bool, error) {
	t.mu.Lock()
	r := t.cur
	t.mu.Unlock()
	if r == nil {
		return nil, false, ErrClosed
	}

	select {
	case ev := <-r.events:
		return ev, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-r.events:
		return ev, true, nil
	case <-r.done:
		return nil, false, ErrClosed
	case <-timer.C:
		return nil, false, nil
	}
}

// Draw replaces the frame shown on screen.
func (t *Tea) Draw(frame string) error {
	return t.acquire(frameMsg(frame))
}

func (t *Tea) acquire(msg tea.Msg) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur == nil || !t.cur.running() {
		return ErrClosed
	}
	t.cur.prog.Send(msg)
	return nil
}

// release sends msg if the program is still running. A stopped program has
// already restored the terminal, so there is nothing left to undo.
func (t *Tea) release(msg tea.Msg) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur != nil && t.cur.running() {
		t.cur.prog.Send(msg)
	}
	return nil
}
