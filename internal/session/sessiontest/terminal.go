// Package sessiontest provides a scripted in-memory terminal.
package sessiontest

import (
	"errors"
	"sync"
	"time"

	"fileview/internal/input"
)

// ErrScriptDone is returned by Poll once every scripted step was consumed.
var ErrScriptDone = errors.New("script exhausted")

// Terminal replays scripted events and records every call it receives.
// A nil event in Script is an idle poll. Fail and Panic make the named
// method return an error or panic.
type Terminal struct {
	Script []input.Event
	Fail   map[string]error
	Panic  map[string]any

	mu      sync.Mutex
	calls   []string
	frames  []string
	raw     bool
	alt     bool
	mouse   bool
	hidden  bool
	pos     int
	timeout time.Duration
}

// New returns a Terminal that replays script.
func New(script ...input.Event) *Terminal {
	return &Terminal{Script: script}
}

func (t *Terminal) record(name string) error {
	t.mu.Lock()
	t.calls = append(t.calls, name)
	p, panics := t.Panic[name]
	err := t.Fail[name]
	t.mu.Unlock()
	if panics {
		panic(p)
	}
	return err
}

func (t *Terminal) set(name string, field *bool, v bool) error {
	if err := t.record(name); err != nil {
		return err
	}
	t.mu.Lock()
	*field = v
	t.mu.Unlock()
	return nil
}

func (t *Terminal) EnableRawMode() error {
	if err := t.set("EnableRawMode", &t.raw, true); err != nil {
		return err
	}
	t.mu.Lock()
	t.hidden = true
	t.mu.Unlock()
	return nil
}

func (t *Terminal) DisableRawMode() error { return t.set("DisableRawMode", &t.raw, false) }
func (t *Terminal) EnterAltScreen() error { return t.set("EnterAltScreen", &t.alt, true) }
func (t *Terminal) LeaveAltScreen() error { return t.set("LeaveAltScreen", &t.alt, false) }
func (t *Terminal) EnableMouseCapture() error { return t.set("EnableMouseCapture", &t.mouse, true) }
func (t *Terminal) DisableMouseCapture() error { return t.set("DisableMouseCapture", &t.mouse, false) }
func (t *Terminal) ShowCursor() error { return t.set("ShowCursor", &t.hidden, false) }

// Poll returns the next scripted step without waiting.
func (t *Terminal) Poll(timeout time.Duration) (input.Event, bool, error) {
	if err := t.record("Poll"); err != nil {
		return nil, false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	if t.pos >= len(t.Script) {
		return nil, false, ErrScriptDone
	}
	ev := t.Script[t.pos]
	t.pos++
	return ev, ev != nil, nil
}

func (t *Terminal) Draw(frame string) error {
	if err := t.record("Draw"); err != nil {
		return err
	}
	t.mu.Lock()
	t.frames = append(t.frames, frame)
	t.mu.Unlock()
	return nil
}

// Calls returns the method names received so far, Poll and Draw excluded.
func (t *Terminal) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for _, c := range t.calls {
		if c != "Poll" && c != "Draw" {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times the named method was called.
func (t *Terminal) Count(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Frames returns every frame drawn so far.
func (t *Terminal) Frames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.frames...)
}

// LastTimeout is the timeout passed to the most recent Poll.
func (t *Terminal) LastTimeout() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeout
}

// Restored reports whether every mode the session may have changed is back
// to its initial state.
func (t *Terminal) Restored() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.raw && !t.alt && !t.mouse && !t.hidden
}
