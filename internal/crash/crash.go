// Package crash turns a panic in the session into an ordinary error that is
// reported after the terminal has been restored.
//
// Guard installs a process-wide hook for the duration of the call. Deferred
// cleanup inside the guarded function (the session's terminal release) runs
// while the panic unwinds, before Guard recovers, so the captured message only
// reaches the user once the terminal is usable again.
package crash

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// Placeholder is the message used for panic payloads that carry no text.
const Placeholder = "unrecognized panic payload"

// Hook observes a recovered panic.
type Hook func(payload any, stack []byte)

var (
	hookMu sync.Mutex
	hook   Hook
)

// SetHook installs h as the process-wide panic hook and returns the hook it
// replaced. A nil hook disables observation.
func SetHook(h Hook) (prev Hook) {
	hookMu.Lock()
	defer hookMu.Unlock()
	prev, hook = hook, h
	return prev
}

func currentHook() Hook {
	hookMu.Lock()
	defer hookMu.Unlock()
	return hook
}

// Message extracts readable text from a panic payload.
func Message(payload any) string {
	switch p := payload.(type) {
	case string:
		return p
	case error:
		return p.Error()
	default:
		return Placeholder
	}
}

// PanicError is returned by Guard when the guarded function panicked.
type PanicError struct {
	Message string
	Stack   []byte
}

func (e *PanicError) Error() string {
	return "panic: " + e.Message
}

// Reporter buffers messages captured by its hook.
type Reporter struct {
	mu     sync.Mutex
	msgs   []string
	stacks [][]byte
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Capture is the Reporter's hook. It is safe for concurrent use.
func (r *Reporter) Capture(payload any, stack []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message(payload))
	r.stacks = append(r.stacks, stack)
}

// Flush returns and clears everything captured so far. It returns nil when
// nothing was captured.
func (r *Reporter) Flush() *PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return nil
	}
	err := &PanicError{
		Message: strings.Join(r.msgs, "; "),
		Stack:   r.stacks[len(r.stacks)-1],
	}
	r.msgs, r.stacks = nil, nil
	return err
}

// Guard runs body with the Reporter's hook installed and the previous hook
// restored afterwards. A panic in body is recovered and returned as a
// *PanicError; otherwise body's own error is returned unchanged.
func (r *Reporter) Guard(body func() error) error {
	prev := SetHook(r.Capture)
	defer SetHook(prev)

	panicked, err := protect(body)
	if !panicked {
		return err
	}
	if perr := r.Flush(); perr != nil {
		return perr
	}
	// The hook was replaced while body ran.
	return &PanicError{Message: Placeholder}
}

func protect(body func() error) (panicked bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			panicked = true
			if h := currentHook(); h != nil {
				h(p, debug.Stack())
			}
		}
	}()
	return false, body()
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var perr *PanicError
	return errors.As(err, &perr)
}

// Describe formats err for the user, including the stack of a panic when
// verbose is set.
func Describe(err error, verbose bool) string {
	var perr *PanicError
	if verbose && errors.As(err, &perr) && len(perr.Stack) > 0 {
		return fmt.Sprintf("%v\n\n%s", err, perr.Stack)
	}
	return err.Error()
}
