// Package pty opens pseudo-terminal pairs so the terminal backend can be
// driven without a real tty.
package pty

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Pair is an open pseudo-terminal. The program under test uses TTY; the
// master side plays the user's terminal emulator.
type Pair struct {
	TTY    *os.File
	master *os.File

	mu  sync.Mutex
	out bytes.Buffer
}

// Open allocates a pseudo-terminal of the given size and starts collecting
// everything written to its TTY side.
func Open(size Size) (*Pair, error) {
	master, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	p := &Pair{TTY: tty, master: master}
	if err := p.Resize(size); err != nil {
		_ = p.Close()
		return nil, err
	}
	go p.drain()
	return p, nil
}

func (p *Pair) drain() {
	buf := make([]byte, 4096)
	for {
		n, err := p.master.Read(buf)
		if n > 0 {
			p.mu.Lock()
			p.out.Write(buf[:n])
			p.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Type sends b as if it were typed at the terminal.
func (p *Pair) Type(b []byte) error {
	if _, err := p.master.Write(b); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	return nil
}

// Resize sets the terminal dimensions.
func (p *Pair) Resize(size Size) error {
	if err := pty.Setsize(p.master, &pty.Winsize{Rows: size.Rows, Cols: size.Cols}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Output returns everything written to the TTY so far.
func (p *Pair) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

// Close closes both ends.
func (p *Pair) Close() error {
	return errors.Join(p.TTY.Close(), p.master.Close())
}
