package terminal

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileview/internal/input"
	"fileview/internal/pty"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []input.Event
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, []input.Event{input.Char('a')}},
		{"several runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []input.Event{input.Char('a'), input.Char('b')}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, []input.Event{input.Key{Code: input.KeyRune, Rune: 'x', Mods: input.ModAlt}}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.txt"), Paste: true}, []input.Event{input.Paste{Text: "a.txt"}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, []input.Event{input.Char(' ')}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []input.Event{input.Key{Code: input.KeyEnter}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []input.Event{input.Key{Code: input.KeyBackspace}}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []input.Event{input.Key{Code: input.KeyLeft}}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, []input.Event{input.Key{Code: input.KeyTab, Mods: input.ModShift}}},
		{"ctrl+n", tea.KeyMsg{Type: tea.KeyCtrlN}, []input.Event{input.Ctrl('n')}},
		{"ctrl+q", tea.KeyMsg{Type: tea.KeyCtrlQ}, []input.Event{input.Ctrl('q')}},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, []input.Event{input.Ctrl('a')}},
		{"ctrl+z", tea.KeyMsg{Type: tea.KeyCtrlZ}, []input.Event{input.Ctrl('z')}},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, []input.Event{input.Ctrl('h')}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKey(tt.msg))
		})
	}
}

func TestTranslateNames(t *testing.T) {
	// The translated key must print the way Bubble Tea names it, since key
	// bindings are matched by name.
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlN},
		{Type: tea.KeyEnter},
		{Type: tea.KeyLeft},
		{Type: tea.KeyRight},
		{Type: tea.KeyBackspace},
		{Type: tea.KeyTab},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		evs := translateKey(msg)
		require.Len(t, evs, 1)
		assert.Equal(t, msg.String(), evs[0].(input.Key).String())
	}
}

func TestTranslateOther(t *testing.T) {
	assert.Equal(t,
		[]input.Event{input.Resize{Width: 80, Height: 24}},
		translate(tea.WindowSizeMsg{Width: 80, Height: 24}))
	assert.Equal(t,
		[]input.Event{input.Mouse{X: 3, Y: 4, Button: input.MouseLeft}},
		translate(tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft}))
	assert.Nil(t, translate(frameMsg("x")))
}

func TestModelDropsWhenFull(t *testing.T) {
	events := make(chan input.Event, 1)
	m := &model{ready: make(chan struct{}), events: events, logger: discardLogger()}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})

	require.Len(t, events, 1)
	assert.Equal(t, input.Char('a'), <-events)

	m.Update(frameMsg("frame"))
	assert.Equal(t, "frame", m.View())
}

func TestNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	defer f.Close()

	tm := NewTea(f, io.Discard)
	assert.ErrorIs(t, tm.EnableRawMode(), ErrNotTerminal)

	_, _, err = tm.Poll(time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, tm.Draw("x"), ErrClosed)
	assert.NoError(t, tm.LeaveAltScreen())
	assert.NoError(t, tm.DisableMouseCapture())
	assert.NoError(t, tm.DisableRawMode())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestTeaAcquireReleaseOnPTY(t *testing.T) {
	p, err := pty.Open(pty.Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer p.Close()
	tty := p.TTY

	before, err := term.GetState(tty.Fd())
	require.NoError(t, err)

	tm := NewTea(tty, tty, WithLogger(discardLogger()))
	require.NoError(t, tm.EnableRawMode())
	require.NoError(t, tm.EnterAltScreen())
	require.NoError(t, tm.EnableMouseCapture())
	require.NoError(t, tm.Draw("hello"))

	require.NoError(t, p.Type([]byte{0x0e})) // ctrl+n

	var got input.Event
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok, err := tm.Poll(50 * time.Millisecond)
		require.NoError(t, err)
		if !ok {
			continue
		}
		if _, resize := ev.(input.Resize); resize {
			continue
		}
		got = ev
		break
	}
	assert.Equal(t, input.Ctrl('n'), got)

	assert.NoError(t, tm.LeaveAltScreen())
	assert.NoError(t, tm.DisableMouseCapture())
	assert.NoError(t, tm.DisableRawMode())
	assert.NoError(t, tm.ShowCursor())

	after, err := term.GetState(tty.Fd())
	require.NoError(t, err)
	assert.Equal(t, before, after, "terminal modes restored")

	assert.Eventually(t, func() bool {
		s := p.Output()
		return strings.Contains(s, "\x1b[?1049l") && strings.Contains(s, "\x1b[?25h")
	}, 5*time.Second, 20*time.Millisecond, "alternate screen left and cursor shown")

	// Released twice is fine.
	assert.NoError(t, tm.DisableRawMode())
	_, _, err = tm.Poll(time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTeaLeavesSignalsToCaller(t *testing.T) {
	p, err := pty.Open(pty.Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer p.Close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM)
	defer signal.Stop(sigs)

	tm := NewTea(p.TTY, p.TTY, WithLogger(discardLogger()))
	require.NoError(t, tm.EnableRawMode())
	defer tm.DisableRawMode()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	select {
	case <-sigs:
	case <-time.After(5 * time.Second):
		t.Fatal("SIGTERM not delivered")
	}

	// The program keeps running until the caller releases it.
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, _, err := tm.Poll(20 * time.Millisecond)
		require.NoError(t, err)
	}
	assert.NoError(t, tm.Draw("still here"))
}
