package crash

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct{ code int }

func TestMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"string", "index out of range", "index out of range"},
		{"formatted string", fmt.Sprintf("bad region %q", "x"), `bad region "x"`},
		{"error", errors.New("registry: no value"), "registry: no value"},
		{"struct", payload{code: 3}, Placeholder},
		{"int", 42, Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.payload); got != tt.want {
				t.Errorf("Message(%v) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}

func TestGuardPassesThroughResult(t *testing.T) {
	r := NewReporter()

	assert.NoError(t, r.Guard(func() error { return nil }))

	sentinel := errors.New("raw mode unavailable")
	err := r.Guard(func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, IsPanic(err))
}

func TestGuardRecoversPanic(t *testing.T) {
	r := NewReporter()

	err := r.Guard(func() error { panic("render exploded") })

	require.Error(t, err)
	assert.True(t, IsPanic(err))
	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "render exploded", perr.Message)
	assert.NotEmpty(t, perr.Stack)
	assert.Equal(t, "panic: render exploded", err.Error())

	assert.Nil(t, r.Flush(), "Guard drains the buffer")
}

func TestGuardRunsDeferredCleanupFirst(t *testing.T) {
	r := NewReporter()
	var order []string

	err := r.Guard(func() error {
		defer func() { order = append(order, "cleanup") }()
		panic(errors.New("boom"))
	})
	order = append(order, "reported")

	assert.Equal(t, []string{"cleanup", "reported"}, order)
	assert.EqualError(t, err, "panic: boom")
}

func TestGuardRestoresPreviousHook(t *testing.T) {
	var seen []string
	outer := func(p any, _ []byte) { seen = append(seen, Message(p)) }
	prev := SetHook(outer)
	t.Cleanup(func() { SetHook(prev) })

	r := NewReporter()
	err := r.Guard(func() error { panic("inner") })
	require.Error(t, err)
	assert.Empty(t, seen, "the reporter's hook replaces the outer one while guarded")

	// The outer hook is back in place afterwards.
	_ = r.Guard(func() error {
		SetHook(outer)
		panic("observed")
	})
	assert.Equal(t, []string{"observed"}, seen)
	assert.NotNil(t, currentHook())

	r2 := NewReporter()
	_ = r2.Guard(func() error { return nil })
	h := currentHook()
	require.NotNil(t, h)
	h("after", nil)
	assert.Equal(t, []string{"observed", "after"}, seen)
}

func TestGuardHookReplacedDuringBody(t *testing.T) {
	prev := SetHook(nil)
	t.Cleanup(func() { SetHook(prev) })

	r := NewReporter()
	err := r.Guard(func() error {
		SetHook(nil)
		panic("lost")
	})

	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, Placeholder, perr.Message)
}

func TestReporterConcurrentCapture(t *testing.T) {
	r := NewReporter()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Capture(fmt.Sprintf("m%d", i), nil)
		}()
	}
	wg.Wait()

	perr := r.Flush()
	require.NotNil(t, perr)
	assert.Len(t, perr.Message, len("m0; ")*10+len("m10; ")*10-2)
}

func TestDescribe(t *testing.T) {
	perr := &PanicError{Message: "x", Stack: []byte("goroutine 1")}
	assert.Equal(t, "panic: x", Describe(perr, false))
	assert.Equal(t, "panic: x\n\ngoroutine 1", Describe(perr, true))
	assert.Equal(t, "plain", Describe(errors.New("plain"), true))
}
