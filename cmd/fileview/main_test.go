package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileview/internal/crash"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "files only",
			args: []string{"a.txt", "b.txt"},
			want: options{files: []string{"a.txt", "b.txt"}},
		},
		{
			name: "all flags",
			args: []string{"-config", "c.toml", "-log", "x.log", "-tick", "20ms", "-no-mouse", "-verbose", "a.txt"},
			want: options{configPath: "c.toml", logPath: "x.log", tick: 20 * time.Millisecond, noMouse: true, verbose: true, files: []string{"a.txt"}},
		},
		{
			name: "version",
			args: []string{"-version"},
			want: options{version: true, files: []string{}},
		},
		{name: "negative tick", args: []string{"-tick", "-1s"}, wantErr: true},
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got, err := parseFlags(tt.args, &stderr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "Usage: fileview [flags] FILE...")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FILEVIEW_CONFIG", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("tick = \"40ms\"\nmouse = true\n"), 0o644))

	cfg, err := loadConfig(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, cfg.Tick)
	assert.True(t, cfg.Mouse)

	cfg, err = loadConfig(options{configPath: path, tick: 10 * time.Millisecond, noMouse: true, logPath: "/tmp/x.log"})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.Tick)
	assert.False(t, cfg.Mouse)
	assert.Equal(t, "/tmp/x.log", cfg.Log.File)
}

func TestRunWithoutFiles(t *testing.T) {
	// Neither the config nor the terminal is touched.
	t.Setenv("FILEVIEW_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	assert.NoError(t, run(context.Background(), options{}))
}

func TestRunBadConfig(t *testing.T) {
	err := run(context.Background(), options{
		configPath: filepath.Join(t.TempDir(), "missing.toml"),
		files:      []string{"a.txt"},
	})
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "env.toml")
	require.NoError(t, os.WriteFile(path, []byte("tick = \"25ms\"\n"), 0o644))
	t.Setenv("FILEVIEW_CONFIG", path)

	cfg, err := loadConfig(options{})
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, cfg.Tick)
}

func TestReport(t *testing.T) {
	perr := &crash.PanicError{Message: "boom", Stack: []byte("goroutine 7")}
	tests := []struct {
		name     string
		err      error
		verbose  bool
		wantCode int
		wantOut  string
	}{
		{name: "success", err: nil, wantCode: 0},
		{name: "cancelled by signal", err: fmt.Errorf("run: %w", context.Canceled), wantCode: 0},
		{name: "failure", err: errors.New("poll: broken"), wantCode: 1, wantOut: "fileview: poll: broken\n"},
		{name: "panic", err: perr, wantCode: 1, wantOut: "fileview: panic: boom\n"},
		{name: "panic verbose", err: perr, verbose: true, wantCode: 1, wantOut: "fileview: panic: boom\n\ngoroutine 7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.wantCode, report(&out, tt.err, tt.verbose))
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}
