package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fileview/internal/app"
	"fileview/internal/config"
	"fileview/internal/crash"
	"fileview/internal/trace"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the parsed command line.
type options struct {
	configPath string
	logPath    string
	tick       time.Duration
	noMouse    bool
	verbose    bool
	version    bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fileview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "config file (default $FILEVIEW_CONFIG or the user config dir)")
	fs.StringVar(&opts.logPath, "log", "", "log file (overrides log.file)")
	fs.DurationVar(&opts.tick, "tick", 0, "input poll interval (overrides tick)")
	fs.BoolVar(&opts.noMouse, "no-mouse", false, "do not capture the mouse")
	fs.BoolVar(&opts.verbose, "verbose", false, "print the stack trace when the program crashes")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fileview [flags] FILE...\n\n")
		fmt.Fprintf(stderr, "Shows the named files in a two-panel terminal view. Ctrl+N adds a\n")
		fmt.Fprintf(stderr, "name, the arrow keys move focus and Ctrl+Q quits.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.tick < 0 {
		return options{}, fmt.Errorf("-tick must not be negative, got %v", opts.tick)
	}
	opts.files = fs.Args()
	return opts, nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}
	if opts.logPath != "" {
		cfg.Log.File = opts.logPath
	}
	if opts.tick > 0 {
		cfg.Tick = opts.tick
	}
	if opts.noMouse {
		cfg.Mouse = false
	}
	return cfg, nil
}

func run(ctx context.Context, opts options) error {
	if len(opts.files) == 0 {
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, logFile, err := app.OpenLog(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	tp, err := trace.Setup(ctx, cfg.Trace)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown failed", "error", err)
		}
	}()

	logger.Info("fileview starting", "version", version, "config", cfg.Log.File, "tracing", tp.Enabled())
	return app.Run(ctx, app.Options{
		Files:  opts.files,
		Config: cfg,
		Logger: logger,
		Tracer: tp.Tracer(),
	})
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(1)
	}
	if opts.version {
		fmt.Println("fileview", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if code := report(os.Stderr, run(ctx, opts), opts.verbose); code != 0 {
		stop()
		os.Exit(code)
	}
}

// report prints err for the user and returns the exit code. A run ended by
// a signal is a normal exit.
func report(w io.Writer, err error, verbose bool) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	fmt.Fprintf(w, "fileview: %s\n", crash.Describe(err, verbose))
	return 1
}
