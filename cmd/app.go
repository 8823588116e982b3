package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/auth"
	"github.com/longkey1/fincoach/internal/fincoach/config"
	"github.com/longkey1/fincoach/internal/localstate"
)

// app carries what a command needs once the configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *advisor.Client

	state   *localstate.Store
	closers []io.Closer
}

// loadApp loads the configuration and sets up logging. With exclusiveTerminal
// set, logs never go to stderr.
func loadApp(exclusiveTerminal bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	a := &app{cfg: cfg}
	a.logger, err = a.newLogger(exclusiveTerminal)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(a.logger)

	a.client = advisor.NewFromConfig(cfg, a.logger)
	return a, nil
}

func (a *app) newLogger(exclusiveTerminal bool) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", a.cfg.LogLevel, err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	logFile := a.cfg.LogFile
	if logFile == "" && exclusiveTerminal {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "fincoach.log")
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		w = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// stateStore opens the local state store on first use.
func (a *app) stateStore() (*localstate.Store, error) {
	if a.state != nil {
		return a.state, nil
	}
	s, err := localstate.Open(a.cfg.StatePath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("local state opened", "path", s.Path())
	a.state = s
	a.closers = append(a.closers, s)
	return s, nil
}

// guard opens the auth guard, loading the persisted session once.
func (a *app) guard(ctx context.Context) (*auth.Guard, error) {
	s, err := a.stateStore()
	if err != nil {
		return nil, err
	}
	return auth.Open(ctx, s)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// readInput joins args, or reads stdin when there are none.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	return strings.TrimSpace(string(input)), nil
}
