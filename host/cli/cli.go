// Package cli holds the flags and setup shared by the host commands.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"axisrig/config"
	"axisrig/core"
)

// Globals are the flags every host command accepts
type Globals struct {
	Config   string `help:"YAML or JSON rig config file." short:"c" type:"existingfile"`
	LogLevel string `help:"Log level: debug, info, warn or error. Overrides the config file." enum:"debug,info,warn,error," default:""`
	LogFile  string `help:"Write logs to this file instead of stderr." type:"path"`
}

// LoadConfig returns the board defaults, or the config file when one was
// given.
func (g *Globals) LoadConfig() (config.Config, error) {
	if g.Config == "" {
		return config.Default(), nil
	}
	return config.Load(g.Config)
}

// Logger builds the slog logger for cfg. quiet discards output unless a
// log file was given, for commands that own the terminal.
func (g *Globals) Logger(cfg config.HostConfig, quiet bool) (*slog.Logger, io.Closer, error) {
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case g.LogFile != "":
		f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	case quiet:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return logger, closer, nil
}

// RouteFirmwareDebug sends core debug output to logger at debug level
func RouteFirmwareDebug(logger *slog.Logger) {
	fw := logger.With("component", "firmware")
	core.SetDebugWriter(func(s string) {
		fw.Debug(strings.TrimSpace(s))
	})
	core.SetDebugEnabled(logger.Enabled(context.Background(), slog.LevelDebug))
}

// Serve runs srv until ctx is done, then shuts it down
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// IgnoreCanceled maps context cancellation to a clean exit
func IgnoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
