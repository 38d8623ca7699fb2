package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"i4.energy/across/hfpag/gateway"
	"i4.energy/across/hfpag/slc"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "hfpag",
		Short: "Hands-free audio gateway over RFCOMM",
		Long: `hfpag plays the audio gateway role of the Hands-Free Profile towards
one or more hands-free units reachable through bound RFCOMM serial ports.

Gateway events such as incoming calls are submitted over HTTP.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(WithDefaults(), WithFile(configPath), WithEnv(), WithFlags(cmd.Flags()))
			if err != nil {
				return err
			}
			return run(cmd.Context(), config)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringSlice("serial-port", []string{"/dev/rfcomm0"}, "RFCOMM serial port of a hands-free unit (repeatable)")
	f.Int("baud-rate", 115200, "Baud rate for serial communication")
	f.String("bind-address", "127.0.0.1:8080", "Bind address for the HTTP server")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.StringSlice("features", nil, "Gateway features to advertise (default all)")
	f.String("operator-name", "", "Network operator name reported to the hands-free unit")
	f.String("subscriber-number", "", "Subscriber number reported to the hands-free unit")
	return cmd
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func run(ctx context.Context, config *Config) error {
	logger := newLogger(config.LogLevel)

	features := slc.DefaultAgFeatures
	if len(config.Features) > 0 {
		var err error
		if features, err = slc.ParseAgFeatures(config.Features); err != nil {
			logger.Error("Invalid feature list", "error", err)
			return err
		}
	}
	if len(config.SerialPorts) == 0 {
		return errors.New("at least one serial port is required")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := NewMemoryBackend(logger.With("component", "backend"), config.OperatorName, config.SubscriberNumber)
	registry := NewRegistry()

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:      logger.With("component", "server"),
			Backend:     backend,
			Connections: registry,
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Closing HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	for _, port := range config.SerialPorts {
		p := &portRunner{
			port:     port,
			registry: registry,
			logger:   logger.With("port", port),
			redial:   config.RedialInterval,
			builder: gateway.NewConfigBuilder().
				WithDialer(gateway.SerialDialer{PortName: port, BaudRate: config.BaudRate}).
				WithBackend(backend).
				WithFeatures(features).
				WithBackendTimeout(config.BackendTimeout).
				WithMaxConsecutiveErrors(config.MaxConsecutiveErrors).
				WithLogger(logger),
		}
		g.Go(func() error { return p.run(ctx) })
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Gateway stopped", "error", err)
		return err
	}
	logger.Info("Gateway stopped")
	return nil
}

// portRunner keeps one hands-free unit connected, dialing its port again
// whenever the peer goes away.
type portRunner struct {
	port     string
	registry *Registry
	logger   *slog.Logger
	redial   time.Duration
	builder  *gateway.ConfigBuilder
}

func (p *portRunner) run(ctx context.Context) error {
	config, err := p.builder.Build()
	if err != nil {
		return fmt.Errorf("gateway config for %s: %w", p.port, err)
	}

	for {
		if err := p.serve(ctx, config); err != nil {
			p.logger.Warn("Connection ended", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.redial):
		}
	}
}

func (p *portRunner) serve(ctx context.Context, config gateway.Config) error {
	conn, err := gateway.New(ctx, config)
	if err != nil {
		return err
	}
	defer conn.Close()

	p.registry.Set(p.port, conn)
	defer p.registry.Remove(p.port, conn)

	p.logger.Info("Serving hands-free unit", "conn", conn.ID())
	err = conn.Loop(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
