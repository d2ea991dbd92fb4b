package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/platform/tui"
	"github.com/vovakirdan/playroom/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the playroom over SSH and HTTP",
	Long: `Start an SSH server that lets users connect and play, and optionally an
HTTP server with health, best scores and Prometheus metrics.

Each SSH connection gets its own session with the game picker menu.
Sessions are independent runs; all of them share the best scores.
Use --redis to keep best scores in Redis when several servers share them.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.playroom/host_key

HTTP endpoints:
  GET /health
  GET /api/games
  GET /api/scores/{game}
  GET /metrics

Examples:
  playroom serve                           # SSH on :23234
  playroom serve --ssh :2222 --http :8080  # SSH and HTTP
  playroom serve --ssh "" --http :8080     # HTTP only
  playroom serve --redis localhost:6379

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fail("nothing to serve: set --ssh or --http")
	}

	rt, err := openRuntime()
	if err != nil {
		fail("%v", err)
	}
	defer rt.Close()

	if err := rt.configureGames("", ""); err != nil {
		rt.Close()
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS

		sshServer, err := tui.NewSSHServer(cfg, rt.services())
		if err != nil {
			rt.Close()
			fail("creating SSH server: %v", err)
		}
		servers = append(servers, sshServer.ListenAndServe)
	}

	if flagHTTPAddr != "" {
		var history web.History
		if rt.history != nil {
			history = rt.history
		}
		httpServer := web.New(rt.scores, history, rt.logger)
		servers = append(servers, func(ctx context.Context) error {
			return httpServer.Start(ctx, flagHTTPAddr)
		})
	}

	// The first server to fail stops the others.
	errc := make(chan error, len(servers))
	for _, serve := range servers {
		go func() {
			errc <- serve(ctx)
		}()
	}

	var firstErr error
	for range servers {
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}

	if firstErr != nil {
		rt.Close()
		fail("server error: %v", firstErr)
	}
	rt.logger.Info("stopped")
}
