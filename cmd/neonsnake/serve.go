package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/leaderboard"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagListenAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own session starting at the menu. All players share
the server's leaderboard and their SSH user name is the default entry name.
With --http the same leaderboard is also served over HTTP.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.neonsnake/host_key

Examples:
  neonsnake serve                          # Listen on :23234
  neonsnake serve --ssh :2222              # Listen on port 2222
  neonsnake serve --http :8080             # Also host the leaderboard API

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Also serve the leaderboard API on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	a := newApp(false)
	defer a.close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, a.env)
	if err != nil {
		a.close()
		fatal("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Either server failing stops the other.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- server.ListenAndServe(ctx) }()
	if flagHTTPAddr != "" {
		if a.env.Board == nil {
			a.env.Logger.Warn("no leaderboard to serve over HTTP")
		} else {
			lb := leaderboard.NewServer(a.env.Board, a.env.Logger)
			running++
			go func() { errCh <- lb.ListenAndServe(ctx, flagHTTPAddr) }()
		}
	}

	a.env.Logger.Info("Connect with: ssh localhost -p " + portOf(flagSSHAddr))
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
	}
	if firstErr != nil {
		a.close()
		fatal("server: %v", firstErr)
	}
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Host a shared leaderboard over HTTP",
	Long: `Serve the local leaderboard over HTTP so other players can submit to it
with --server.

Endpoints:
  GET  /api/scores?period=all-time|daily|weekly&limit=N
  POST /api/scores        {"name": "...", "score": N}
  GET  /api/scores/rank?period=...&score=N
  GET  /api/live          WebSocket feed of new entries
  GET  /healthz

Examples:
  neonsnake leaderboard --http :8080`,
	Run: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&flagListenAddr, "http", ":8080", "Listen address")
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	a := newApp(false)
	defer a.close()
	if a.env.Store == nil {
		a.close()
		fatal("the leaderboard server needs a database (see --db)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Serve the local board even when --server points elsewhere.
	board := leaderboard.NewLocal(a.env.Store, a.env.Logger)
	if err := leaderboard.NewServer(board, a.env.Logger).ListenAndServe(ctx, flagListenAddr); err != nil {
		a.close()
		fatal("%v", err)
	}
}

// portOf returns the port part of addr, e.g. "23234" for ":23234".
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
