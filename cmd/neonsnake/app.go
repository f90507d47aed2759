package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-snake/internal/audio"
	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/leaderboard"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

const appDir = ".neonsnake"

// app is everything a command shares: the session environment plus what has
// to be released when the command ends.
type app struct {
	env     *tui.Env
	logFile *os.File
	cancel  context.CancelFunc
	once    sync.Once
}

// homePath joins name under ~/.neonsnake, or under the working directory
// when the home directory is unknown.
func homePath(name ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(append([]string{appDir}, name...)...)
	}
	return filepath.Join(append([]string{home, appDir}, name...)...)
}

// newLogger writes to ~/.neonsnake/neonsnake.log for interactive commands so
// the alt screen stays clean, and to stderr for servers.
func newLogger(interactive bool) (*log.Logger, *os.File) {
	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if interactive {
		path := homePath("neonsnake.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w, file = f, f
			}
		}
		if file == nil {
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "neonsnake",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger, file
}

// newApp opens the database, picks the board, loads the config and starts
// watching it. Missing subsystems degrade with a warning.
func newApp(interactive bool) *app {
	logger, logFile := newLogger(interactive)
	ctx, cancel := context.WithCancel(context.Background())

	a := &app{logFile: logFile, cancel: cancel}
	env := &tui.Env{
		Logger:        logger,
		ScreenshotDir: homePath("screenshots"),
		Runtime:       runtimeConfig(),
	}
	a.env = env

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores database unavailable, playing without it", "path", flagDBPath, "err", err)
	} else {
		env.Store = store
		env.Board = leaderboard.NewLocal(store, logger)
	}
	env.Board = remoteBoard(ctx, env.Board, logger)

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		logger.Warn("cannot load config, using defaults", "err", err)
	}
	env.SetConfig(cfg)
	if path := config.ResolvePath(flagConfig); path != "" {
		go func() {
			err := config.Watch(ctx, path, func(c config.SnakeConfig) {
				logger.Info("config file changed", "path", path)
				env.SetConfig(c)
			}, func(err error) {
				logger.Warn("config reload failed, keeping previous", "err", err)
			})
			if err != nil {
				logger.Warn("config watch stopped", "err", err)
			}
		}()
	}
	return a
}

// remoteBoard wraps local in a client for --server and keeps its live feed
// running. Without --server local is returned as is.
func remoteBoard(ctx context.Context, local leaderboard.Board, logger *log.Logger) leaderboard.Board {
	if flagServer == "" {
		return local
	}
	client, err := leaderboard.NewClient(flagServer, local, logger)
	if err != nil {
		logger.Warn("ignoring remote leaderboard", "err", err)
		return local
	}
	go func() {
		if err := client.Listen(ctx); err != nil {
			logger.Warn("live leaderboard feed stopped", "err", err)
		}
	}()
	return client
}

// withAudio attaches the speaker, enabled per the saved settings.
func (a *app) withAudio() {
	a.env.Audio = audio.NewSpeaker(a.env.Settings().Sound, a.env.Logger)
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS // 0 defers to loop.fps in the config
	cfg.Seed = flagSeed
	return cfg
}

// close releases everything. It is safe to call more than once.
func (a *app) close() {
	a.once.Do(func() {
		a.cancel()
		if a.env.Store != nil {
			a.env.Store.Close()
		}
		if a.logFile != nil {
			a.logFile.Close()
		}
	})
}

// names is where the player's name is remembered, nil without a database.
func (a *app) names() leaderboard.NameStore {
	if a.env.Store == nil {
		return nil
	}
	return a.env.Store
}
