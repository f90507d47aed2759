package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game right away.

Controls:
  WASD/Arrows  - Steer
  Space/P      - Pause
  Enter/R      - Start / restart
  Esc          - Back to menu (when not running)
  Ctrl+S       - Save a PNG screenshot to ~/.neonsnake/screenshots
  Q/Ctrl+C     - Quit

Examples:
  neonsnake play
  neonsnake play --config ./snake.yaml
  neonsnake play --server http://localhost:8080`,
	Run: func(_ *cobra.Command, _ []string) { runSession(tui.StartGame) },
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the main menu",
	Long: `Start with the main menu: play, high scores and settings.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Left/Right   - Change a setting
  Esc/B        - Back
  Q            - Quit`,
	Run: func(_ *cobra.Command, _ []string) { runSession(tui.StartMenu) },
}

func runSession(start tui.Start) {
	a := newApp(true)
	defer a.close()
	a.withAudio()

	if err := tui.Run(a.env, a.names(), start); err != nil {
		a.close()
		fatal("running game: %v", err)
	}
}
