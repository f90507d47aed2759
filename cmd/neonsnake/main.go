// neonsnake is a snake game for the terminal with timed twists, a shared
// leaderboard and play over SSH.
//
// Usage:
//
//	neonsnake play          - Play a game right away
//	neonsnake menu          - Start at the main menu
//	neonsnake scores        - Show the leaderboard
//	neonsnake serve         - Start the SSH server for remote play
//	neonsnake leaderboard   - Host a shared leaderboard over HTTP
//
// Global flags:
//
//	--config <path>   - Game config YAML (reloaded on change)
//	--db <path>       - Database path (default: ~/.neonsnake/scores.db)
//	--server <url>    - Remote leaderboard, e.g. http://host:8080
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagServer   string
	flagLogLevel string
	flagFPS      int
	flagSeed     int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonsnake",
	Short: "Neon Snake - snake with twists in your terminal",
	Long: `Neon Snake is a terminal snake game. Eating food may schedule a twist:
obstacles, a speed boost, blurred vision, portals or a shrinking arena.
Each twist is announced a second before it lands.

Available commands:
  play         - Start a game directly
  menu         - Main menu with settings and high scores
  scores       - View the leaderboard
  serve        - Start SSH server for remote play
  leaderboard  - Host a shared leaderboard over HTTP

Examples:
  neonsnake play
  neonsnake menu --config ./snake.yaml
  neonsnake play --server http://scores.example.com:8080
  neonsnake serve --ssh :2222 --http :8080
  neonsnake scores --period daily --plain`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonsnake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Remote leaderboard URL (local board if empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Display frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
