package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/leaderboard"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

var (
	flagPeriod string
	flagPlain  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Browse the leaderboard. Tab switches between all-time, daily and weekly.

With --plain the chosen period is printed instead.

Examples:
  neonsnake scores
  neonsnake scores --plain --period weekly
  neonsnake scores --server http://localhost:8080`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagPeriod, "period", "all-time", "Period for --plain: all-time, daily, weekly")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores instead of opening the browser")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", leaderboard.TopSize, "Number of entries for --plain")
}

func runScores(_ *cobra.Command, _ []string) {
	if !flagPlain {
		runSession(tui.StartScores)
		return
	}

	period, err := storage.ParsePeriod(flagPeriod)
	if err != nil {
		fatal("%v", err)
	}

	a := newApp(true)
	defer a.close()
	if a.env.Board == nil {
		a.close()
		fatal("no leaderboard: database unavailable and no --server given")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	scores, err := a.env.Board.Top(ctx, period, flagLimit)
	if err != nil {
		a.close()
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", period)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neonsnake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-8d  %s\n", i+1, entry.Name, entry.Score, dateStr)
	}
}
