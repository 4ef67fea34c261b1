package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/storage"
)

var flagRecent int

var progressCmd = &cobra.Command{
	Use:   "progress [pack]",
	Short: "Show cleared levels and best move counts",
	Long: `Display every cleared level of a pack with its best move count,
followed by the most recent completions.

Examples:
  vexed progress
  vexed progress classic --recent 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent completions to show")
}

func runProgress(cmd *cobra.Command, args []string) error {
	pack, err := packArg(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	progress, err := store.Progress(pack.ID())
	if err != nil {
		return err
	}

	fmt.Printf("Progress - %s\n\n", pack.Title())
	if len(progress) == 0 {
		fmt.Println("No levels cleared yet.")
		fmt.Println()
		fmt.Printf("Run 'vexed --pack %s play' to start!\n", pack.ID())
		return nil
	}

	fmt.Printf("  %-5s  %-5s  %-5s  %-9s  %s\n", "Level", "Best", "Plays", "Best time", "Last played")
	fmt.Printf("  %-5s  %-5s  %-5s  %-9s  %s\n", "-----", "----", "-----", "---------", "-----------")
	for _, p := range progress {
		fmt.Printf("  %-5d  %-5d  %-5d  %-9s  %s\n",
			p.Level, p.BestMoves, p.Completions, p.BestDuration.Round(time.Second), p.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Printf("Cleared %d of %d levels.\n", len(progress), pack.Count())

	if resume, err := store.ResumeLevel(pack.ID()); err == nil && resume > 0 {
		fmt.Printf("Continue from level %d.\n", resume)
	}

	recent, err := store.RecentCompletions(pack.ID(), flagRecent)
	if err != nil || len(recent) == 0 {
		return err
	}
	fmt.Println()
	fmt.Println("Recent:")
	for _, c := range recent {
		fmt.Printf("  %s  level %-3d %3d moves  %s\n",
			c.CreatedAt.Format("2006-01-02 15:04"), c.Level, c.Moves, c.Duration.Round(time.Second))
	}
	return nil
}
