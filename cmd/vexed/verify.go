package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
)

var (
	flagWorkers int
	flagQuiet   bool
	flagNoSolve bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [pack]",
	Short: "Check that every level of a pack is valid and solvable",
	Long: `Run strict validation on every level (exact board size, digits only,
no lone colors, already settled) and search for a shortest solution.

Exits with an error if any level fails.

Examples:
  vexed verify
  vexed verify custom --levels ./levels --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Number of levels checked in parallel")
	verifyCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Hide the progress bar")
	verifyCmd.Flags().BoolVar(&flagNoSolve, "no-solve", false, "Only run strict validation")
}

func runVerify(cmd *cobra.Command, args []string) error {
	pack, err := packArg(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var progress io.Writer = os.Stderr
	if flagQuiet {
		progress = io.Discard
	}
	opts := solver.Options{MaxNodes: cfg.Solver.MaxNodes, MaxDepth: cfg.Solver.MaxDepth}
	reports := analyzeLevels(ctx, pack, flagWorkers, !flagNoSolve, opts, progress)

	failed := 0
	for _, r := range reports {
		if r.ok() {
			continue
		}
		failed++
		if r.Invalid != nil {
			fmt.Printf("  level %-3d invalid: %v\n", r.Level, r.Invalid)
		}
		if r.SolveErr != nil {
			fmt.Printf("  level %-3d unsolved: %v (explored %d boards)\n", r.Level, r.SolveErr, r.Explored)
		}
	}

	fmt.Printf("%s: %d of %d levels passed\n", pack.Title(), len(reports)-failed, len(reports))
	if failed > 0 {
		return fmt.Errorf("%d levels failed verification", failed)
	}
	return nil
}
