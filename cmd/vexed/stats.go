package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
	"github.com/vovakirdan/vexed/internal/storage"
)

var flagStatsSolve bool

var statsCmd = &cobra.Command{
	Use:   "stats [pack]",
	Short: "Show level statistics and play totals",
	Long: `Summarize a pack: mean and spread of movable blocks and colors per
level, optionally shortest solution lengths, and totals from the progress
database.

Examples:
  vexed stats
  vexed stats classic --solve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsSolve, "solve", false, "Also solve every level (slower)")
}

func runStats(cmd *cobra.Command, args []string) error {
	pack, err := packArg(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := solver.Options{MaxNodes: cfg.Solver.MaxNodes, MaxDepth: cfg.Solver.MaxDepth}
	var progress io.Writer = io.Discard
	if flagStatsSolve {
		progress = os.Stderr
	}
	reports := analyzeLevels(ctx, pack, runtime.NumCPU(), flagStatsSolve, opts, progress)

	p := message.NewPrinter(language.English)
	keys := []string{"Levels"}
	rows := map[string]string{"Levels": p.Sprintf("%d", len(reports))}

	movable := make([]float64, 0, len(reports))
	colors := make([]float64, 0, len(reports))
	var moves []float64
	for _, r := range reports {
		movable = append(movable, float64(r.Movable))
		colors = append(colors, float64(r.Colors))
		if flagStatsSolve && r.SolveErr == nil {
			moves = append(moves, float64(r.Moves))
		}
	}

	addSeries := func(name string, xs []float64) {
		if len(xs) == 0 {
			return
		}
		mean, std := stat.MeanStdDev(xs, nil)
		keys = append(keys, name)
		rows[name] = p.Sprintf("%.2f ± %.2f", mean, std)
	}
	addSeries("Movable blocks", movable)
	addSeries("Colors", colors)
	if flagStatsSolve {
		addSeries("Solution length", moves)
		keys = append(keys, "Unsolved")
		rows["Unsolved"] = p.Sprintf("%d", len(reports)-len(moves))
	}

	if store, err := storage.Open(flagDBPath); err == nil {
		defer store.Close()
		if ps, err := store.GetPackStats(pack.ID()); err == nil {
			keys = append(keys, "Completions", "Levels cleared", "Total moves", "Avg moves")
			rows["Completions"] = p.Sprintf("%d", ps.Completions)
			rows["Levels cleared"] = p.Sprintf("%d / %d", ps.LevelsCompleted, pack.Count())
			rows["Total moves"] = p.Sprintf("%d", ps.TotalMoves)
			rows["Avg moves"] = p.Sprintf("%.1f", ps.AvgMoves)
		}
	}

	fmt.Print(fmtTable(pack.Title(), keys, rows))
	return nil
}

// fmtTable renders a two-column box table.
func fmtTable(title string, keys []string, rows map[string]string) string {
	keyW, valW := 0, runewidth.StringWidth(title)
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(rows[k]))
	}
	keyW += 2
	valW += 2

	var b strings.Builder
	inner := keyW + 1 + valW
	titleW := runewidth.StringWidth(title)
	left := max((inner-titleW)/2, 0)
	right := max(inner-titleW-left, 0)

	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString("|" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "|\n")
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString("| " + pad(k, keyW-2) + " | " + pad(rows[k], valW-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}
