package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [pack]",
	Short: "List packs, or the levels of a pack",
	Long: `Without arguments, shows every registered level pack.
With a pack ID, shows its levels with their block counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		listPacks()
		return nil
	}

	pack, err := packArg(args)
	if err != nil {
		return err
	}
	lp, ok := pack.(*levels.Pack)
	if !ok {
		fmt.Printf("%s: %d levels\n", pack.Title(), pack.Count())
		return nil
	}

	maxName := runewidth.StringWidth("Name")
	for _, l := range lp.Levels() {
		maxName = max(maxName, runewidth.StringWidth(l.Title()))
	}

	fmt.Printf("%s (%d levels)\n\n", lp.Title(), lp.Count())
	fmt.Printf("  %-5s  %s  %7s  %6s\n", "Level", pad("Name", maxName), "Movable", "Colors")
	fmt.Printf("  %-5s  %s  %7s  %6s\n", "-----", pad("----", maxName), "-------", "------")
	for _, l := range lp.Levels() {
		b, _ := core.Settle(l.Board())
		fmt.Printf("  %-5d  %s  %7d  %6d\n", l.Number, pad(l.Title(), maxName), b.CountMovable(), len(b.CountByType()))
	}
	fmt.Println()
	fmt.Printf("Run 'vexed --pack %s play <level>' to play a level.\n", lp.ID())
	return nil
}

func listPacks() {
	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, runewidth.StringWidth(p.ID))
	}

	fmt.Printf("  %s  %s\n", pad("ID", maxIDLen), "Title")
	fmt.Printf("  %s  %s\n", pad("--", maxIDLen), "-----")
	for _, p := range packs {
		fmt.Printf("  %s  %s\n", pad(p.ID, maxIDLen), p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'vexed list <id>' to see the levels of a pack.")
}

// pad right-pads s to width display columns.
func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
