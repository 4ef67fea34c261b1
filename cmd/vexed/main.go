// vexed is a terminal edition of the Vexed block-sliding puzzle.
//
// Usage:
//
//	vexed play [level]       - Play (level picker when no level is given)
//	vexed list [pack]        - List packs, or the levels of a pack
//	vexed verify [pack]      - Validate and solve every level of a pack
//	vexed stats [pack]       - Show level statistics and play totals
//	vexed export <level>     - Print a level as YAML
//	vexed progress [pack]    - Show cleared levels and best moves
//	vexed serve              - Start SSH server for remote play
//	vexed api                - Start the HTTP API
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.vexed/configs, ./configs)
//	--db <path>         - Progress database (default: ~/.vexed/progress.db)
//	--levels <dir>      - Play levels from a directory as the "custom" pack
//	--pack <id>         - Level pack to use (default: classic)
//	--fps <rate>        - Tick rate (default: 30)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels/classic"
	"github.com/vovakirdan/vexed/internal/registry"
	"github.com/vovakirdan/vexed/internal/storage"
)

// customPackID is the registry ID of a --levels directory.
const customPackID = "custom"

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLevels   string
	flagPack     string
	flagFPS      int
	flagLogLevel string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vexed",
	Short: "Vexed - slide blocks, match colors, clear the board",
	Long: `Vexed is a block-sliding puzzle for the terminal.

Slide blocks left or right; they fall when unsupported, and two or more
touching blocks of the same color vanish. Clear every colored block to
finish a level.

Available commands:
  play      - Play the campaign
  list      - Show packs and levels
  verify    - Check that every level of a pack is valid and solvable
  stats     - Level statistics and play totals
  export    - Print a level as YAML
  progress  - Cleared levels and best move counts
  serve     - Start SSH server for remote play
  api       - Start the HTTP API

Examples:
  vexed play
  vexed play 12
  vexed --levels ./my-levels play
  vexed verify classic
  vexed serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vexed/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files to play as the \"custom\" pack")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", classic.ID, "Level pack to play")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// setup builds the logger, loads the configuration and registers the
// custom pack.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vexed",
		Level:           level,
	})

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagLevels != "" {
		dir, err := filepath.Abs(flagLevels)
		if err != nil {
			return err
		}
		registry.Replace(customPackID, "Custom: "+filepath.Base(dir), func() (registry.Pack, error) {
			return levels.LoadPack(customPackID, "Custom: "+filepath.Base(dir), os.DirFS(dir), ".")
		})
		if !cmd.Flags().Changed("pack") {
			flagPack = customPackID
		}
	}
	return nil
}

// packArg returns the pack named on the command line, or --pack.
func packArg(args []string) (registry.Pack, error) {
	id := flagPack
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown pack %q; run 'vexed list' to see available packs", id)
	}
	return registry.Create(id)
}

// openStore opens the progress database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
