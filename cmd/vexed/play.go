package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/core"
	"github.com/vovakirdan/vexed/internal/games/vexed"
	"github.com/vovakirdan/vexed/internal/platform/tui"
)

var flagSpeed string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing. Without a level number a level picker opens, offering to
continue where you left off.

Controls:
  Arrows/HJKL  - Move the cursor
  Space        - Grab or release the block under the cursor
  Left/Right   - Slide the grabbed block
  R            - Restart the level
  N/P          - Next / previous level
  ?            - Hint (next move of a shortest solution)
  M            - Back to the level picker
  Q/Ctrl+C     - Quit

Speed presets: slow, normal, fast, instant

Examples:
  vexed play
  vexed play 12
  vexed play --speed fast
  vexed --pack custom --levels ./levels play 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Animation speed preset (overrides the config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagSpeed != "" {
		speed, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return err
		}
		cfg.Animation.Speed = speed
	}

	// Get terminal size early for the picker
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		return tui.RunSession(tui.Deps{
			Store:  store,
			Config: cfg,
			PackID: flagPack,
			Logger: logger,
			Theme:  tui.ThemeFromEnv(),
		}, rc)
	}

	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		return fmt.Errorf("invalid level %q", args[0])
	}
	pack, err := packArg(nil)
	if err != nil {
		return err
	}
	if level > pack.Count() {
		return fmt.Errorf("pack %q has %d levels", pack.ID(), pack.Count())
	}

	opts := vexed.OptionsFromConfig(cfg)
	opts.StartLevel = level
	opts.Logger = logger
	return tui.Run(vexed.New(pack, opts), pack.ID(), store, logger, rc)
}
