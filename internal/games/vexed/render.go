package vexed

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/vexed/internal/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

var blockColors = [...]platformcore.Color{
	core.Empty:     platformcore.ColorGray,
	core.Movable1:  platformcore.ColorRed,
	core.Movable2:  platformcore.ColorGreen,
	core.Movable3:  platformcore.ColorYellow,
	core.Movable4:  platformcore.ColorBlue,
	core.Movable5:  platformcore.ColorMagenta,
	core.Movable6:  platformcore.ColorCyan,
	core.Movable7:  platformcore.ColorOrange,
	core.Movable8:  platformcore.ColorBrightWhite,
	core.Immovable: platformcore.ColorGray,
}

// BlockColor returns the screen color of a block type.
func BlockColor(t core.BlockType) platformcore.Color {
	if !t.Valid() {
		return platformcore.ColorDefault
	}
	return blockColors[t]
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	case g.session == nil:
		return
	case g.loadErr != nil:
		g.renderOverlay(dst, "Cannot load level", "Press R to retry")
		return
	}

	board, highlight := g.session.Board(), map[core.Coord]bool(nil)
	if g.animating() {
		f := g.frames[g.frameIdx]
		board, highlight = f.board, f.highlight
	}
	g.renderBoard(dst, board, highlight)
	g.renderFooter(dst)

	if g.animating() || !g.session.Completed() {
		return
	}
	snap := g.session.Snapshot()
	if snap.FinalCompleted {
		g.renderOverlay(dst,
			fmt.Sprintf("All %d levels cleared!", snap.MaxLevel),
			"Enter: play again  Q: quit")
		return
	}
	line2 := "Enter: next level"
	if left := g.AutoAdvanceIn(); left > 0 {
		line2 = fmt.Sprintf("Next level in %ds", int(math.Ceil(left.Seconds())))
	}
	g.renderOverlay(dst,
		fmt.Sprintf("Level %d cleared in %d moves", snap.Level, snap.Moves),
		line2)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " " + g.Title()
	if g.session != nil && g.loadErr == nil {
		snap := g.session.Snapshot()
		hud = fmt.Sprintf(" %s | Level %d/%d | Moves %d | Blocks %d",
			g.Title(), snap.Level, snap.MaxLevel, snap.Moves, snap.Remaining)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

// cellOrigin returns the screen position of the left edge of a board cell.
func (g *Game) cellOrigin(c core.Coord) (int, int) {
	return g.board.X + 1 + c.Col*cellW, g.board.Y + 1 + c.Row
}

func (g *Game) renderBoard(dst *platformcore.Screen, b core.Board, highlight map[core.Coord]bool) {
	dst.DrawBox(g.board, platformcore.ColorGray)

	for cell := range b.Cells() {
		c := cell.Coord()
		x, y := g.cellOrigin(c)
		color := BlockColor(cell.Type)

		var body string
		switch {
		case highlight[c]:
			body, color = "░░", platformcore.ColorBrightWhite
		case cell.Type == core.Empty:
			body = "· "
		case cell.Type == core.Immovable:
			body = "▓▓"
		default:
			body = "██"
		}
		dst.DrawTextWithColor(x+1, y, body, color)

		if g.hint != nil && !g.animating() && c == g.hint.To {
			dst.DrawTextWithColor(x+1, y, "◇", platformcore.ColorBrightYellow)
		}
		if c == g.cursor && !g.animating() {
			left, right := '[', ']'
			if g.held {
				left, right = '<', '>'
			}
			dst.SetWithColor(x, y, left, platformcore.ColorBrightYellow)
			dst.SetWithColor(x+3, y, right, platformcore.ColorBrightYellow)
		}
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := g.board.Bottom()
	if g.message != "" {
		dst.DrawTextCenteredWithColor(y, g.message, platformcore.ColorBrightYellow)
	}
	controls := "arrows: cursor  space: grab  r: restart  n/p: level  ?: hint  q: quit"
	if g.held {
		controls = "left/right: slide block  space/esc: release"
	}
	dst.DrawTextCenteredWithColor(dst.Height()-1, controls, platformcore.ColorGray)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}
