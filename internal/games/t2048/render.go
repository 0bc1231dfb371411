package t2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// tileColors maps tile values to display colors; larger tiles reuse the last.
var tileColors = []struct {
	value int
	color core.Color
}{
	{2, core.ColorWhite},
	{4, core.ColorBrightWhite},
	{8, core.ColorYellow},
	{16, core.ColorOrange},
	{32, core.ColorBrightRed},
	{64, core.ColorRed},
	{128, core.ColorBrightYellow},
	{256, core.ColorBrightGreen},
	{512, core.ColorGreen},
	{1024, core.ColorBrightCyan},
	{2048, core.ColorBrightMagenta},
	{4096, core.ColorMagenta},
	{8192, core.ColorBrightBlue},
}

// TileColor returns the color used to draw a tile value.
func TileColor(value int) core.Color {
	c := core.ColorDefault
	for _, tc := range tileColors {
		if value < tc.value {
			break
		}
		c = tc.color
	}
	return c
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.state.Size()
	boardW := n*cellWidth + 1  // +1 for right border
	boardH := n*cellHeight + 1 // +1 for bottom border

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1
	hudW := max(boardW, 34)
	hudX := (g.screenW - hudW) / 2

	g.renderHUD(dst, hudX, hudW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, hudX, boardY+boardH+1)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, score, best score and undo/redo depth.
func (g *Game) renderHUD(dst *core.Screen, x, w int) {
	title := g.Title()
	dst.DrawTextColor(x+(w-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(x, 1, fmt.Sprintf("Score: %d", g.state.Score()))
	best := fmt.Sprintf("Best: %d", g.Best())
	dst.DrawText(x+w-len(best), 1, best)

	dst.DrawText(x, 2, fmt.Sprintf("Target: %d", g.state.WinValue()))
	depth := fmt.Sprintf("Undo %d  Redo %d", len(g.state.history), len(g.state.future))
	dst.DrawTextColor(x+w-len(depth), 2, depth, core.ColorGray)
}

// renderBoard draws the NxN grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.state.Size()
	board := g.state.Board()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, gridCorner(x, y, n))

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for row := range n {
		for col := range n {
			val := board.At(row, col)
			if val == 0 {
				continue
			}

			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// gridCorner picks the box-drawing rune for grid intersection (x, y).
func gridCorner(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderFooter draws status, legal moves and the last engine error.
func (g *Game) renderFooter(dst *core.Screen, x, y int) {
	status := g.state.Status()
	statusColor := core.ColorDefault
	switch status {
	case StatusWon, StatusWonContinue:
		statusColor = core.ColorBrightGreen
	case StatusLost:
		statusColor = core.ColorBrightRed
	}
	dst.DrawTextColor(x, y, "Status: "+status.String(), statusColor)

	legal := LegalMoves(g.state)
	names := make([]string, len(legal))
	for i, d := range legal {
		names[i] = d.String()
	}
	moves := "none"
	if len(names) > 0 {
		moves = strings.Join(names, " ")
	}
	dst.DrawTextColor(x, y+1, "Moves: "+moves, core.ColorGray)

	if g.lastErr != nil {
		dst.DrawTextColor(x, y+2, g.lastErr.Error(), core.ColorRed)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	switch g.state.Status() {
	case StatusWon:
		if g.state.StopOnWin() {
			drawOverlay(dst, board, "YOU WIN!", fmt.Sprintf("Reached %d", g.state.WinValue()), "R: restart  U: undo")
		}
	case StatusLost:
		maxStr := fmt.Sprintf("Max tile: %d", g.state.Board().MaxTile())
		drawOverlay(dst, board, "GAME OVER", maxStr, "R: restart  U: undo")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	centerX := box.X + box.W/2
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | U: Undo | Y: Redo | P: Pause | R: Restart | Q: Quit"
}
