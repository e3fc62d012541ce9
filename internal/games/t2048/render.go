package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth   = 7 // Width of each cell (including left border)
	cellHeight  = 2 // Height of each cell (including top border)
	hudHeight   = 3
	hudMinWidth = 30
)

// boardDims returns the rendered width and height of an n×n grid.
func boardDims(n int) (int, int) {
	return n*cellWidth + 1, n*cellHeight + 1
}

// tileColor picks the display color for a tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorYellow
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorRed
	case 32:
		return core.ColorBrightRed
	case 64:
		return core.ColorMagenta
	case 128:
		return core.ColorBlue
	case 256:
		return core.ColorCyan
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightMagenta
	}
}

// Render draws the game state to the screen. dst arrives cleared.
func (g *Game) Render(dst *core.Screen) {
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	// Board centered horizontally, below the HUD
	boardW, boardH := boardDims(g.eng.Size())
	hudW := max(boardW, hudMinWidth)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, (g.screenW-hudW)/2, hudW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and run statistics.
func (g *Game) renderHUD(dst *core.Screen, x, w int) {
	title := g.variant.Title
	dst.DrawTextColored(x+(w-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(x, 1, fmt.Sprintf("Score: %d", g.eng.Score()))
	best := fmt.Sprintf("Best tile: %d", g.State().MaxTile)
	dst.DrawText(x+w-len(best), 1, best)

	gain := ""
	if g.eng.LastGain() > 0 {
		gain = fmt.Sprintf("+%d", g.eng.LastGain())
	}
	dst.DrawTextColored(x, 2, gain, core.ColorGreen)

	undo := fmt.Sprintf("Undo: %d", g.eng.HistoryLen())
	dst.DrawTextColored(x+w-len(undo), 2, undo, core.ColorGray)
}

// renderBoard draws the n×n grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.eng.Size()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

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

	board := g.eng.Board()
	for r := range n {
		for c := range n {
			val := board.At(r, c)
			if val == 0 {
				continue
			}

			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, area, core.ColorDefault, "PAUSED", "Press P to resume")
	case g.eng.IsGameOver():
		maxStr := fmt.Sprintf("Score %d  Max tile %d", g.eng.Score(), g.State().MaxTile)
		hint := "R: restart"
		if g.eng.CanUndo() {
			hint = "R: restart  U: undo"
		}
		drawOverlay(dst, area, core.ColorRed, "GAME OVER", maxStr, hint)
	case g.showBanner:
		drawOverlay(dst, area, core.ColorBrightYellow, "2048 reached!", "Keep going")
	}
}

// drawOverlay draws a boxed text overlay centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	box.X = core.Clamp(box.X, 0, max(dst.Width()-box.W, 0))
	box.Y = core.Clamp(box.Y, 0, max(dst.Height()-box.H, 0))
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextColored(cx-len(line)/2, box.Y+1+i, line, color)
	}
}
