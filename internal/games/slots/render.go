package slots

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/money-machine/internal/core"
	"github.com/vovakirdan/money-machine/internal/games/slots/engine"
)

const (
	hudHeight  = 2 // Title and status lines
	footHeight = 3 // Result, blank and hint lines
	gaugeWidth = 5 // Gauge box including borders
	minColumn  = 3 // Narrowest reel column that still fits a wide symbol
)

// layout is the screen geometry of one frame.
type layout struct {
	reels   core.Rect // Reel window including its border
	gauge   core.Rect // Power gauge including its border
	column  int       // Inner width of one reel column
	visible int       // Symbol rows shown per reel
	first   int       // Index of the first shown row in an aligned reel
}

// computeLayout fits n reels of size symbols into a w*h screen.
func computeLayout(w, h, n, size int) (layout, bool) {
	reelsW := w - gaugeWidth - 3
	inner := reelsW - 2
	column := (inner - (n - 1)) / n
	if column < minColumn {
		return layout{}, false
	}

	visible := core.Clamp(h-hudHeight-footHeight-2, 0, size)
	if visible < size && visible%2 == 0 {
		visible-- // odd count keeps the payline in the middle
	}
	if visible < 1 {
		return layout{}, false
	}

	// Shrink the window to the columns actually used.
	reelsW = n*column + (n - 1) + 2
	top := hudHeight
	l := layout{
		reels:   core.NewRect(1, top, reelsW, visible+2),
		column:  column,
		visible: visible,
		first:   size/2 - visible/2,
	}
	l.gauge = core.NewRect(l.reels.Right()+1, top, gaugeWidth, visible+2)
	return l, true
}

// Render draws the machine: reels, payline, power gauge and last result.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}

	snap := g.machine.Snapshot()
	symbols := g.machine.Symbols()

	l, ok := computeLayout(dst.Width(), dst.Height(), g.machine.Reels(), symbols.Len())
	if !ok {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst, snap)
	g.renderReels(dst, l, symbols, snap.Outcome)
	renderGauge(dst, l.gauge, snap.Power)
	g.renderFooter(dst, l, snap.Result)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorRed)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawTextCentered(0, "$ "+strings.ToUpper(g.title)+" $", core.ColorBrightYellow)

	switch snap.State {
	case engine.Charging:
		dst.DrawText(1, 1, fmt.Sprintf("Charging... %3.0f%%", snap.Power*100))
	case engine.Running:
		x := dst.DrawTextColored(1, 1, "Draw in Progress...", core.ColorGreen)
		dst.DrawTextColored(x+1, 1, fmt.Sprintf("%.1fs", snap.Remaining.Seconds()), core.ColorGray)
	default:
		dst.DrawTextColored(1, 1, "Pull the lever", core.ColorGray)
	}

	draws := fmt.Sprintf("Draws: %d", g.draws)
	dst.DrawText(dst.Width()-len(draws)-1, 1, draws)
}

// renderReels draws every reel aligned on its outcome index, so the payline
// row shows the outcome symbols.
func (g *Game) renderReels(dst *core.Screen, l layout, symbols engine.SymbolSet, outcome engine.OutcomeVector) {
	dst.DrawBox(l.reels, core.ColorBlue)

	payline := symbols.Len()/2 - l.first
	for r, idx := range outcome {
		reel := symbols.MustAlign(idx)
		x := l.reels.X + 1 + r*(l.column+1)

		for row := 0; row < l.visible; row++ {
			sym := reel[l.first+row]
			y := l.reels.Y + 1 + row
			color := core.ColorGray
			if row == payline {
				color = core.ColorYellow
			}
			dst.DrawTextColored(x+(l.column-runewidth.StringWidth(sym))/2, y, sym, color)
		}

		if r < len(outcome)-1 {
			dst.DrawVLine(x+l.column, l.reels.Y+1, l.visible, '│', core.ColorBlue)
		}
	}

	y := l.reels.Y + 1 + payline
	dst.SetColored(l.reels.X, y, '▶', core.ColorRed)
	dst.SetColored(l.reels.Right()-1, y, '◀', core.ColorRed)
}

// renderGauge fills the gauge from the bottom in proportion to power.
func renderGauge(dst *core.Screen, box core.Rect, power float64) {
	dst.DrawBox(box, core.ColorBlue)

	inner := box.H - 2
	filled := int(math.Round(core.ClampF(power, 0, 1) * float64(inner)))
	for i := 0; i < inner; i++ {
		y := box.Bottom() - 2 - i
		fill, color := '░', core.ColorGray
		if i < filled {
			fill, color = '█', core.ColorBrightBlue
		}
		dst.DrawRect(core.NewRect(box.X+1, y, box.W-2, 1), fill, color)
	}
}

func (g *Game) renderFooter(dst *core.Screen, l layout, result []string) {
	y := l.reels.Bottom()
	if result == nil {
		dst.DrawTextColored(1, y, "No draw yet", core.ColorGray)
	} else {
		x := dst.DrawText(1, y, "Last draw: ")
		dst.DrawTextColored(x, y, strings.Join(result, " "), core.ColorYellow)
	}

	hint := "SPACE/ENTER: lever  Hold mouse: charge  B: menu  Q: quit"
	dst.DrawTextCentered(dst.Height()-1, hint, core.ColorGray)
}
