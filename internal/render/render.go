// Package render draws a GameState to a terminal screen: a spectator view
// for cmd/tetrisbot's optional -render flag, not an input surface (the
// engine itself is driven over the protocol, not a keyboard).
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tetrisbot/tetrisbot/internal/engine"
)

// Renderer owns a tcell screen and draws successive board snapshots to it.
type Renderer struct {
	screen tcell.Screen
}

// New initializes and returns a Renderer backed by a fresh terminal screen.
func New() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.Clear()
	return &Renderer{screen: screen}, nil
}

// Close tears down the terminal screen.
func (r *Renderer) Close() {
	r.screen.Fini()
}

var (
	bgStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	filledStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	fallingStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Draw renders one snapshot of g: the visible playfield, the falling
// piece, the hold slot, and the upcoming preview.
func (r *Renderer) Draw(g *engine.GameState) {
	r.screen.Clear()

	for y := 0; y < engine.VisibleHeight; y++ {
		for x := 0; x < engine.BoardWidth; x++ {
			ch, style := '.', bgStyle
			if g.Board.Occupied(x, y) {
				ch, style = '#', filledStyle
			}
			r.screen.SetContent(x, engine.VisibleHeight-1-y, ch, nil, style)
		}
	}
	for _, blk := range g.Piece.Blocks() {
		if blk[1] >= 0 && blk[1] < engine.VisibleHeight {
			r.screen.SetContent(blk[0], engine.VisibleHeight-1-blk[1], '@', nil, fallingStyle)
		}
	}

	r.drawText(engine.BoardWidth+2, 0, "hold:")
	if g.Hold != nil {
		r.drawText(engine.BoardWidth+2, 1, g.Hold.String())
	}
	r.drawText(engine.BoardWidth+2, 3, "next:")
	for i, s := range g.Preview {
		if i >= 6 {
			break
		}
		r.drawText(engine.BoardWidth+2, 4+i, s.String())
	}

	r.screen.Show()
}

func (r *Renderer) drawText(x, y int, s string) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, labelStyle)
	}
}

// PollQuit blocks until the viewer asks to quit (q, Esc, or Ctrl-C),
// keeping the terminal responsive to resize in the meantime.
func (r *Renderer) PollQuit() {
	for {
		switch ev := r.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}
