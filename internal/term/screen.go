// Package term draws frames on a terminal and reads movement keys from it.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/input"
	"github.com/l1jgo/delve/internal/system"
)

// Screen is a tcell-backed renderer and keyboard input source.
type Screen struct {
	screen tcell.Screen
	status string
}

var (
	_ system.Renderer = (*Screen)(nil)
	_ input.Source    = (*Screen)(nil)
)

// NewScreen takes over the terminal. Call Close to restore it.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// SetStatus sets the line drawn below the map on the next Draw.
func (s *Screen) SetStatus(msg string) { s.status = msg }

// Draw paints a frame; blank cells are left cleared.
func (s *Screen) Draw(f *system.Frame) error {
	s.screen.Clear()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if c.Glyph == 0 {
				continue
			}
			s.screen.SetContent(x, y, data.DecodeGlyph(c.Glyph), nil, style(c))
		}
	}
	for i, r := range []rune(s.status) {
		s.screen.SetContent(i, f.Height, r, nil, tcell.StyleDefault)
	}
	s.screen.Show()
	return nil
}

func style(c system.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toColor(c.Foreground)).
		Background(toColor(c.Background))
}

func toColor(c component.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Next blocks for the next key press. Keys that do not move return
// input.None so the caller can redraw; q, Esc and Ctrl-C quit.
func (s *Screen) Next() (input.Direction, error) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return input.None, input.ErrQuit
		case *tcell.EventInterrupt:
			return input.None, input.ErrQuit
		case *tcell.EventResize:
			s.screen.Sync()
			return input.None, nil
		case *tcell.EventKey:
			d, quit := keyDirection(ev)
			if quit {
				return input.None, input.ErrQuit
			}
			return d, nil
		}
	}
}

// keyDirection maps arrows and vi keys (h/j/k/l) to directions.
func keyDirection(ev *tcell.EventKey) (input.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.None, true
	case tcell.KeyUp:
		return input.Up, false
	case tcell.KeyDown:
		return input.Down, false
	case tcell.KeyLeft:
		return input.Left, false
	case tcell.KeyRight:
		return input.Right, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return input.None, true
		case 'k':
			return input.Up, false
		case 'j':
			return input.Down, false
		case 'h':
			return input.Left, false
		case 'l':
			return input.Right, false
		}
	}
	return input.None, false
}

// Interrupt makes a blocked Next return input.ErrQuit. Safe to call from
// any goroutine.
func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}
