package tty

import (
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/input"
	"github.com/milk9111/glyphgrid/terminal"
)

// Mirror presents a glyph grid on a character terminal. It implements
// terminal.Presenter, so attaching it to a grid shows every rendered frame.
type Mirror struct {
	screen tcell.Screen
	grid   *terminal.Grid

	listen  sync.Once
	events  chan tcell.Event
	pulsed  []input.Key
	buttons tcell.ButtonMask
}

func NewMirror(screen tcell.Screen, grid *terminal.Grid) *Mirror {
	return &Mirror{screen: screen, grid: grid}
}

// Present copies every occupied cell to the screen. Cell rows are stored
// bottom up, terminal rows top down.
func (m *Mirror) Present() {
	if m == nil || m.screen == nil {
		return
	}
	m.screen.Clear()
	_, h := m.grid.Size()
	m.grid.Cells(func(c terminal.Cell) {
		m.screen.SetContent(c.X, h-1-c.Y, printable(c.Glyph), nil, cellStyle(c))
	})
	m.screen.Show()
}

// FitGrid resizes the grid to the current screen size.
func (m *Mirror) FitGrid() {
	w, h := m.screen.Size()
	glyph := m.grid.GlyphSize()
	m.grid.Resize(w*glyph, h*glyph)
}

// Listen starts reading screen events on a goroutine and returns the channel
// they arrive on. Later calls return the same channel.
func (m *Mirror) Listen() <-chan tcell.Event {
	m.listen.Do(func() {
		m.events = make(chan tcell.Event, 64)
		go func() {
			defer close(m.events)
			for {
				ev := m.screen.PollEvent()
				if ev == nil {
					return
				}
				m.events <- ev
			}
		}()
	})
	return m.events
}

// Pump drains pending events into keys without blocking. Terminals do not
// report key releases, so a key press lasts until the next Pump. It returns
// false when the user asked to quit.
func (m *Mirror) Pump(events <-chan tcell.Event, keys *input.Manager) bool {
	for _, k := range m.pulsed {
		keys.OnKey(k, false)
	}
	m.pulsed = m.pulsed[:0]

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if !m.handle(ev, keys) {
				return false
			}
		default:
			return true
		}
	}
}

func (m *Mirror) handle(ev tcell.Event, keys *input.Manager) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		k, ok := TranslateKey(ev)
		if !ok {
			common.Logger().Debug("tty: unmapped key", "name", ev.Name())
			return true
		}
		keys.OnKey(k, true)
		m.pulsed = append(m.pulsed, k)
	case *tcell.EventMouse:
		now := ev.Buttons()
		for button, k := range mouseButtons {
			was := m.buttons&button != 0
			is := now&button != 0
			if was != is {
				keys.OnKey(k, is)
			}
		}
		m.buttons = now
	case *tcell.EventResize:
		m.screen.Sync()
		m.FitGrid()
	}
	return true
}

var mouseButtons = map[tcell.ButtonMask]input.Key{
	tcell.Button1: input.MouseLeft,
	tcell.Button2: input.MouseRight,
	tcell.Button3: input.MouseMiddle,
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyF1:         input.KeyF1,
	tcell.KeyF2:         input.KeyF2,
	tcell.KeyF3:         input.KeyF3,
	tcell.KeyF4:         input.KeyF4,
	tcell.KeyF5:         input.KeyF5,
	tcell.KeyF6:         input.KeyF6,
	tcell.KeyF7:         input.KeyF7,
	tcell.KeyF8:         input.KeyF8,
	tcell.KeyF9:         input.KeyF9,
	tcell.KeyF10:        input.KeyF10,
	tcell.KeyF11:        input.KeyF11,
	tcell.KeyF12:        input.KeyF12,
}

// TranslateKey maps a terminal key event to an input key.
func TranslateKey(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() != tcell.KeyRune {
		k, ok := specialKeys[ev.Key()]
		return k, ok
	}
	r := unicode.ToLower(ev.Rune())
	switch {
	case r >= 'a' && r <= 'z':
		return input.KeyA + input.Key(r-'a'), true
	case r >= '0' && r <= '9':
		return input.Key0 + input.Key(r-'0'), true
	case r == ' ':
		return input.KeySpace, true
	}
	return input.KeyUnknown, false
}

func cellStyle(c terminal.Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(c.FG)).Background(toTcell(c.BG))
}

func toTcell(c terminal.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// printable maps an atlas code to a rune a terminal can show. Control codes
// render as blanks.
func printable(code byte) rune {
	r := terminal.GlyphRune(code)
	if unicode.IsControl(r) {
		return ' '
	}
	return r
}
