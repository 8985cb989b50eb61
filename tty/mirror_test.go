package tty

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/glyphgrid/input"
	"github.com/milk9111/glyphgrid/render"
	"github.com/milk9111/glyphgrid/terminal"
)

type content struct {
	r     rune
	style tcell.Style
}

// recordingScreen captures what the mirror writes on top of a simulation
// screen.
type recordingScreen struct {
	tcell.SimulationScreen
	cells  map[[2]int]content
	shows  int
	syncs  int
	width  int
	height int
}

func newRecordingScreen(t *testing.T, w, h int) *recordingScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(sim.Fini)
	return &recordingScreen{SimulationScreen: sim, cells: map[[2]int]content{}, width: w, height: h}
}

func (s *recordingScreen) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = content{r: r, style: style}
}

func (s *recordingScreen) Clear()           { s.cells = map[[2]int]content{} }
func (s *recordingScreen) Show()            { s.shows++ }
func (s *recordingScreen) Sync()            { s.syncs++ }
func (s *recordingScreen) Size() (int, int) { return s.width, s.height }

type nopDevice struct{}

func (nopDevice) Upload([]render.Vertex)   {}
func (nopDevice) Bind(render.Texture)      {}
func (nopDevice) DrawArrays(offset, n int) {}

func newGrid(t *testing.T, cols, rows int) *terminal.Grid {
	t.Helper()
	g, err := terminal.NewGrid(render.Texture{ID: 1, Width: 192, Height: 192}, render.NewBatcher(nopDevice{}), cols, rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestMirrorShowsCellsAtCallerCoordinates(t *testing.T) {
	screen := newRecordingScreen(t, 10, 4)
	g := newGrid(t, 10, 4)
	g.SetPresenter(NewMirror(screen, g))

	g.Set(0, 0, 'A', terminal.Red, terminal.Blue)
	g.Set(9, 3, '█')
	g.SetGlyph(2, 1, 0x00)
	g.Render()

	if screen.shows != 1 {
		t.Fatalf("expected one Show, got %d", screen.shows)
	}
	tests := []struct {
		x, y  int
		r     rune
		style tcell.Style
	}{
		{0, 0, 'A', tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Background(tcell.NewRGBColor(0, 0, 255))},
		{9, 3, '█', tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255)).Background(tcell.NewRGBColor(0, 0, 0))},
		{2, 1, ' ', tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255)).Background(tcell.NewRGBColor(0, 0, 0))},
	}
	for _, tc := range tests {
		got, ok := screen.cells[[2]int{tc.x, tc.y}]
		if !ok {
			t.Fatalf("nothing drawn at (%d,%d): %v", tc.x, tc.y, screen.cells)
		}
		if got.r != tc.r || got.style != tc.style {
			t.Fatalf("(%d,%d) = %q %v, want %q %v", tc.x, tc.y, got.r, got.style, tc.r, tc.style)
		}
	}

	g.Clear()
	g.Render()
	if len(screen.cells) != 0 {
		t.Fatalf("cleared grid must clear the screen")
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), input.KeyA, true},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), input.KeyQ, true},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), input.Key7, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.KeySpace, true},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.KeyUp, true},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), input.KeyF5, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyEscape, true},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), input.KeyBackspace, true},
		{tcell.NewEventKey(tcell.KeyRune, '%', tcell.ModNone), input.KeyUnknown, false},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), input.KeyUnknown, false},
	}
	for _, tc := range tests {
		got, ok := TranslateKey(tc.ev)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("TranslateKey(%s) = %v,%v want %v,%v", tc.ev.Name(), got, ok, tc.want, tc.ok)
		}
	}
}

func TestPumpPulsesKeys(t *testing.T) {
	screen := newRecordingScreen(t, 4, 4)
	m := NewMirror(screen, newGrid(t, 4, 4))
	keys := input.NewManager()
	events := make(chan tcell.Event, 4)

	events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	if !m.Pump(events, keys) {
		t.Fatalf("unexpected quit")
	}
	if !keys.IsDown(input.KeyW) {
		t.Fatalf("expected w down after pump")
	}
	keys.Update()

	if !m.Pump(events, keys) {
		t.Fatalf("unexpected quit")
	}
	if keys.IsPressed(input.KeyW) {
		t.Fatalf("terminal key presses must release on the next pump")
	}
}

func TestPumpMouseButtons(t *testing.T) {
	m := NewMirror(newRecordingScreen(t, 4, 4), newGrid(t, 4, 4))
	keys := input.NewManager()
	events := make(chan tcell.Event, 4)

	events <- tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)
	m.Pump(events, keys)
	if !keys.IsPressed(input.MouseLeft) {
		t.Fatalf("expected left button pressed")
	}

	events <- tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone)
	m.Pump(events, keys)
	if keys.IsPressed(input.MouseLeft) {
		t.Fatalf("expected left button released")
	}
}

func TestPumpQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
	}{
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMirror(newRecordingScreen(t, 4, 4), newGrid(t, 4, 4))
			events := make(chan tcell.Event, 1)
			events <- tc.ev
			if m.Pump(events, input.NewManager()) {
				t.Fatalf("expected quit")
			}
		})
	}

	closed := make(chan tcell.Event)
	close(closed)
	m := NewMirror(newRecordingScreen(t, 4, 4), newGrid(t, 4, 4))
	if m.Pump(closed, input.NewManager()) {
		t.Fatalf("a closed event stream must quit")
	}
}

func TestPumpResizeFitsGrid(t *testing.T) {
	screen := newRecordingScreen(t, 4, 4)
	g := newGrid(t, 4, 4)
	m := NewMirror(screen, g)

	screen.width, screen.height = 20, 6
	events := make(chan tcell.Event, 1)
	events <- tcell.NewEventResize(20, 6)
	m.Pump(events, input.NewManager())

	if w, h := g.Size(); w != 20 || h != 6 {
		t.Fatalf("grid %dx%d, want 20x6", w, h)
	}
	if screen.syncs != 1 {
		t.Fatalf("expected a screen sync on resize")
	}
}

func TestPumpDeliversEscape(t *testing.T) {
	m := NewMirror(newRecordingScreen(t, 4, 4), newGrid(t, 4, 4))
	keys := input.NewManager()
	events := make(chan tcell.Event, 1)
	events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if !m.Pump(events, keys) {
		t.Fatalf("escape must not quit")
	}
	if !keys.IsDown(input.KeyEscape) {
		t.Fatalf("expected escape down after pump")
	}
}
