package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/doridoridoriand/cardiomon-go/internal/screen"
)

// TCell renders the monitor's fixed 240x320 logical surface onto a
// terminal, with mouse clicks standing in for the touch panel.
type TCell struct {
	s       tcell.Screen
	touches chan screen.Touch
	done    chan struct{}
	onQuit  func()
}

// NewTCell initializes the terminal surface. Failure here is fatal to the
// whole process, matching a display-init failure on the real device.
func NewTCell() (*TCell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse()
	s.HideCursor()

	d := &TCell{
		s:       s,
		touches: make(chan screen.Touch, 8),
		done:    make(chan struct{}),
	}
	go d.eventLoop()
	return d, nil
}

// OnQuit installs a callback fired when the user quits (q or Ctrl-C).
func (d *TCell) OnQuit(fn func()) { d.onQuit = fn }

// Fini releases the terminal.
func (d *TCell) Fini() {
	close(d.done)
	d.s.Fini()
}

func (d *TCell) eventLoop() {
	for {
		ev := d.s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-d.done:
			return
		default:
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				if d.onQuit != nil {
					d.onQuit()
				}
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			cx, cy := ev.Position()
			lx, ly := d.toLogical(cx, cy)
			select {
			case d.touches <- screen.Touch{X: lx, Y: ly}:
			default:
				// Touch queue full; drop rather than block the event loop.
			}
		case *tcell.EventResize:
			d.s.Sync()
		}
	}
}

// toLogical maps terminal cell coordinates to the logical display space.
func (d *TCell) toLogical(cx, cy int) (int, int) {
	w, h := d.s.Size()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return cx * screen.Width / w, cy * screen.Height / h
}

// toCell maps logical coordinates to terminal cells.
func (d *TCell) toCell(lx, ly int) (int, int) {
	w, h := d.s.Size()
	return lx * w / screen.Width, ly * h / screen.Height
}

func toTcellColor(c screen.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FillScreen paints the whole surface.
func (d *TCell) FillScreen(c screen.Color) {
	w, h := d.s.Size()
	style := tcell.StyleDefault.Background(toTcellColor(c))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// FillRect paints a filled rectangle in logical coordinates.
func (d *TCell) FillRect(x, y, w, h int, c screen.Color) {
	x0, y0 := d.toCell(x, y)
	x1, y1 := d.toCell(x+w, y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	style := tcell.StyleDefault.Background(toTcellColor(c))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			d.s.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawRect paints a rectangle outline.
func (d *TCell) DrawRect(x, y, w, h int, c screen.Color) {
	x0, y0 := d.toCell(x, y)
	x1, y1 := d.toCell(x+w, y+h)
	if x1 <= x0+1 || y1 <= y0+1 {
		d.FillRect(x, y, w, h, c)
		return
	}
	style := tcell.StyleDefault.Foreground(toTcellColor(c))
	for cx := x0; cx < x1; cx++ {
		d.s.SetContent(cx, y0, '-', nil, style)
		d.s.SetContent(cx, y1-1, '-', nil, style)
	}
	for cy := y0; cy < y1; cy++ {
		d.s.SetContent(x0, cy, '|', nil, style)
		d.s.SetContent(x1-1, cy, '|', nil, style)
	}
	d.s.SetContent(x0, y0, '+', nil, style)
	d.s.SetContent(x1-1, y0, '+', nil, style)
	d.s.SetContent(x0, y1-1, '+', nil, style)
	d.s.SetContent(x1-1, y1-1, '+', nil, style)
}

// DrawText writes text at a logical position. The size hint is ignored;
// terminal cells have one glyph size.
func (d *TCell) DrawText(x, y, size int, text string, c screen.Color) {
	cx, cy := d.toCell(x, y)
	style := tcell.StyleDefault.Foreground(toTcellColor(c))
	w, _ := d.s.Size()
	for i, r := range []rune(text) {
		if cx+i >= w {
			break
		}
		d.s.SetContent(cx+i, cy, r, nil, style)
	}
}

// DrawPixel paints a single logical pixel.
func (d *TCell) DrawPixel(x, y int, c screen.Color) {
	cx, cy := d.toCell(x, y)
	d.s.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(toTcellColor(c)))
}

// PollTouch returns the next pending click, if any. Never blocks.
func (d *TCell) PollTouch() (screen.Touch, bool) {
	select {
	case t := <-d.touches:
		return t, true
	default:
		return screen.Touch{}, false
	}
}

// Beep rings the terminal bell.
func (d *TCell) Beep() {
	_ = d.s.Beep()
}

// SetBrightness is a no-op on terminals; kept to satisfy the panel
// contract.
func (d *TCell) SetBrightness(level int) {}

// Flush makes buffered drawing visible.
func (d *TCell) Flush() {
	d.s.Show()
}
