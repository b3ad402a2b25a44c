package screen

// Logical display geometry. Renderer implementations map this fixed
// coordinate space onto whatever output they drive.
const (
	Width  = 240
	Height = 320
)

// Color is an RGB triple in the logical display space.
type Color struct {
	R, G, B uint8
}

var (
	ColorBlack    = Color{0, 0, 0}
	ColorWhite    = Color{255, 255, 255}
	ColorRed      = Color{255, 0, 0}
	ColorGreen    = Color{0, 255, 0}
	ColorBlue     = Color{0, 0, 255}
	ColorYellow   = Color{255, 255, 0}
	ColorOrange   = Color{255, 165, 0}
	ColorGray     = Color{128, 128, 128}
	ColorDarkGray = Color{64, 64, 64}
)

// Touch is one touch event in logical coordinates.
type Touch struct {
	X, Y int
}

// Renderer is the drawing-primitive surface the monitor draws through. The
// core only issues these calls; it never inspects pixel buffers.
type Renderer interface {
	FillScreen(c Color)
	FillRect(x, y, w, h int, c Color)
	DrawRect(x, y, w, h int, c Color)
	DrawText(x, y, size int, text string, c Color)
	DrawPixel(x, y int, c Color)
	// PollTouch returns the next pending touch event, if any. It must not
	// block.
	PollTouch() (Touch, bool)
	Beep()
	SetBrightness(level int)
	// Flush makes all drawing since the previous Flush visible.
	Flush()
}

// Rect is an axis-aligned hot-zone.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the zone. Edges are
// inclusive; resistive panels report corner touches right on the boundary.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Hot-zones, tested in a fixed priority order per current state.
var (
	zoneSettings = Rect{X: 10, Y: 200, W: 60, H: 30}
	zoneHistory  = Rect{X: 90, Y: 200, W: 60, H: 30}
	zoneInfo     = Rect{X: 170, Y: 200, W: 60, H: 30}
	zoneBack     = Rect{X: 200, Y: 5, W: 40, H: 20}
	zoneExport   = Rect{X: 10, Y: 170, W: 100, H: 30}
	zoneClear    = Rect{X: 130, Y: 170, W: 100, H: 30}
)
