package display

import "github.com/doridoridoriand/cardiomon-go/internal/screen"

// Null is a renderer that discards all output, used for headless runs
// where only the log and metrics surfaces matter.
type Null struct{}

// NewNull returns a no-op renderer.
func NewNull() *Null { return &Null{} }

func (*Null) FillScreen(screen.Color) {}

func (*Null) FillRect(x, y, w, h int, c screen.Color) {}

func (*Null) DrawRect(x, y, w, h int, c screen.Color) {}

func (*Null) DrawText(x, y, size int, text string, c screen.Color) {}

func (*Null) DrawPixel(x, y int, c screen.Color) {}

func (*Null) PollTouch() (screen.Touch, bool) { return screen.Touch{}, false }

func (*Null) Beep() {}

func (*Null) SetBrightness(int) {}

func (*Null) Flush() {}
