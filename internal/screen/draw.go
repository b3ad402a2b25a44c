package screen

import (
	"fmt"

	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

// ShowSplash draws the boot splash.
func (m *Machine) ShowSplash() {
	m.r.FillScreen(ColorBlack)
	m.r.DrawText(50, 60, 3, "Cardiac Monitor", ColorWhite)
	m.r.DrawText(105, 100, 2, "v1.0", ColorWhite)
	m.drawHeart(Width/2, 140, ColorRed)
	m.r.DrawText(10, 200, 1, "For professional use only", ColorGray)
	m.r.Flush()
}

// ShowMain draws the full main screen.
func (m *Machine) ShowMain() {
	m.r.FillScreen(ColorBlack)

	m.r.FillRect(0, 0, Width, 30, ColorBlue)
	m.r.DrawText(10, 8, 2, "Cardiac Monitor", ColorWhite)

	// Vital signs layout
	m.r.DrawRect(10, 40, 100, 80, ColorWhite)
	m.r.DrawText(15, 45, 1, "Heart Rate", ColorWhite)
	m.r.DrawText(30, 55, 1, "(BPM)", ColorWhite)

	m.r.DrawRect(130, 40, 100, 80, ColorWhite)
	m.r.DrawText(150, 45, 1, "SpO2 (%)", ColorWhite)

	m.r.DrawRect(10, 130, 220, 60, ColorWhite)
	m.r.DrawText(15, 135, 1, "Waveform", ColorWhite)

	// Buttons
	m.r.FillRect(zoneSettings.X, zoneSettings.Y, zoneSettings.W, zoneSettings.H, ColorGray)
	m.r.DrawText(20, 212, 1, "Settings", ColorWhite)
	m.r.FillRect(zoneHistory.X, zoneHistory.Y, zoneHistory.W, zoneHistory.H, ColorGray)
	m.r.DrawText(100, 212, 1, "History", ColorWhite)
	m.r.FillRect(zoneInfo.X, zoneInfo.Y, zoneInfo.W, zoneInfo.H, ColorGray)
	m.r.DrawText(180, 212, 1, "Info", ColorWhite)

	m.r.Flush()
}

// updateVitals repaints the live numbers inside the main-screen boxes.
func (m *Machine) updateVitals(v vitals.Sample) {
	m.r.FillRect(15, 60, 90, 50, ColorBlack)
	if v.FingerPresent && v.HeartRate > 0 {
		m.r.DrawText(20, 70, 3, fmt.Sprintf("%d", int(v.HeartRate)), ColorRed)
	} else {
		m.r.DrawText(20, 70, 3, "--", ColorRed)
	}

	m.r.FillRect(135, 60, 90, 50, ColorBlack)
	if v.FingerPresent && v.SpO2 > 0 {
		m.r.DrawText(140, 70, 3, fmt.Sprintf("%d", int(v.SpO2)), ColorBlue)
	} else {
		m.r.DrawText(140, 70, 3, "--", ColorBlue)
	}

	m.r.FillRect(15, 105, 100, 10, ColorBlack)
	if v.FingerPresent {
		m.r.DrawText(15, 105, 1, "Finger detected", ColorGreen)
	} else {
		m.r.DrawText(15, 105, 1, "Place finger", ColorRed)
	}
}

func (m *Machine) drawStatusBar(v vitals.Sample) {
	batteryColor := ColorGreen
	if v.BatteryLevel <= 20 {
		batteryColor = ColorRed
	}
	m.r.FillRect(195, 18, 40, 12, ColorBlack)
	m.r.DrawText(200, 20, 1, fmt.Sprintf("%d%%", int(v.BatteryLevel)), batteryColor)
}

// drawWaveform advances the scrolling trace one column using the newest
// raw infrared reading.
func (m *Machine) drawWaveform(window []vitals.Reading, finger bool) {
	m.r.DrawPixel(m.waveformX, m.waveLastY, ColorBlack)

	if finger && len(window) > 0 {
		last := window[len(window)-1]
		// Map the IR intensity into the waveform box (y 140..185).
		y := 185 - int(last.IR%46)
		if y < 140 {
			y = 140
		}
		m.r.DrawPixel(m.waveformX, y, ColorGreen)
		m.waveLastY = y
	}

	m.waveformX++
	if m.waveformX > 225 {
		m.waveformX = 15
		m.r.FillRect(15, 140, 210, 45, ColorBlack)
	}
}

// ShowSettings draws the settings screen.
func (m *Machine) ShowSettings() {
	m.r.FillScreen(ColorBlack)

	m.r.FillRect(0, 0, Width, 30, ColorBlue)
	m.r.DrawText(10, 8, 2, "Settings", ColorWhite)
	m.r.FillRect(zoneBack.X, zoneBack.Y, zoneBack.W, zoneBack.H, ColorGray)
	m.r.DrawText(210, 10, 1, "Back", ColorWhite)

	m.r.DrawText(10, 50, 1, "Alert Thresholds:", ColorWhite)
	m.r.DrawText(20, 70, 1, fmt.Sprintf("HR: %d - %d BPM",
		int(m.thresholds.HeartRateMin), int(m.thresholds.HeartRateMax)), ColorWhite)
	m.r.DrawText(20, 90, 1, fmt.Sprintf("SpO2 Min: %d%%", int(m.thresholds.SpO2Min)), ColorWhite)
	m.r.DrawText(20, 110, 1, fmt.Sprintf("Battery Min: %d%%", int(m.thresholds.BatteryMin)), ColorWhite)
	m.r.DrawText(10, 140, 1, fmt.Sprintf("Brightness: %d", m.brightness), ColorWhite)

	m.r.FillRect(zoneExport.X, zoneExport.Y, zoneExport.W, zoneExport.H, ColorGreen)
	m.r.DrawText(20, 182, 1, "Export", ColorWhite)
	m.r.FillRect(zoneClear.X, zoneClear.Y, zoneClear.W, zoneClear.H, ColorRed)
	m.r.DrawText(150, 182, 1, "Clear", ColorWhite)

	m.r.Flush()
}

// ShowHistory draws the history screen with the most recent readings.
func (m *Machine) ShowHistory() {
	m.r.FillScreen(ColorBlack)

	m.r.FillRect(0, 0, Width, 30, ColorBlue)
	m.r.DrawText(10, 8, 2, "Data History", ColorWhite)
	m.r.FillRect(zoneBack.X, zoneBack.Y, zoneBack.W, zoneBack.H, ColorGray)
	m.r.DrawText(210, 10, 1, "Back", ColorWhite)

	m.r.DrawText(10, 40, 1, "Recent Readings:", ColorWhite)

	recent := m.hist.Recent(6)
	if len(recent) == 0 {
		m.r.DrawText(10, 60, 1, "No data available", ColorWhite)
		m.r.Flush()
		return
	}

	y := 60
	for _, v := range recent {
		t := v.Timestamp
		line := fmt.Sprintf("%02d:%02d:%02d HR:%d", t.Hour(), t.Minute(), t.Second(), int(v.HeartRate))
		m.r.DrawText(10, y, 1, line, ColorWhite)
		y += 15
		m.r.DrawText(10, y, 1, fmt.Sprintf("SpO2:%d Bat:%d%%", int(v.SpO2), int(v.BatteryLevel)), ColorWhite)
		y += 15
	}
	m.r.Flush()
}

func (m *Machine) showError(title, message string) {
	m.r.FillScreen(ColorBlack)
	m.r.DrawText(50, 60, 2, title, ColorRed)
	m.r.DrawText(10, 100, 1, message, ColorWhite)
	m.r.Flush()
}

// drawHeart draws the splash heart icon out of the available primitives.
func (m *Machine) drawHeart(x, y int, c Color) {
	m.r.FillRect(x-16, y-10, 14, 12, c)
	m.r.FillRect(x+2, y-10, 14, 12, c)
	m.r.FillRect(x-10, y, 20, 10, c)
	m.r.FillRect(x-4, y+10, 8, 6, c)
}
