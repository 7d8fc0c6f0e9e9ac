package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var statusColor = rl.NewColor(255, 255, 255, 220)

// Debug draws the overlay: the controller status line at the top-left, and the
// optional FPS and heap counters at the top-right. Counters start hidden.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	frameCount   uint32
	lastFPSText  string
	lastMemText  string
	memStats     runtime.MemStats
}

// New returns a Debug overlay with the status line shown and counters hidden.
func New() *Debug {
	return &Debug{ShowStatus: true}
}

func (d *Debug) SetShowFPS(show bool) { d.ShowFPS = show }

func (d *Debug) SetShowMemAlloc(show bool) { d.ShowMemAlloc = show }

// Draw renders the enabled overlays. Call last in the frame so it sits above the mesh.
func (d *Debug) Draw(status string) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFPSText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	if d.ShowStatus && status != "" {
		rl.DrawText(status, padding, padding, fontSize, statusColor)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFPSText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	x := screenW - rl.MeasureText(text, fontSize) - padding
	rl.DrawText(text, x, y, fontSize, rl.Green)
}
