package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-viewer/internal/clearcolor"
	"primitive-viewer/internal/config"
)

// Hooks are the per-phase callbacks of the main loop. Nil hooks are skipped.
type Hooks struct {
	// Start runs once after the window and GL context exist.
	Start func()
	// Update handles input before drawing.
	Update func()
	// Clear returns the frame's background color.
	Clear func() clearcolor.Color
	// Draw renders the frame after the clear.
	Draw func()
	// Stop runs before the window closes, while the GL context is still alive.
	Stop func()
}

// Run opens the window and runs the main loop until the window is closed.
// Each frame it calls Update, clears to Clear(), then calls Draw.
// ESC is reserved for the terminal; close via the window button.
func Run(win config.Window, hooks Hooks) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagMsaa4xHint)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(win.TargetFPS))

	if hooks.Start != nil {
		hooks.Start()
	}
	if hooks.Stop != nil {
		defer hooks.Stop()
	}

	for !rl.WindowShouldClose() {
		if hooks.Update != nil {
			hooks.Update()
		}

		rl.BeginDrawing()
		bg := clearcolor.Black
		if hooks.Clear != nil {
			bg = hooks.Clear()
		}
		rl.ClearBackground(ToColor(bg))
		if hooks.Draw != nil {
			hooks.Draw()
		}
		rl.EndDrawing()
	}
}

// ToColor converts a [0,1] float color to raylib's 8-bit color.
func ToColor(c clearcolor.Color) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
