package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-viewer/internal/commands"
	"primitive-viewer/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible above the taskbar.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	historyBg = rl.NewColor(24, 24, 24, 240)
)

// hotkey runs a fixed command line when its key is pressed while the terminal is closed.
type hotkey struct {
	key  int32
	args []string
}

// Terminal is the command bar at the bottom of the screen, toggled with ESC.
// Submitted lines are split with commands.Parse and run through the registry;
// results and errors are appended to the log and shown above the bar.
// While closed, bound hotkeys run their commands instead.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	hotkeys  []hotkey
}

// New returns a closed Terminal that logs to log and runs lines through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Bind runs args through the registry whenever key is pressed with the terminal closed.
func (t *Terminal) Bind(key int32, args ...string) {
	t.hotkeys = append(t.hotkeys, hotkey{key: key, args: args})
}

// Submit echoes line to the log and executes it. Blank lines are ignored.
func (t *Terminal) Submit(line string) {
	args := commands.Parse(line)
	if len(args) == 0 {
		return
	}
	t.log.Log(prompt + strings.Join(args, " "))
	t.run(args)
}

func (t *Terminal) run(args []string) {
	if err := t.reg.Execute(args); err != nil {
		t.log.Log("error: " + err.Error())
	}
}

// Update handles ESC (toggle), hotkeys while closed, and typing while open. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		return
	}
	if !t.open {
		for _, hk := range t.hotkeys {
			if rl.IsKeyPressed(hk.key) {
				t.run(hk.args)
			}
		}
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Draw draws the bar and the most recent log lines when open.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinates in fullscreen.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	historyH := int32(maxLinesOnScreen * lineHeight)
	historyY := barY - historyH
	if historyY < 0 {
		historyH, historyY = barY, 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, historyY, screenW, historyH, historyBg)
	}
	lines := t.log.Lines()
	if len(lines) > maxLinesOnScreen {
		lines = lines[len(lines)-maxLinesOnScreen:]
	}
	for i, line := range lines {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		y := historyY + int32(i*lineHeight) + padding
		rl.DrawText(line, padding, y, fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
