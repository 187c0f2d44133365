// Package terminal is the editor's command bar: a one-line input at the bottom of the window
// with the recent log above it.
package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/commands"
	"scene-editor/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineRunes     = 200
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	chatBgColor = rl.NewColor(24, 24, 24, 230)
)

// Terminal toggles with ESC. While open it captures the keyboard: "cmd ..." lines run through
// the command registry, any other line goes to OnText.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font
	history  []string
	cursor   int

	// OnText receives non-command lines on the main loop. When nil such lines are only logged.
	OnText func(line string)
}

// New returns a closed terminal that logs to log and runs commands through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool { return t.open }

// SetOpen shows or hides the terminal.
func (t *Terminal) SetOpen(open bool) { t.open = open }

// SetFont sets the font used to draw the bar. A zero texture ID keeps raylib's default font.
func (t *Terminal) SetFont(font rl.Font) { t.font = font }

// Input returns the pending line.
func (t *Terminal) Input() string { return t.inputBuf }

// Submit handles one entered line as if it was typed and confirmed.
func (t *Terminal) Submit(line string) {
	if line == "" {
		return
	}
	t.log.Log(prompt + line)
	if n := len(t.history); n == 0 || t.history[n-1] != line {
		t.history = append(t.history, line)
	}
	t.cursor = len(t.history)

	if args, isCmd := commands.Parse(line); isCmd {
		if err := t.reg.Execute(args); err != nil {
			t.log.Log(err.Error())
		}
		return
	}
	if t.OnText != nil {
		t.OnText(line)
	}
}

// Recall moves through submitted lines: -1 is older, +1 is newer. Moving past the newest line
// clears the input.
func (t *Terminal) Recall(step int) {
	if len(t.history) == 0 {
		return
	}
	t.cursor += step
	switch {
	case t.cursor < 0:
		t.cursor = 0
	case t.cursor >= len(t.history):
		t.cursor = len(t.history)
		t.inputBuf = ""
		return
	}
	t.inputBuf = t.history[t.cursor]
}

// Update handles ESC and, while open, typing, paste, history and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		return
	}
	if !t.open {
		return
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		t.inputBuf += rl.GetClipboardText()
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && t.inputBuf != "" {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		t.Recall(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		t.Recall(1)
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Draw draws the bar and the recent log when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	lines := t.log.Last(maxLinesOnScreen)
	chatHeight := int32(len(lines))*lineHeight + 2*padding
	chatY := barY - chatHeight
	if chatY < 0 {
		chatY, chatHeight = 0, barY
	}
	if len(lines) > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, chatBgColor)
	}
	for i, line := range lines {
		y := chatY + padding + int32(i)*lineHeight
		t.text(clip(line), padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	t.text(prompt+t.inputBuf+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) text(s string, x, y int32, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, x, y, fontSize, c)
}

func clip(line string) string {
	if utf8.RuneCountInString(line) <= maxLineRunes {
		return line
	}
	r := []rune(line)
	return string(r[:maxLineRunes-3]) + "..."
}
