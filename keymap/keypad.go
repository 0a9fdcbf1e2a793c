package keymap

// Button is a key on an on-screen keypad.
type Button struct {
	// Label is the text drawn on the button.
	Label string
	// Key is the key the button presses.
	Key string
}

// Keypad is a grid of buttons, indexed by row then column. Rows may have
// different lengths.
type Keypad [][]Button

// DefaultKeypad returns the standard scientific layout.
func DefaultKeypad() Keypad {
	return Keypad{
		{{"√", "q"}, {"x²", "s"}, {"1/x", "r"}, {"π", "p"}},
		{{"AC", Escape}, {"DEL", Backspace}, {"÷", "÷"}, {"*", "*"}},
		{{"7", "7"}, {"8", "8"}, {"9", "9"}, {"-", "-"}},
		{{"4", "4"}, {"5", "5"}, {"6", "6"}, {"+", "+"}},
		{{"1", "1"}, {"2", "2"}, {"3", "3"}, {"=", Enter}},
		{{"0", "0"}, {".", "."}},
	}
}

// At returns the button at the given column and row.
func (k Keypad) At(col, row int) (Button, bool) {
	if row < 0 || row >= len(k) || col < 0 || col >= len(k[row]) {
		return Button{}, false
	}
	return k[row][col], true
}

// Size returns the number of columns in the widest row and the number of
// rows.
func (k Keypad) Size() (cols, rows int) {
	for _, r := range k {
		cols = max(cols, len(r))
	}
	return cols, len(k)
}

// Hit returns the button under the point (x, y) when the keypad is drawn as a
// uniform grid filling a width by height area with its origin at (0, 0).
func (k Keypad) Hit(x, y, width, height int) (Button, bool) {
	cols, rows := k.Size()
	if x < 0 || y < 0 || x >= width || y >= height || cols == 0 {
		return Button{}, false
	}
	return k.At(x*cols/width, y*rows/height)
}
