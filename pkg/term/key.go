package term

import "fmt"

// Key is a key press.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod is a bit mask of modifier keys.
type Mod byte

// Modifier keys.
const (
	Ctrl Mod = 1 << iota
	Alt
)

// Special negative runes to represent function keys.
const (
	Up rune = -2 - iota
	Down
	Right
	Left
	Home
	End
	PageUp
	PageDown
	Delete
	Insert
)

// Other named keys.
const (
	Tab       = '\t'
	Enter     = '\r'
	Backspace = 0x7f
	Escape    = 0x1b
)

var keyNames = map[rune]string{
	Up: "Up", Down: "Down", Right: "Right", Left: "Left",
	Home: "Home", End: "End", PageUp: "PageUp", PageDown: "PageDown",
	Delete: "Delete", Insert: "Insert",
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace", Escape: "Escape",
	' ': "Space",
}

func (k Key) String() string {
	var prefix string
	if k.Mod&Ctrl != 0 {
		prefix += "Ctrl-"
	}
	if k.Mod&Alt != 0 {
		prefix += "Alt-"
	}
	if name, ok := keyNames[k.Rune]; ok {
		return prefix + name
	}
	if k.Rune < 0 {
		return prefix + fmt.Sprintf("(bad function key %d)", k.Rune)
	}
	return prefix + string(k.Rune)
}
