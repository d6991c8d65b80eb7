package term

import (
	"bufio"
	"fmt"
	"io"
)

// Reader decodes key presses from the bytes a terminal in raw mode sends.
//
// An escape sequence is assumed to arrive in one read; an Escape byte with
// nothing buffered after it is taken as a lone Escape key.
type Reader struct {
	rd *bufio.Reader
}

// NewReader creates a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

// SeqError is returned by ReadKey for an escape sequence that cannot be
// decoded. The sequence has been consumed when it is returned, so reading
// can continue.
type SeqError struct {
	Msg string
	Seq string
}

func (e SeqError) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Seq)
}

// ReadKey reads the next key press.
func (rd *Reader) ReadKey() (Key, error) {
	r, _, err := rd.rd.ReadRune()
	if err != nil {
		return Key{}, err
	}
	if r != Escape {
		return ctrlModify(r), nil
	}
	seq := string(r)
	// Reads the next rune of an escape sequence, or -1 if nothing is
	// buffered.
	next := func() rune {
		if rd.rd.Buffered() == 0 {
			return -1
		}
		r, _, err := rd.rd.ReadRune()
		if err != nil {
			return -1
		}
		seq += string(r)
		return r
	}

	r2 := next()
	switch r2 {
	case -1:
		return K(Escape), nil
	case '[':
		var nums []int
		r = next()
	csi:
		for {
			switch {
			case r == ';':
				nums = append(nums, 0)
			case '0' <= r && r <= '9':
				if len(nums) == 0 {
					nums = append(nums, 0)
				}
				nums[len(nums)-1] = nums[len(nums)-1]*10 + int(r-'0')
			case r == -1:
				return Key{}, SeqError{"incomplete CSI", seq}
			default:
				break csi
			}
			r = next()
		}
		if k, ok := parseCSI(nums, r); ok {
			return k, nil
		}
		return Key{}, SeqError{"bad CSI", seq}
	case 'O':
		r = next()
		if k, ok := g3Seq[r]; ok {
			return k, nil
		}
		if r == -1 {
			return K('O', Alt), nil
		}
		return Key{}, SeqError{"bad G3", seq}
	default:
		k := ctrlModify(r2)
		k.Mod |= Alt
		return k, nil
	}
}

func ctrlModify(r rune) Key {
	switch r {
	case Tab, Enter, '\n', Backspace:
		return K(r)
	case 0x0:
		return K('`', Ctrl)
	}
	if 0x1 <= r && r <= 0x1a {
		return K(r+0x60, Ctrl)
	}
	return K(r)
}

// \eO followed by one character.
var g3Seq = map[rune]Key{
	'A': K(Up), 'B': K(Down), 'C': K(Right), 'D': K(Left),
	'H': K(Home), 'F': K(End),
}

// Final characters of CSI sequences like \e[A or \e[1;5A.
var csiSeqByLast = map[rune]rune{
	'A': Up, 'B': Down, 'C': Right, 'D': Left, 'H': Home, 'F': End,
}

// Numbers of CSI sequences like \e[1~ or \e[5;3~.
var csiSeqTilde = map[int]rune{
	1: Home, 2: Insert, 3: Delete, 4: End, 5: PageUp, 6: PageDown,
	7: Home, 8: End,
}

func parseCSI(nums []int, last rune) (Key, bool) {
	var r rune
	var ok bool
	var modNum int
	if last == '~' {
		if len(nums) == 0 || len(nums) > 2 {
			return Key{}, false
		}
		r, ok = csiSeqTilde[nums[0]]
		if len(nums) == 2 {
			modNum = nums[1]
		}
	} else {
		if len(nums) > 2 || (len(nums) == 2 && nums[0] != 1) {
			return Key{}, false
		}
		r, ok = csiSeqByLast[last]
		if len(nums) == 2 {
			modNum = nums[1]
		}
	}
	if !ok {
		return Key{}, false
	}
	return Key{r, xtermMod(modNum)}, true
}

// Decodes the modifier parameter of xterm-style sequences. Shift is ignored.
func xtermMod(n int) Mod {
	if n < 2 {
		return 0
	}
	n--
	var mod Mod
	if n&2 != 0 {
		mod |= Alt
	}
	if n&4 != 0 {
		mod |= Ctrl
	}
	return mod
}
