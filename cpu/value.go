package cpu

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// ValueKind is the variant of a Value.
type ValueKind int

const (
	KIND_NUMBER = ValueKind(0) // Signed 64-bit number.
	KIND_LETTER = ValueKind(1) // Uppercase ASCII letter.
)

// Value is the datum carried by hands, tiles, inbox and outbox.
// A Value is either a Number or a Letter, and is compared by value.
type Value struct {
	kind   ValueKind
	number int64
	letter byte
}

// Number makes a numeric Value.
func Number(n int64) Value {
	return Value{kind: KIND_NUMBER, number: n}
}

// Letter makes a letter Value. Lowercase letters are folded to uppercase,
// anything that is not an ASCII letter panics.
func Letter(c byte) Value {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		panic(fmt.Sprintf("cpu: %q is not a letter", c))
	}
	return Value{kind: KIND_LETTER, letter: c}
}

// Kind returns the variant of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNumber returns true if the value is a Number.
func (v Value) IsNumber() bool {
	return v.kind == KIND_NUMBER
}

// IsLetter returns true if the value is a Letter.
func (v Value) IsLetter() bool {
	return v.kind == KIND_LETTER
}

// Int returns the number held by the value, or 0 for a Letter.
func (v Value) Int() int64 {
	return v.number
}

// Char returns the letter held by the value, or 0 for a Number.
func (v Value) Char() byte {
	return v.letter
}

func (v Value) String() string {
	if v.kind == KIND_LETTER {
		return string(rune(v.letter))
	}
	return fmt.Sprintf("%d", v.number)
}

// Tile is the index of a memory cell.
type Tile uint

// Memory is the sparse floor of tiles. A missing key is an empty tile,
// which is distinct from a tile holding Number(0).
type Memory map[Tile]Value

// Tiles iterates the occupied tiles in index order.
func (mem Memory) Tiles() iter.Seq2[Tile, Value] {
	return func(yield func(tile Tile, value Value) bool) {
		for _, tile := range slices.Sorted(maps.Keys(mem)) {
			if !yield(tile, mem[tile]) {
				return
			}
		}
	}
}

func (mem Memory) String() string {
	var items []string
	for tile, value := range mem.Tiles() {
		items = append(items, fmt.Sprintf("%d: %v", tile, value))
	}
	return "{" + strings.Join(items, ", ") + "}"
}
