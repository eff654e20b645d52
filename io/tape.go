package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/hrm/cpu"
)

// Tape reads inbox words from an input stream, and writes the outbox to
// an output stream.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

// Receive reads every whitespace separated word of the input as inbox
// values.
func (tc *Tape) Receive() (values []cpu.Value, err error) {
	if tc.Input == nil {
		return
	}

	var words []string
	scanner := bufio.NewScanner(tc.Input)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	values, err = ParseValues(words)
	return
}

// Send writes the outbox as a single line.
func (tc *Tape) Send(values []cpu.Value) (err error) {
	_, err = fmt.Fprintf(tc.Output, "Outbox: %v\n", FormatValues(values))
	return
}

// FormatValues formats values as a list, quoting letters.
func FormatValues(values []cpu.Value) string {
	items := make([]string, len(values))
	for n, value := range values {
		if value.IsLetter() {
			items[n] = fmt.Sprintf("'%c'", value.Char())
		} else {
			items[n] = value.String()
		}
	}

	return "[" + strings.Join(items, ", ") + "]"
}

// Letters returns a Letter for each ASCII letter of text, dropping
// everything else.
func Letters(text string) (values []cpu.Value) {
	for _, c := range []byte(text) {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			values = append(values, cpu.Letter(c))
		}
	}

	return
}

// parseNumber returns the Number of an integer or $(...) word.
func parseNumber(word string) (value cpu.Value, ok bool, err error) {
	if isExpr(word) {
		var n int64
		n, err = Eval(word[2 : len(word)-1])
		if err != nil {
			return
		}
		value = cpu.Number(n)
		ok = true
		return
	}

	n, perr := strconv.ParseInt(word, 10, 64)
	if perr != nil {
		return
	}

	value = cpu.Number(n)
	ok = true
	return
}

// ParseValues converts words into inbox values.
func ParseValues(words []string) (values []cpu.Value, err error) {
	for _, word := range words {
		var value cpu.Value
		var ok bool
		value, ok, err = parseNumber(word)
		if err != nil {
			return
		}
		if ok {
			values = append(values, value)
		} else {
			values = append(values, Letters(word)...)
		}
	}

	return
}

// parseTile parses a 'tile:value' word. A value that is not a number
// is the first letter it contains. ok is false for words that do not
// make a tile.
func parseTile(word string) (tile cpu.Tile, value cpu.Value, ok bool, err error) {
	index, rest, found := strings.Cut(word, ":")
	if !found {
		return
	}

	n, perr := strconv.ParseUint(index, 10, 0)
	if perr != nil {
		return
	}
	tile = cpu.Tile(n)

	data := rest
	if !isExpr(rest) {
		data, _, _ = strings.Cut(rest, ":")
	}

	value, ok, err = parseNumber(data)
	if err != nil || ok {
		return
	}

	letters := Letters(data)
	if len(letters) == 0 {
		return
	}

	value = letters[0]
	ok = true
	return
}

// ParseMemory converts 'tile:value' words into floor tiles. Words that
// do not make a tile are ignored.
func ParseMemory(words []string) (memory cpu.Memory, err error) {
	memory = cpu.Memory{}
	for _, word := range words {
		var tile cpu.Tile
		var value cpu.Value
		var ok bool
		tile, value, ok, err = parseTile(word)
		if err != nil {
			return
		}
		if ok {
			memory[tile] = value
		}
	}

	return
}

// ParseArgs splits command line words into a Seed. Words before a lone
// '-' are inbox values, words after it are floor tiles. Numbers always go
// to the inbox.
func ParseArgs(args []string) (seed Seed, err error) {
	seed.Memory = cpu.Memory{}

	is_mem := false
	for _, arg := range args {
		var value cpu.Value
		var ok bool
		value, ok, err = parseNumber(arg)
		if err != nil {
			return
		}
		if ok {
			seed.Inbox = append(seed.Inbox, value)
			continue
		}

		if !is_mem && arg == "-" {
			is_mem = true
			continue
		}

		if !is_mem {
			seed.Inbox = append(seed.Inbox, Letters(arg)...)
			continue
		}

		var tile cpu.Tile
		tile, value, ok, err = parseTile(arg)
		if err != nil {
			return
		}
		if ok {
			seed.Memory[tile] = value
		}
	}

	return
}
