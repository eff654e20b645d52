// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Assembler is a two pass assembler for mailbox programs.
//
// Unless Strict is set, text that cannot be parsed assembles to an empty
// program, and jumps to undefined labels are dropped from the output.
type Assembler struct {
	Strict bool        // If set, syntax errors and missing labels are errors.
	Logger *zap.Logger // If set, logs the assembler actions.

	Opcode []Opcode       // List of generated opcodes.
	Label  map[string]int // Map of jump labels to instruction indexes.
}

// token is a single statement or label definition from the program text.
type token struct {
	lineNo  int
	words   []string
	isLabel bool
	name    string // Label defined, or label referenced by a jump.
	instr   Instruction
}

// scanner walks program text, tracking line numbers.
type scanner struct {
	text   string
	pos    int
	lineNo int
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	return isBlank(c) || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.text)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.text[sc.pos]
}

// skipSpace skips all whitespace, including newlines.
func (sc *scanner) skipSpace() {
	for !sc.eof() && isSpace(sc.peek()) {
		if sc.peek() == '\n' {
			sc.lineNo++
		}
		sc.pos++
	}
}

// skipBlank skips spaces and tabs, and reports if any were present.
func (sc *scanner) skipBlank() (skipped bool) {
	for !sc.eof() && isBlank(sc.peek()) {
		sc.pos++
		skipped = true
	}
	return
}

// skipLine skips up to and including the next newline.
func (sc *scanner) skipLine() {
	for !sc.eof() && sc.peek() != '\n' {
		sc.pos++
	}
}

func (sc *scanner) span(accept func(c byte) bool) string {
	start := sc.pos
	for !sc.eof() && accept(sc.text[sc.pos]) {
		sc.pos++
	}
	return sc.text[start:sc.pos]
}

// word reads up to the next whitespace, for diagnostics.
func (sc *scanner) word() string {
	return sc.span(func(c byte) bool { return !isSpace(c) })
}

// number reads a non-negative decimal tile index.
func (sc *scanner) number() (tile Tile, ok bool) {
	digits := sc.span(isDigit)
	if len(digits) == 0 {
		return
	}
	value, err := strconv.ParseUint(digits, 10, 0)
	if err != nil {
		return
	}
	tile = Tile(value)
	ok = true
	return
}

// address reads an N or [N] operand.
func (sc *scanner) address() (addr Address, word string, ok bool) {
	start := sc.pos
	defer func() { word = sc.text[start:sc.pos] }()

	if sc.peek() != '[' {
		var tile Tile
		tile, ok = sc.number()
		addr = Direct(tile)
		return
	}

	sc.pos++
	tile, ok := sc.number()
	if !ok || sc.peek() != ']' {
		ok = false
		return
	}
	sc.pos++
	addr = Indirect(tile)
	return
}

// directive skips a 'COMMENT n' line, or a 'DEFINE COMMENT n' / 'DEFINE LABEL n'
// block whose data runs up to a terminating ';'.
func (sc *scanner) directive(keyword string) (err error) {
	if keyword == "DEFINE" {
		if !sc.skipBlank() {
			return ErrCommentInvalid
		}
		kind := sc.span(isAlnum)
		if kind != "COMMENT" && kind != "LABEL" {
			return ErrCommentInvalid
		}
	}

	if !sc.skipBlank() {
		return ErrCommentInvalid
	}
	sc.span(isDigit)

	if keyword == "COMMENT" {
		sc.skipLine()
		return
	}

	for !sc.eof() && sc.peek() != ';' {
		if sc.peek() == '\n' {
			sc.lineNo++
		}
		sc.pos++
	}
	if sc.eof() {
		return ErrDefineLonely
	}
	sc.pos++

	return
}

// tokenize splits program text into labels and statements.
func (asm *Assembler) tokenize(text string) (tokens []token, err error) {
	sc := &scanner{text: text, lineNo: 1}

	var word string
	var lineNo int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineNo, Word: word, Err: err}
		}
	}()

	for {
		sc.skipSpace()
		if sc.eof() {
			return
		}
		lineNo = sc.lineNo

		if strings.HasPrefix(sc.text[sc.pos:], "--") {
			sc.skipLine()
			continue
		}

		word = sc.span(isAlnum)
		if len(word) == 0 {
			word = sc.word()
			err = ErrInstructionInvalid
			return
		}

		// label:
		if sc.peek() == ':' {
			sc.pos++
			tokens = append(tokens, token{lineNo: lineNo, words: []string{word + ":"}, isLabel: true, name: word})
			continue
		}

		if word == "COMMENT" || word == "DEFINE" {
			err = sc.directive(word)
			if err != nil {
				return
			}
			continue
		}

		op, ok := opMap[word]
		if !ok {
			word += sc.word()
			err = ErrInstructionInvalid
			return
		}

		tok := token{lineNo: lineNo, words: []string{word}, instr: Instruction{Op: op}}

		switch {
		case op.HasAddress():
			if !sc.skipBlank() {
				err = ErrAddressInvalid
				return
			}
			var operand string
			tok.instr.Address, operand, ok = sc.address()
			if !ok {
				word = operand + sc.word()
				err = ErrAddressInvalid
				return
			}
			tok.words = append(tok.words, operand)
		case op.IsJump():
			if !sc.skipBlank() {
				err = ErrTargetMissing
				return
			}
			tok.name = sc.span(isAlnum)
			if len(tok.name) == 0 {
				word = sc.word()
				err = ErrTargetMissing
				return
			}
			tok.words = append(tok.words, tok.name)
		}

		// Statements end at whitespace.
		if !sc.eof() && !isSpace(sc.peek()) {
			word = strings.Join(tok.words, " ") + sc.word()
			err = ErrInstructionInvalid
			return
		}

		if asm.Logger != nil {
			asm.Logger.Debug("token", zap.Int("line", lineNo), zap.Strings("words", tok.words))
		}

		tokens = append(tokens, tok)
	}
}

// Parse parses an input stream into a Program.
//
// The only errors returned in non-strict mode are those from reading input.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	logger := asm.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clear(asm.Label)
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	asm.Opcode = asm.Opcode[:0]

	prog = &Program{}

	text, err := io.ReadAll(input)
	if err != nil {
		prog = nil
		return
	}

	tokens, err := asm.tokenize(string(text))
	if err != nil {
		if asm.Strict {
			prog = nil
			return
		}
		// Unparsable text assembles to nothing at all.
		logger.Warn("program text unparsable, assembled empty", zap.Error(err))
		err = nil
		prog.Label = map[string]int{}
		return
	}

	// First pass: every statement takes the next index, every
	// label binds to the index of the statement after it.
	var ip int
	for _, tok := range tokens {
		if tok.isLabel {
			asm.Label[tok.name] = ip
			continue
		}
		ip++
	}

	// Second pass: emit, linking jump labels.
	for _, tok := range tokens {
		if tok.isLabel {
			continue
		}

		instr := tok.instr
		if instr.IsJump() {
			target, ok := asm.Label[tok.name]
			if !ok {
				if asm.Strict {
					err = &ErrSyntax{LineNo: tok.lineNo, Word: strings.Join(tok.words, " "), Err: ErrLabelMissing(tok.name)}
					prog = nil
					return
				}
				logger.Warn("jump to missing label dropped",
					zap.Int("line", tok.lineNo), zap.String("label", tok.name))
				continue
			}
			instr.Target = target
		}

		opcode := Opcode{
			LineNo:      tok.lineNo,
			Ip:          len(asm.Opcode),
			Words:       tok.words,
			Instruction: instr,
		}
		if instr.IsJump() {
			opcode.LinkLabel = tok.name
		}
		asm.Opcode = append(asm.Opcode, opcode)
	}

	prog.Opcodes = slices.Clone(asm.Opcode)
	prog.Label = maps.Clone(asm.Label)

	return
}

// Assemble assembles program text into its instruction sequence.
func Assemble(text string) []Instruction {
	asm := &Assembler{}
	prog, _ := asm.Parse(strings.NewReader(text))
	return prog.Instructions()
}
