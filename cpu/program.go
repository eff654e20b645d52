package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Opcode is a single assembled statement with its source location.
type Opcode struct {
	LineNo      int      // Source line of the statement.
	Ip          int      // Index of the instruction in the program.
	Words       []string // Source words of the statement.
	Instruction Instruction
	LinkLabel   string // Label the jump target was linked from.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
	Label   map[string]int // Resolved label table.
}

// Debug returns the opcode at instruction index ip, or nil if out of range.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return
	}

	return &prog.Opcodes[ip]
}

// Instructions returns the flat instruction sequence.
func (prog *Program) Instructions() (instrs []Instruction) {
	instrs = make([]Instruction, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		instrs = append(instrs, op.Instruction)
	}

	return
}

// Size is the number of instructions in the program.
func (prog *Program) Size() int {
	return len(prog.Opcodes)
}

// String returns the program listing, one instruction per line,
// with the labels that bind to each index.
func (prog *Program) String() string {
	labels := map[int][]string{}
	for name, ip := range prog.Label {
		labels[ip] = append(labels[ip], name)
	}

	var sb strings.Builder
	for _, op := range prog.Opcodes {
		names := labels[op.Ip]
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "%v:\n", name)
		}
		text := op.Instruction.String()
		if len(op.LinkLabel) != 0 {
			text = fmt.Sprintf("%v %v", op.Instruction.Op, op.LinkLabel)
		}
		fmt.Fprintf(&sb, "%3d: %-14v ; line %d\n", op.Ip, text, op.LineNo)
	}

	return sb.String()
}
