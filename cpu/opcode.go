package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_INBOX    = Op(0)  // INBOX
	OP_OUTBOX   = Op(1)  // OUTBOX
	OP_COPYFROM = Op(2)  // COPYFROM
	OP_COPYTO   = Op(3)  // COPYTO
	OP_ADD      = Op(4)  // ADD
	OP_SUB      = Op(5)  // SUB
	OP_BUMPUP   = Op(6)  // BUMPUP
	OP_BUMPDN   = Op(7)  // BUMPDN
	OP_JUMP     = Op(8)  // JUMP
	OP_JUMPN    = Op(9)  // JUMPN
	OP_JUMPZ    = Op(10) // JUMPZ
)

// opMap maps instruction keywords to operations.
var opMap = map[string]Op{
	"INBOX":    OP_INBOX,
	"OUTBOX":   OP_OUTBOX,
	"COPYFROM": OP_COPYFROM,
	"COPYTO":   OP_COPYTO,
	"ADD":      OP_ADD,
	"SUB":      OP_SUB,
	"BUMPUP":   OP_BUMPUP,
	"BUMPDN":   OP_BUMPDN,
	"JUMP":     OP_JUMP,
	"JUMPN":    OP_JUMPN,
	"JUMPZ":    OP_JUMPZ,
}

// IsJump returns true for the three jump operations.
func (op Op) IsJump() bool {
	return op == OP_JUMP || op == OP_JUMPN || op == OP_JUMPZ
}

// HasAddress returns true if the operation takes a tile address.
func (op Op) HasAddress() bool {
	return op >= OP_COPYFROM && op <= OP_BUMPDN
}

// AddressMode selects direct or indirect tile addressing.
type AddressMode int

const (
	MODE_DIRECT   = AddressMode(0) // N
	MODE_INDIRECT = AddressMode(1) // [N]
)

// Address is an instruction operand.
type Address struct {
	Mode AddressMode
	Tile Tile
}

// Direct makes an address of the literal tile.
func Direct(tile Tile) Address {
	return Address{Mode: MODE_DIRECT, Tile: tile}
}

// Indirect makes an address through the number held by tile.
func Indirect(tile Tile) Address {
	return Address{Mode: MODE_INDIRECT, Tile: tile}
}

func (addr Address) String() string {
	if addr.Mode == MODE_INDIRECT {
		return fmt.Sprintf("[%d]", addr.Tile)
	}
	return fmt.Sprintf("%d", addr.Tile)
}

// Instruction is a single assembled instruction. Jump targets are
// absolute indexes into the program.
type Instruction struct {
	Op      Op
	Address Address // Operand of COPYFROM..BUMPDN.
	Target  int     // Resolved target of JUMP, JUMPN and JUMPZ.
}

// IsJump returns true if the instruction sets the counter itself.
func (instr Instruction) IsJump() bool {
	return instr.Op.IsJump()
}

// String returns the assembly language representation of this instruction.
func (instr Instruction) String() string {
	switch {
	case instr.Op.HasAddress():
		return fmt.Sprintf("%v %v", instr.Op, instr.Address)
	case instr.Op.IsJump():
		return fmt.Sprintf("%v %d", instr.Op, instr.Target)
	default:
		return instr.Op.String()
	}
}
