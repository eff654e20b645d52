// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// COUNTER_HALT is the counter value set when INBOX finds the inbox empty.
const COUNTER_HALT = math.MaxInt

// Cpu is the execution state of a single run of a program.
type Cpu struct {
	Program []Instruction // Assembled program.

	Hands   *Value  // Accumulator, nil when empty.
	Memory  Memory  // Floor tiles.
	Inbox   []Value // Remaining input, consumed from the front.
	Outbox  []Value // Output, in emission order.
	Counter int     // Index of the next instruction.

	Steps int // Executed instruction counter.

	logger *zap.Logger
}

// CpuOpt configures a Cpu.
type CpuOpt func(cpu *Cpu)

// WithLogger traces every step at debug level.
func WithLogger(logger *zap.Logger) CpuOpt {
	return func(cpu *Cpu) {
		cpu.logger = logger
	}
}

// NewCpu creates fresh machine state for program. The memory and inbox
// are copied, so the caller may reuse them for another run.
func NewCpu(program []Instruction, memory Memory, inbox []Value, opts ...CpuOpt) (cpu *Cpu) {
	cpu = &Cpu{
		Program: program,
		Memory:  maps.Clone(memory),
		Inbox:   slices.Clone(inbox),
		logger:  zap.NewNop(),
	}
	if cpu.Memory == nil {
		cpu.Memory = Memory{}
	}

	for _, opt := range opts {
		opt(cpu)
	}

	cpu.logger = cpu.logger.Named("cpu")

	return
}

// Running returns true while the counter is a valid program index.
func (cpu *Cpu) Running() bool {
	return cpu.Counter >= 0 && cpu.Counter < len(cpu.Program)
}

// Clone returns an independent copy of the machine state.
func (cpu *Cpu) Clone() (state *Cpu) {
	copied := *cpu
	state = &copied

	if cpu.Hands != nil {
		hands := *cpu.Hands
		state.Hands = &hands
	}
	state.Memory = maps.Clone(cpu.Memory)
	state.Inbox = slices.Clone(cpu.Inbox)
	state.Outbox = slices.Clone(cpu.Outbox)

	return
}

// Run steps the program until it halts, and returns the outbox.
// The first failing step aborts the run.
func (cpu *Cpu) Run() (outbox []Value, err error) {
	cpu.logger.Debug("run",
		zap.String("inbox", formatValues(cpu.Inbox)),
		zap.Stringer("memory", cpu.Memory))

	for cpu.Running() {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	outbox = cpu.Outbox
	return
}

// getHands returns the value in hands.
func (cpu *Cpu) getHands() (value Value, err error) {
	if cpu.Hands == nil {
		err = ErrEmptyHands
		return
	}

	value = *cpu.Hands
	return
}

func (cpu *Cpu) setHands(value Value) {
	cpu.Hands = &value
}

// getTileIndex resolves an address to a tile index.
func (cpu *Cpu) getTileIndex(addr Address) (tile Tile, err error) {
	if addr.Mode == MODE_DIRECT {
		tile = addr.Tile
		return
	}

	ref, ok := cpu.Memory[addr.Tile]
	switch {
	case !ok:
		err = ErrEmptyTile(addr.Tile)
	case !ref.IsNumber() || ref.Int() < 0:
		err = ErrBadTileAddress(addr.Tile)
	default:
		tile = Tile(ref.Int())
	}

	return
}

// getTile resolves an address to an occupied tile.
func (cpu *Cpu) getTile(addr Address) (tile Tile, value Value, err error) {
	tile, err = cpu.getTileIndex(addr)
	if err != nil {
		return
	}

	value, ok := cpu.Memory[tile]
	if !ok {
		err = ErrEmptyTile(tile)
		return
	}

	return
}

// Step executes the instruction at the counter, if running.
func (cpu *Cpu) Step() (err error) {
	if !cpu.Running() {
		return
	}

	instr := cpu.Program[cpu.Counter]
	next := cpu.Counter + 1

	switch instr.Op {
	case OP_INBOX:
		if len(cpu.Inbox) == 0 {
			cpu.logger.Debug("inbox empty, halting", zap.Int("counter", cpu.Counter))
			cpu.Counter = COUNTER_HALT
			return
		}
		cpu.setHands(cpu.Inbox[0])
		cpu.Inbox = cpu.Inbox[1:]
	case OP_OUTBOX:
		var value Value
		value, err = cpu.getHands()
		if err != nil {
			return
		}
		cpu.Outbox = append(cpu.Outbox, value)
		cpu.Hands = nil
	case OP_COPYFROM:
		var value Value
		_, value, err = cpu.getTile(instr.Address)
		if err != nil {
			return
		}
		cpu.setHands(value)
	case OP_COPYTO:
		var tile Tile
		tile, err = cpu.getTileIndex(instr.Address)
		if err != nil {
			return
		}
		var value Value
		value, err = cpu.getHands()
		if err != nil {
			return
		}
		cpu.Memory[tile] = value
	case OP_ADD, OP_SUB:
		var a, b Value
		a, err = cpu.getHands()
		if err != nil {
			return
		}
		_, b, err = cpu.getTile(instr.Address)
		if err != nil {
			return
		}
		var result Value
		result, err = doArith(instr.Op, a, b)
		if err != nil {
			return
		}
		cpu.setHands(result)
	case OP_BUMPUP, OP_BUMPDN:
		var tile Tile
		var value Value
		tile, value, err = cpu.getTile(instr.Address)
		if err != nil {
			return
		}
		if !value.IsNumber() {
			err = ErrInvalidOperation(f("You can't %v with a letter", bumpName[instr.Op]))
			return
		}
		n := value.Int() + 1
		if instr.Op == OP_BUMPDN {
			n = value.Int() - 1
		}
		cpu.Memory[tile] = Number(n)
		cpu.setHands(Number(n))
	case OP_JUMP:
		next = instr.Target
	case OP_JUMPN:
		if cpu.Hands != nil && cpu.Hands.IsNumber() && cpu.Hands.Int() < 0 {
			next = instr.Target
		}
	case OP_JUMPZ:
		if cpu.Hands != nil && cpu.Hands.IsNumber() && cpu.Hands.Int() == 0 {
			next = instr.Target
		}
	default:
		panic(fmt.Sprintf("cpu: unknown op %v", instr.Op))
	}

	cpu.Counter = next
	cpu.Steps++

	if ce := cpu.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Stringer("instruction", instr),
			zap.String("inbox", formatValues(cpu.Inbox)),
			zap.String("outbox", formatValues(cpu.Outbox)),
			zap.String("hands", cpu.handsString()),
			zap.Stringer("memory", cpu.Memory),
		)
	}

	return
}

var bumpName = map[Op]string{
	OP_BUMPUP: "BUMP+",
	OP_BUMPDN: "BUMP-",
}

// doArith performs ADD or SUB, and returns the value for hands.
func doArith(op Op, a, b Value) (result Value, err error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		if op == OP_ADD {
			result = Number(a.Int() + b.Int())
		} else {
			result = Number(a.Int() - b.Int())
		}
	case op == OP_ADD:
		err = ErrInvalidOperation(f("You can't ADD with a letter"))
	case a.IsLetter() && b.IsLetter():
		result = Number(int64(a.Char()) - int64(b.Char()))
	default:
		err = ErrInvalidOperation(f("You can't SUB with mixed operands"))
	}

	return
}

func (cpu *Cpu) handsString() string {
	if cpu.Hands == nil {
		return "-"
	}
	return cpu.Hands.String()
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	counter := fmt.Sprintf("%d", cpu.Counter)
	if !cpu.Running() {
		counter = "halt"
	}

	text += fmt.Sprintf("% 8s: %v\n", "counter", counter)
	text += fmt.Sprintf("% 8s: %v\n", "hands", cpu.handsString())
	text += fmt.Sprintf("% 8s: %v\n", "inbox", formatValues(cpu.Inbox))
	text += fmt.Sprintf("% 8s: %v\n", "outbox", formatValues(cpu.Outbox))
	text += fmt.Sprintf("% 8s: %v\n", "memory", cpu.Memory)
	text += fmt.Sprintf("% 8s: %v\n", "steps", cpu.Steps)

	return
}

func formatValues(values []Value) string {
	items := make([]string, len(values))
	for n, value := range values {
		items[n] = value.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}
