// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled programs, tracking the source line of
// each step.
package emulator

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezrec/hrm/cpu"
)

// Emulator state. CPU + program listing.
type Emulator struct {
	Logger   *zap.Logger  // If set, traces every step at debug level.
	*cpu.Cpu              // Machine state of the current run.
	Program  *cpu.Program // Reference to the currently running program listing.
	History  History      // States before each tick, for stepping back.
}

// NewEmulator creates a new emulator for a program, with an empty floor
// and inbox.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	if prog == nil {
		prog = &cpu.Program{}
	}

	emu = &Emulator{
		Program: prog,
	}

	emu.Reset(nil, nil)

	return
}

// Reset starts a fresh run with a pre-seeded floor and inbox.
func (emu *Emulator) Reset(memory cpu.Memory, inbox []cpu.Value) {
	var opts []cpu.CpuOpt
	if emu.Logger != nil {
		opts = append(opts, cpu.WithLogger(emu.Logger))
	}

	emu.Cpu = cpu.NewCpu(emu.Program.Instructions(), memory, inbox, opts...)
	emu.History.Reset()
}

// Back restores the state before the most recent tick.
func (emu *Emulator) Back() (ok bool) {
	state, ok := emu.History.Pop()
	if ok {
		emu.Cpu = state
	}

	return
}

// Ticks returns the total steps since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Steps
}

// Size returns the instruction count of the program.
func (emu *Emulator) Size() int {
	return emu.Program.Size()
}

// Ip returns the current instruction index.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Counter
}

// Code returns the current instruction.
func (emu *Emulator) Code() (instr cpu.Instruction, ok bool) {
	op := emu.Program.Debug(emu.Cpu.Counter)
	if op == nil {
		return
	}

	return op.Instruction, true
}

// LineNo returns the current line number for the executing opcode,
// or 0 when halted.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Counter)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	ip := emu.Ip()
	instr, _ := emu.Code()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Ip: ip, Instruction: instr, Err: err}
		}
	}()

	if !emu.Cpu.Running() {
		done = true
		return
	}

	if emu.History.Limit > 0 {
		emu.History.Push(emu.Cpu.Clone())
	}

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running()

	return
}

// Run ticks until the program halts, and returns the outbox.
// A program that never halts runs until ctx is done.
func (emu *Emulator) Run(ctx context.Context) (outbox []cpu.Value, err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			break
		}
	}

	outbox = emu.Cpu.Outbox
	return
}
