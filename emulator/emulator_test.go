package emulator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ezrec/hrm/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	assert.NotNil(emu.Cpu)
	assert.Equal(0, emu.Size())
	assert.Equal(0, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func assemble(t *testing.T, program []string) *cpu.Program {
	asm := &cpu.Assembler{Strict: true}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return prog
}

func doRunSingle(emu *Emulator, program []string, memory cpu.Memory, inbox []cpu.Value, t *testing.T) (outbox []cpu.Value) {
	assert := assert.New(t)

	emu.Program = assemble(t, program)
	emu.Reset(memory, inbox)

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		here := program[emu.LineNo()-1]
		assert.Equal(op.Ip, emu.Ip(), here)
		code, ok := emu.Code()
		assert.True(ok, here)
		assert.Equal(op.Instruction, code, here)

		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.False(done && op.Ip != emu.Size()-1, here)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	outbox = emu.Cpu.Outbox
	return
}

func TestEmulatorStraightLine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	program := []string{
		"-- HUMAN RESOURCE MACHINE PROGRAM --",
		"",
		"    INBOX   ",
		"    COPYTO   0",
		"    INBOX   ",
		"    ADD      0",
		"    OUTBOX  ",
		"    BUMPUP   [1]",
		"    OUTBOX  ",
	}

	outbox := doRunSingle(emu, program, cpu.Memory{1: cpu.Number(0)}, []cpu.Value{cpu.Number(3), cpu.Number(4)}, t)

	assert.Equal([]cpu.Value{cpu.Number(7), cpu.Number(4)}, outbox)
	assert.Equal(cpu.Number(4), emu.Cpu.Memory[0])
	assert.Equal(7, emu.Ticks())
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	emu.Program = assemble(t, []string{
		"a:",
		"    INBOX   ",
		"    COPYTO   0",
		"b:",
		"    COPYFROM 0",
		"    OUTBOX  ",
		"    COPYFROM 0",
		"    JUMPZ    a",
		"    BUMPDN   0",
		"    JUMP     b",
	})
	emu.Reset(nil, []cpu.Value{cpu.Number(2), cpu.Number(0)})

	outbox, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal([]cpu.Value{cpu.Number(2), cpu.Number(1), cpu.Number(0), cpu.Number(0)}, outbox)
	assert.Equal(0, emu.LineNo())
	_, ok := emu.Code()
	assert.False(ok)

	// A fresh run starts from scratch.
	emu.Reset(nil, []cpu.Value{cpu.Number(1)})
	assert.Equal(0, emu.Ticks())
	outbox, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal([]cpu.Value{cpu.Number(1), cpu.Number(0)}, outbox)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{
		"a:",
		"    INBOX   ",
		"    ADD      [4]",
		"    OUTBOX  ",
		"    JUMP     a",
	}))
	emu.Reset(cpu.Memory{4: cpu.Letter('B')}, []cpu.Value{cpu.Number(1)})

	outbox, err := emu.Run(context.Background())
	assert.Nil(outbox)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
		assert.Equal(1, rt.Ip)
		assert.Equal(cpu.Instruction{Op: cpu.OP_ADD, Address: cpu.Indirect(4)}, rt.Instruction)
	}
	assert.Equal(cpu.ErrBadTileAddress(4), errors.Unwrap(err))
	assert.EqualError(err, "line 3 ADD [4]: Bad tile address: 4")
}

func TestEmulatorRunForever(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"a:", "JUMP a"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := emu.Run(ctx)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.Greater(emu.Ticks(), 0)
}

func TestEmulatorLogger(t *testing.T) {
	assert := assert.New(t)

	core, logs := observer.New(zap.DebugLevel)

	emu := NewEmulator(assemble(t, []string{"INBOX", "OUTBOX"}))
	emu.Logger = zap.New(core)
	emu.Reset(nil, []cpu.Value{cpu.Letter('X')})

	outbox, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal([]cpu.Value{cpu.Letter('X')}, outbox)
	assert.Equal(2, logs.FilterMessage("step").Len())
}

func TestErrRuntime_LineNo(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{LineNo: 1234, Ip: 1200, Instruction: cpu.Instruction{Op: cpu.OP_OUTBOX}, Err: cpu.ErrEmptyHands}
	assert.EqualError(err, "line 1234 OUTBOX: Empty hands")
	assert.ErrorIs(err, cpu.ErrEmptyHands)
}
