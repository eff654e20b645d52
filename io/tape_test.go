package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hrm/cpu"
)

func TestLetters(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(Letters(""))
	assert.Nil(Letters("123 !?"))
	assert.Equal([]cpu.Value{cpu.Letter('H'), cpu.Letter('I'), cpu.Letter('X')}, Letters("hi-x"))
}

func TestParseValues(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		words  []string
		values []cpu.Value
	}){
		{nil, nil},
		{[]string{"1", "-2"}, []cpu.Value{cpu.Number(1), cpu.Number(-2)}},
		{[]string{"ab", "7"}, []cpu.Value{cpu.Letter('A'), cpu.Letter('B'), cpu.Number(7)}},
		{[]string{"$(3*4)"}, []cpu.Value{cpu.Number(12)}},
		{[]string{"..."}, nil},
	}

	for _, entry := range table {
		values, err := ParseValues(entry.words)
		assert.NoError(err, entry.words)
		assert.Equal(entry.values, values, entry.words)
	}

	_, err := ParseValues([]string{"$(1+)"})
	var expr *ErrExpression
	assert.ErrorAs(err, &expr)
}

func TestParseMemory(t *testing.T) {
	assert := assert.New(t)

	memory, err := ParseMemory([]string{"0:5", "3:hello", "4:7:9", "x:1", "5", "6:?", "9:$(2-7)"})
	assert.NoError(err)
	assert.Equal(cpu.Memory{
		0: cpu.Number(5),
		3: cpu.Letter('H'),
		4: cpu.Number(7),
		9: cpu.Number(-5),
	}, memory)
}

func TestParseArgs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		args   []string
		inbox  []cpu.Value
		memory cpu.Memory
	}){
		{nil, nil, cpu.Memory{}},
		{[]string{"3", "go"}, []cpu.Value{cpu.Number(3), cpu.Letter('G'), cpu.Letter('O')}, cpu.Memory{}},
		{[]string{"1", "-", "0:a", "2", "5:9"},
			[]cpu.Value{cpu.Number(1), cpu.Number(2)},
			cpu.Memory{0: cpu.Letter('A'), 5: cpu.Number(9)}},
		{[]string{"-", "-", "1:1"}, nil, cpu.Memory{1: cpu.Number(1)}},
	}

	for _, entry := range table {
		seed, err := ParseArgs(entry.args)
		assert.NoError(err, entry.args)
		assert.Equal(entry.inbox, seed.Inbox, entry.args)
		assert.Equal(entry.memory, seed.Memory, entry.args)
	}
}

func TestFormatValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("[]", FormatValues(nil))
	assert.Equal("[1, 'A', -3]", FormatValues([]cpu.Value{cpu.Number(1), cpu.Letter('A'), cpu.Number(-3)}))
}

func TestTape(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	tape := &Tape{
		Input:  strings.NewReader("4 x\n\t-1\n"),
		Output: &out,
	}

	values, err := tape.Receive()
	assert.NoError(err)
	assert.Equal([]cpu.Value{cpu.Number(4), cpu.Letter('X'), cpu.Number(-1)}, values)

	assert.NoError(tape.Send(values))
	assert.Equal("Outbox: [4, 'X', -1]\n", out.String())

	empty := &Tape{}
	values, err = empty.Receive()
	assert.NoError(err)
	assert.Nil(values)
}

func TestSeedMerge(t *testing.T) {
	assert := assert.New(t)

	base := Seed{
		Inbox:  []cpu.Value{cpu.Number(1)},
		Memory: cpu.Memory{0: cpu.Number(0), 1: cpu.Number(1)},
	}
	merged := base.Merge(Seed{
		Inbox:  []cpu.Value{cpu.Letter('B')},
		Memory: cpu.Memory{1: cpu.Letter('Z')},
	})

	assert.Equal([]cpu.Value{cpu.Number(1), cpu.Letter('B')}, merged.Inbox)
	assert.Equal(cpu.Memory{0: cpu.Number(0), 1: cpu.Letter('Z')}, merged.Memory)
	assert.Equal(cpu.Memory{0: cpu.Number(0), 1: cpu.Number(1)}, base.Memory)
}
