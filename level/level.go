// Package level loads puzzle descriptions, and checks programs against
// them.
//
// A level is a YAML document:
//
//	name: Countdown
//	size: 10
//	steps: 82
//	memory:
//	  9: 0
//	cases:
//	  - inbox: [3, -2]
//	    outbox: [3, 2, 1, 0, -2, -1, 0]
//	  - inbox: [a, 1]
//	    memory: { 0: Z }
//	    outbox: [A, 1, 0]
//
// The level memory is the floor every case starts from, and a case may
// place its own tiles over it.
package level

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/hrm/cpu"
	hrmio "github.com/ezrec/hrm/io"
)

// Value is a YAML scalar holding one Number or one Letter.
type Value struct {
	cpu.Value
}

// UnmarshalYAML decodes an integer, a $(...) expression, or a single
// letter.
func (v *Value) UnmarshalYAML(node *yaml.Node) (err error) {
	if node.Kind != yaml.ScalarNode {
		err = &ErrValue{Line: node.Line, Text: node.Value}
		return
	}

	values, err := hrmio.ParseValues([]string{node.Value})
	if err != nil {
		return
	}
	if len(values) != 1 {
		err = &ErrValue{Line: node.Line, Text: node.Value}
		return
	}

	v.Value = values[0]
	return
}

// MarshalYAML encodes the value as an integer or a letter.
func (v Value) MarshalYAML() (any, error) {
	if v.IsLetter() {
		return v.String(), nil
	}
	return v.Int(), nil
}

// Values converts a YAML list into machine values.
func Values(list []Value) (values []cpu.Value) {
	if list == nil {
		return
	}

	values = make([]cpu.Value, len(list))
	for n, value := range list {
		values[n] = value.Value
	}
	return
}

// Floor is a YAML map of tile to value.
type Floor map[cpu.Tile]Value

// Memory converts the floor into machine memory.
func (floor Floor) Memory() (memory cpu.Memory) {
	memory = cpu.Memory{}
	for tile, value := range floor {
		memory[tile] = value.Value
	}
	return
}

// Case is a single test of a level.
type Case struct {
	Inbox  []Value `yaml:"inbox"`
	Memory Floor   `yaml:"memory,omitempty"`
	Outbox []Value `yaml:"outbox"`
}

// Seed returns the inbox and floor of the case.
func (tc *Case) Seed() hrmio.Seed {
	return hrmio.Seed{
		Inbox:  Values(tc.Inbox),
		Memory: tc.Memory.Memory(),
	}
}

// Level is a puzzle: the starting floor, the test cases, and optional
// size and speed goals.
type Level struct {
	Name   string `yaml:"name"`
	Size   int    `yaml:"size,omitempty"`  // Instruction count goal, 0 for none.
	Steps  int    `yaml:"steps,omitempty"` // Average step count goal, 0 for none.
	Memory Floor  `yaml:"memory,omitempty"`
	Cases  []Case `yaml:"cases"`
}

// Load decodes a level.
func Load(r io.Reader) (lvl *Level, err error) {
	lvl = &Level{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(lvl)
	if err != nil {
		if err == io.EOF {
			err = ErrLevelEmpty
		}
		lvl = nil
		return
	}

	if len(lvl.Cases) == 0 {
		err = ErrLevelEmpty
		lvl = nil
		return
	}

	if lvl.Name == "" {
		lvl.Name = "level"
	}

	return
}

// Seed returns the seed of a case, over the level floor.
func (lvl *Level) Seed(index int) hrmio.Seed {
	base := hrmio.Seed{Memory: lvl.Memory.Memory()}
	return base.Merge(lvl.Cases[index].Seed())
}

// caseName names a case for messages.
func caseName(index int) string {
	return "#" + strconv.Itoa(index+1)
}
