package emulator

import (
	"github.com/ezrec/hrm/cpu"
)

// History is a bounded stack of machine states. Once full, the oldest
// state is dropped on every push.
type History struct {
	Limit int        // Maximum depth, 0 for no history.
	Data  []*cpu.Cpu // States, oldest first.
}

func (s *History) Push(state *cpu.Cpu) {
	if s.Limit <= 0 {
		return
	}

	if s.Full() {
		s.Data[0] = nil
		s.Data = s.Data[1:]
	}
	s.Data = append(s.Data, state)
}

func (s *History) Pop() (state *cpu.Cpu, ok bool) {
	state, ok = s.Peek()
	if ok {
		s.Data[len(s.Data)-1] = nil
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *History) Empty() bool {
	return len(s.Data) == 0
}

func (s *History) Full() bool {
	return len(s.Data) >= s.Limit
}

func (s *History) Peek() (state *cpu.Cpu, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *History) Reset() {
	clear(s.Data)
	s.Data = s.Data[:0]
}
