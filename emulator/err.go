package emulator

import (
	"strconv"

	"github.com/ezrec/hrm/cpu"
	"github.com/ezrec/hrm/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo      int             // Source line of the failing step.
	Ip          int             // Instruction index of the failing step.
	Instruction cpu.Instruction // Failing instruction.
	Err         error
}

func (err *ErrRuntime) Error() string {
	return f("line %v %v: %v", strconv.Itoa(err.LineNo), err.Instruction, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
