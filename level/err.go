package level

import (
	"errors"
	"strconv"

	"github.com/ezrec/hrm/cpu"
	hrmio "github.com/ezrec/hrm/io"
	"github.com/ezrec/hrm/translate"
)

var f = translate.From

var (
	ErrLevelEmpty = errors.New(f("level has no cases"))
	ErrTooSlow    = errors.New(f("step limit exceeded"))
)

// ErrValue reports a level value that is not one Number or one Letter.
type ErrValue struct {
	Line int
	Text string
}

func (err *ErrValue) Error() string {
	return f("line %v: '%v' is not a single number or letter", strconv.Itoa(err.Line), err.Text)
}

// ErrOutbox reports a case whose outbox differs from the expected one.
type ErrOutbox struct {
	Expected []cpu.Value
	Actual   []cpu.Value
}

func (err *ErrOutbox) Error() string {
	return f("outbox %v, expected %v", hrmio.FormatValues(err.Actual), hrmio.FormatValues(err.Expected))
}
