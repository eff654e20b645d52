package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/hrm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrEmptyHands = errors.New(f("Empty hands"))
)

// ErrEmptyTile is returned when an operation needs a tile that holds nothing.
type ErrEmptyTile Tile

func (et ErrEmptyTile) Error() string {
	return f("Empty tile: %v", strconv.FormatUint(uint64(et), 10))
}

func (et ErrEmptyTile) Is(err error) (ok bool) {
	_, ok = err.(ErrEmptyTile)
	return
}

// ErrBadTileAddress is returned when an indirect address points through a
// tile that does not hold a usable number.
type ErrBadTileAddress Tile

func (eb ErrBadTileAddress) Error() string {
	return f("Bad tile address: %v", strconv.FormatUint(uint64(eb), 10))
}

func (eb ErrBadTileAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrBadTileAddress)
	return
}

// ErrInvalidOperation is returned when an operand type rule is broken.
type ErrInvalidOperation string

func (ei ErrInvalidOperation) Error() string {
	return string(ei)
}

func (ei ErrInvalidOperation) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidOperation)
	return
}

// ErrSyntax locates the token that made a program text unparsable.
type ErrSyntax struct {
	LineNo int
	Word   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Word, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

var (
	// Assembler diagnostics
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrTargetMissing      = errors.New(f("target missing"))
	ErrCommentInvalid     = errors.New(f("comment invalid"))
	ErrDefineLonely       = errors.New(f("DEFINE without ';'"))
)

// ErrLabelMissing reports a jump to a label that is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}
