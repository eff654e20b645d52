// Package cpu implements the assembler and processor of the mailbox machine.
//
// The machine has a single accumulator ("hands") holding at most one Value,
// a sparse floor of numbered tiles, an inbox queue, an outbox sequence and
// a counter selecting the next instruction. A Value is either a Number or
// an uppercase Letter; the only arithmetic permitted on letters is
// subtracting one letter from another.
//
// The assembler reads the line oriented program text, strips comments,
// binds labels to instruction indexes in a first pass and links jumps to
// those indexes in a second pass.
package cpu
