// Package io converts between the text of the outside world and the
// values of the mailbox machine: the words that seed the inbox and the
// floor, and the printed outbox.
//
// A word that reads as a decimal integer, or a $(...) expression that
// evaluates to one, is a Number. Any other word is free text from which
// every ASCII letter becomes an uppercase Letter.
package io

import (
	"maps"
	"slices"

	"github.com/ezrec/hrm/cpu"
)

// Seed is the initial machine state supplied from outside a run.
type Seed struct {
	Inbox  []cpu.Value
	Memory cpu.Memory
}

// Merge returns a copy of the seed with other's inbox appended and
// other's tiles placed over its own.
func (seed Seed) Merge(other Seed) (merged Seed) {
	merged.Inbox = slices.Concat(seed.Inbox, other.Inbox)
	merged.Memory = cpu.Memory{}
	maps.Copy(merged.Memory, seed.Memory)
	maps.Copy(merged.Memory, other.Memory)

	return
}
