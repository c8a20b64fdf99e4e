package testfixtures

import (
	"strconv"
	"sync/atomic"
)

// CommandIDs hands out predictable command correlation ids ("cmd-1",
// "cmd-2", ...) in place of random UUIDs so log assertions stay stable.
type CommandIDs struct {
	prefix string
	issued atomic.Uint64
}

// NewCommandIDs returns a sequence using prefix, or "cmd" when it is empty.
func NewCommandIDs(prefix string) *CommandIDs {
	if prefix == "" {
		prefix = "cmd"
	}
	return &CommandIDs{prefix: prefix}
}

// Next issues the following id.
func (c *CommandIDs) Next() string {
	return c.prefix + "-" + strconv.FormatUint(c.issued.Add(1), 10)
}

// Issued reports how many ids have been handed out.
func (c *CommandIDs) Issued() int {
	return int(c.issued.Load())
}
