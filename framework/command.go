package framework

import (
	"strings"

	"github.com/alessio/shellescape"
)

// CommandBuilder accumulates shell words, quoting each one so that the result can be
// pasted into a terminal.
type CommandBuilder []string

func (b *CommandBuilder) Add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b CommandBuilder) String() string {
	return strings.Join(b, " ")
}
