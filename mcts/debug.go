//go:build debug

package mcts

import (
	"bytes"
	"fmt"
)

// lumberjack collects search traces when built with the debug tag. Without
// the tag it compiles down to nothing (see release.go).
type lumberjack struct {
	*bytes.Buffer
}

func makeLumberJack() lumberjack {
	return lumberjack{Buffer: new(bytes.Buffer)}
}

func (l *lumberjack) log(msg string, args ...interface{}) {
	fmt.Fprintf(l.Buffer, msg, args...)
	l.WriteByte('\n')
}

func (l lumberjack) Log() string { return l.String() }

func (l *lumberjack) Reset() { l.Buffer.Reset() }
