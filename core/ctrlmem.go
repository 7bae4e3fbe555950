package core

import (
	"fmt"
	"math/bits"

	"github.com/sarchlab/tilesim/cgra"
)

// ConfigErrorKind classifies a rejected configuration write.
type ConfigErrorKind int

const (
	// OutOfRange means the address or a route selector is beyond its limit.
	OutOfRange ConfigErrorKind = iota
	// BadWord means the word does not carry one selector per output line.
	BadWord
)

// ConfigurationError reports a configuration write that was rejected. The
// control memory is left unchanged.
type ConfigurationError struct {
	Kind     ConfigErrorKind
	Addr     int
	Line     int
	Selector uint8
	Limit    int
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Kind == BadWord:
		return fmt.Sprintf(
			"config word for address %d has %d routes, want %d",
			e.Addr, e.Line, e.Limit)
	case e.Line < 0:
		return fmt.Sprintf(
			"config address %d out of range [0, %d)", e.Addr, e.Limit)
	default:
		return fmt.Sprintf(
			"config address %d: route selector %d on output line %d exceeds %d",
			e.Addr, e.Selector, e.Line, e.Limit)
	}
}

// CtrlMem stores the configuration words of a tile.
type CtrlMem struct {
	words       []cgra.CtrlWord
	numInLines  int
	numOutLines int
}

// NewCtrlMem creates a control memory whose words route numInLines crossbar
// inputs to numOutLines crossbar outputs. Every slot starts as NAH with no
// routes.
func NewCtrlMem(capacity, numInLines, numOutLines int) *CtrlMem {
	m := &CtrlMem{
		words:       make([]cgra.CtrlWord, capacity),
		numInLines:  numInLines,
		numOutLines: numOutLines,
	}

	for i := range m.words {
		m.words[i] = cgra.NewNAHWord(numOutLines)
	}

	return m
}

// Capacity returns the number of words the memory holds.
func (m *CtrlMem) Capacity() int {
	return len(m.words)
}

// AddrWidth returns the number of bits of a control memory address.
func (m *CtrlMem) AddrWidth() int {
	if len(m.words) <= 1 {
		return 0
	}

	return bits.Len(uint(len(m.words) - 1))
}

// Write stores the word at the address.
func (m *CtrlMem) Write(addr int, word cgra.CtrlWord) error {
	if addr < 0 || addr >= len(m.words) {
		return &ConfigurationError{
			Kind:  OutOfRange,
			Addr:  addr,
			Line:  -1,
			Limit: len(m.words),
		}
	}

	if len(word.Routes) != m.numOutLines {
		return &ConfigurationError{
			Kind:  BadWord,
			Addr:  addr,
			Line:  len(word.Routes),
			Limit: m.numOutLines,
		}
	}

	for i, r := range word.Routes {
		if int(r) > m.numInLines {
			return &ConfigurationError{
				Kind:     OutOfRange,
				Addr:     addr,
				Line:     i,
				Selector: r,
				Limit:    m.numInLines,
			}
		}
	}

	m.words[addr] = word.Clone()

	return nil
}

// Read returns a copy of the word at the address.
func (m *CtrlMem) Read(addr int) cgra.CtrlWord {
	return m.words[addr].Clone()
}
