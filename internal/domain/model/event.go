// Package model contains domain models passed between layers.
package model

import "fmt"

// Direction identifies one of the four dance-single panels.
type Direction int

// Panel directions in column order.
const (
	Left Direction = iota
	Down
	Up
	Right
)

// Directions lists all panels in column order.
var Directions = [4]Direction{Left, Down, Up, Right}

// String returns the panel name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Column returns the zero-based column index of the panel.
func (d Direction) Column() int { return int(d) }

// ColumnPattern is one grid line of the 4-panel note field.
// Digit semantics: 0 = empty, 1 = tap or jump head, 2 = hold start, 3 = hold end.
type ColumnPattern [4]byte

// EmptyPattern is a line with no notes.
var EmptyPattern = ColumnPattern{}

// PatternFor returns the single-panel tap pattern for a direction.
func PatternFor(d Direction) ColumnPattern {
	var p ColumnPattern
	p[d.Column()] = 1
	return p
}

// Union combines two patterns column-wise, keeping the maximum digit in
// each column. Used both for jump construction and for merging events
// that quantize onto the same grid line.
func (p ColumnPattern) Union(other ColumnPattern) ColumnPattern {
	var out ColumnPattern
	for i := range p {
		out[i] = p[i]
		if other[i] > out[i] {
			out[i] = other[i]
		}
	}
	return out
}

// WithDigit returns a copy of the pattern with every non-zero column
// rewritten to the given digit. Derives hold start (2) and hold end (3)
// lines from a tap pattern.
func (p ColumnPattern) WithDigit(digit byte) ColumnPattern {
	var out ColumnPattern
	for i := range p {
		if p[i] != 0 {
			out[i] = digit
		}
	}
	return out
}

// IsEmpty reports whether no column carries a note.
func (p ColumnPattern) IsEmpty() bool { return p == EmptyPattern }

// String renders the pattern as a 4-digit line, e.g. "1000".
func (p ColumnPattern) String() string {
	b := [4]byte{'0' + p[0], '0' + p[1], '0' + p[2], '0' + p[3]}
	return string(b[:])
}

// StepKind classifies a step event.
type StepKind int

// Step kinds.
const (
	Tap StepKind = iota
	Jump
	Hold
)

// String returns the kind name.
func (k StepKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case Jump:
		return "jump"
	case Hold:
		return "hold"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// StepEvent is a single timed player action. Events are immutable once
// sequenced; a hold carries its end time in addition to its start.
type StepEvent struct {
	TimeSeconds float64
	Kind        StepKind
	// Directions holds 1 panel for Tap/Hold and exactly 2 for Jump.
	Directions []Direction
	Pattern    ColumnPattern
	// HoldEndSeconds is set only when Kind == Hold and is strictly
	// greater than TimeSeconds.
	HoldEndSeconds float64
}
