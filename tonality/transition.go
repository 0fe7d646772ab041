package tonality

import "github.com/katalvlaran/tonality/pitch"

// Class is a mode-transition class: the third tensor coordinate.
type Class uint8

const (
	// MajorToMajor is major → major.
	MajorToMajor Class = iota
	// MajorToMinor is major → minor.
	MajorToMinor
	// MinorToMajor is minor → major.
	MinorToMajor
	// MinorToMinor is minor → minor.
	MinorToMinor
)

// ClassCount is the number of mode-transition classes.
const ClassCount = 4

// Transition returns the class of a move from mode from to mode to:
// 2*from + to, with Major = 0 and Minor = 1.
func Transition(from, to pitch.Mode) Class {
	return Class(2*int(from) + int(to))
}

// From returns the source mode.
func (c Class) From() pitch.Mode { return pitch.Mode(c / 2) }

// To returns the target mode.
func (c Class) To() pitch.Mode { return pitch.Mode(c % 2) }

// String renders "major→minor" and so on.
func (c Class) String() string { return c.From().String() + "→" + c.To().String() }
