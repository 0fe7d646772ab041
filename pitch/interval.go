// File: interval.go
// Role: ascending Interval between two pitches.

package pitch

import "fmt"

// Interval is the ascending distance between two pitches, with both components
// already reduced: Diatonic in [0,7), Chromatic in [0,12).
type Interval struct {
	Diatonic  int
	Chromatic int
}

// Between returns the ascending interval from start to end.
func Between(start, end Pitch) Interval {
	return Interval{
		Diatonic:  mod(int(end.diatonic)-int(start.diatonic), DiatonicSteps),
		Chromatic: mod(int(end.chromatic)-int(start.chromatic), ChromaticSteps),
	}
}

// Number is the conventional interval number (unison = 1, second = 2, ...).
func (iv Interval) Number() int { return iv.Diatonic + 1 }

// Equals reports component-wise equality.
func (iv Interval) Equals(o Interval) bool { return iv == o }

// Hash returns a dense hash in [0, 84).
func (iv Interval) Hash() int { return iv.Diatonic*ChromaticSteps + iv.Chromatic }

// String renders "(diatonic, chromatic)".
func (iv Interval) String() string { return fmt.Sprintf("(%d, %d)", iv.Diatonic, iv.Chromatic) }
