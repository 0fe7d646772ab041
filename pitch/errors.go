// File: errors.go
// Role: sentinel and typed errors for pitch and key parsing.

package pitch

import (
	"errors"
	"fmt"
)

// ErrInvalidPitchName indicates malformed pitch or key text.
// Match with errors.Is; the concrete value is *InvalidNameError.
var ErrInvalidPitchName = errors.New("pitch: invalid pitch name")

// InvalidNameError describes why a pitch or key name was rejected.
type InvalidNameError struct {
	// Name is the text as given by the caller.
	Name string

	// Reason is a short human-readable cause ("unknown letter", "mixed accidentals", ...).
	Reason string
}

// Error implements error.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("pitch: invalid pitch name %q: %s", e.Name, e.Reason)
}

// Is reports ErrInvalidPitchName as the sentinel for every InvalidNameError.
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidPitchName
}

func invalidName(name, reason string) error {
	return &InvalidNameError{Name: name, Reason: reason}
}
