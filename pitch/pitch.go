// File: pitch.go
// Role: Pitch value type, parsing (FromName) and canonical spelling (FromCoordinates).
// Determinism:
//   - Spelling is a pure function of (diatonic, chromatic).
// AI-HINT (file):
//   - Pitch is comparable; use it directly as a map key. Equals/Hash exist for callers
//     that want the named form.
//   - Name() is always the canonical spelling, not the text passed to FromName.

package pitch

import (
	"strings"
	"unicode"
)

// Coordinate ranges.
const (
	// DiatonicSteps is the number of letter names (C..B).
	DiatonicSteps = 7

	// ChromaticSteps is the number of semitones in an octave.
	ChromaticSteps = 12

	// maxAccidentals bounds canonical spellings (a tritone either way).
	maxAccidentals = 6
)

// Accidental glyphs accepted by FromName. Canonical spellings use sharpRune and
// flatRune only.
const (
	sharpRune    = '#'
	flatRune     = 'b'
	flatAltRune  = '-'
	letterString = "CDEFGAB"
)

// naturalSemitones maps a diatonic index to the semitone of its natural letter.
var naturalSemitones = [DiatonicSteps]int{0, 2, 4, 5, 7, 9, 11}

// Pitch is a pitch class identified by its diatonic letter index and chromatic
// semitone. The zero value is C.
type Pitch struct {
	diatonic  uint8 // 0..6
	chromatic uint8 // 0..11
}

// FromCoordinates returns the canonically spelled pitch for (diatonic, chromatic).
// Both arguments are reduced modulo 7 and 12 first, so negative values are accepted.
// Complexity: O(1).
func FromCoordinates(diatonic, chromatic int) Pitch {
	return Pitch{
		diatonic:  uint8(mod(diatonic, DiatonicSteps)),
		chromatic: uint8(mod(chromatic, ChromaticSteps)),
	}
}

// FromName parses a pitch name: a letter C..B, then zero or more accidentals,
// all sharps ('#') or all flats ('b' or '-'). Digits anywhere in the text are
// octave markers and are ignored.
//
// Errors:
//   - ErrInvalidPitchName (as *InvalidNameError) on empty text, an unknown letter,
//     an unknown accidental character, or mixed sharps and flats.
func FromName(text string) (Pitch, error) {
	name := stripDigits(text)
	if name == "" {
		return Pitch{}, invalidName(text, "empty name")
	}

	// 1) Letter.
	letter := rune(name[0])
	dia := strings.IndexRune(letterString, letter)
	if dia < 0 {
		return Pitch{}, invalidName(text, "unknown letter")
	}

	// 2) Accidental run.
	acc, err := parseAccidentals(text, name[1:])
	if err != nil {
		return Pitch{}, err
	}

	return FromCoordinates(dia, naturalSemitones[dia]+acc), nil
}

// MustFromName is FromName for literals known to be valid; it panics otherwise.
func MustFromName(text string) Pitch {
	p, err := FromName(text)
	if err != nil {
		panic(err)
	}

	return p
}

// parseAccidentals converts an accidental run into a signed semitone offset.
func parseAccidentals(text, run string) (int, error) {
	var sharps, flats int
	for _, r := range run {
		switch r {
		case sharpRune:
			sharps++
		case flatRune, flatAltRune:
			flats++
		default:
			return 0, invalidName(text, "unknown accidental "+string(r))
		}
	}
	if sharps > 0 && flats > 0 {
		return 0, invalidName(text, "mixed accidentals")
	}

	return sharps - flats, nil
}

// Diatonic returns the letter index, 0 (C) through 6 (B).
func (p Pitch) Diatonic() int { return int(p.diatonic) }

// Chromatic returns the semitone index, 0 through 11.
func (p Pitch) Chromatic() int { return int(p.chromatic) }

// Letter returns the natural letter name.
func (p Pitch) Letter() string { return letterString[p.diatonic : p.diatonic+1] }

// Accidentals returns the signed accidental count of the canonical spelling:
// positive for sharps, negative for flats, within [-5, 6].
func (p Pitch) Accidentals() int {
	count := mod(int(p.chromatic)-naturalSemitones[p.diatonic], ChromaticSteps)
	if count <= maxAccidentals {
		return count
	}

	return count - ChromaticSteps
}

// Name returns the canonical spelling, e.g. "C", "F#", "Bb", "E####".
func (p Pitch) Name() string {
	acc := p.Accidentals()
	if acc >= 0 {
		return p.Letter() + strings.Repeat(string(sharpRune), acc)
	}

	return p.Letter() + strings.Repeat(string(flatRune), -acc)
}

// String implements fmt.Stringer with the canonical spelling.
func (p Pitch) String() string { return p.Name() }

// Equals reports whether p and o share diatonic and chromatic coordinates.
func (p Pitch) Equals(o Pitch) bool { return p == o }

// Hash returns a dense hash in [0, 84) derived from the coordinates only.
func (p Pitch) Hash() int { return int(p.diatonic)*ChromaticSteps + int(p.chromatic) }

// Add transposes p upward by iv.
func (p Pitch) Add(iv Interval) Pitch {
	return FromCoordinates(int(p.diatonic)+iv.Diatonic, int(p.chromatic)+iv.Chromatic)
}

// stripDigits drops octave markers.
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}

		return r
	}, s)
}

// mod is the non-negative remainder.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}

	return a
}
