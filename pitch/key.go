// File: key.go
// Role: Mode and Key (tonic pitch + mode), key text encoding and the dense key index.
// Determinism:
//   - AllKeys() enumerates in ascending (diatonic, chromatic, mode) order, Major before Minor.
// AI-HINT (file):
//   - Key.Index() is dense in [0, KeyCount); KeyFromIndex inverts it.
//   - Key text: upper-case letter = major, lower-case letter = minor.

package pitch

import (
	"errors"
	"sort"
	"strings"
)

// Mode is the key mode.
type Mode uint8

const (
	// Major mode. Written with an upper-case letter.
	Major Mode = iota

	// Minor mode. Written with a lower-case letter.
	Minor
)

// ModeCount is the number of modes.
const ModeCount = 2

// KeyCount is the number of distinct keys: 7 letters * 12 semitones * 2 modes.
const KeyCount = DiatonicSteps * ChromaticSteps * ModeCount

// ErrInvalidMode indicates unrecognized mode text.
var ErrInvalidMode = errors.New("pitch: invalid mode")

// String returns "major" or "minor".
func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}

	return "major"
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Minor {
		return Major
	}

	return Minor
}

// ParseMode accepts "major"/"M" and "minor"/"m" (full words case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch s {
	case "M":
		return Major, nil
	case "m":
		return Minor, nil
	}
	switch strings.ToLower(s) {
	case "major", "maj":
		return Major, nil
	case "minor", "min":
		return Minor, nil
	}

	return Major, ErrInvalidMode
}

// Key is a tonic pitch together with a mode. Key is comparable and is the node
// type of the modulation graph.
type Key struct {
	pitch Pitch
	mode  Mode
}

// NewKey returns the key at (diatonic, chromatic, mode), coordinates reduced mod 7/12.
func NewKey(diatonic, chromatic int, mode Mode) Key {
	return Key{pitch: FromCoordinates(diatonic, chromatic), mode: mode}
}

// ParseKey parses key text: the case of the first letter selects the mode
// ("C#" = C-sharp major, "eb" = E-flat minor); the remainder follows FromName.
// Octave digits are dropped first, wherever they appear ("4c" = C minor).
func ParseKey(text string) (Key, error) {
	name := stripDigits(strings.TrimSpace(text))
	if name == "" {
		return Key{}, invalidName(text, "empty name")
	}
	mode := Major
	first := name[0]
	if first >= 'a' && first <= 'z' {
		mode = Minor
		first -= 'a' - 'A'
	}
	p, err := FromName(string(first) + name[1:])
	if err != nil {
		var ine *InvalidNameError
		if errors.As(err, &ine) {
			return Key{}, invalidName(text, ine.Reason)
		}

		return Key{}, err
	}

	return Key{pitch: p, mode: mode}, nil
}

// MustParseKey is ParseKey for literals known to be valid; it panics otherwise.
func MustParseKey(text string) Key {
	k, err := ParseKey(text)
	if err != nil {
		panic(err)
	}

	return k
}

// KeyFromIndex inverts Key.Index. idx is reduced modulo KeyCount.
func KeyFromIndex(idx int) Key {
	idx = mod(idx, KeyCount)
	dia := idx / (ChromaticSteps * ModeCount)
	rest := idx % (ChromaticSteps * ModeCount)

	return NewKey(dia, rest/ModeCount, Mode(rest%ModeCount))
}

// AllKeys returns all 168 keys in ascending (diatonic, chromatic, mode) order,
// which is also ascending Index order.
func AllKeys() []Key {
	keys := make([]Key, 0, KeyCount)
	for dia := 0; dia < DiatonicSteps; dia++ {
		for chro := 0; chro < ChromaticSteps; chro++ {
			keys = append(keys, NewKey(dia, chro, Major), NewKey(dia, chro, Minor))
		}
	}

	return keys
}

// SortedKeyNames returns the canonical names of all keys ordered by (length, name),
// so plain letters come first and heavily altered spellings last.
func SortedKeyNames() []string {
	names := make([]string, 0, KeyCount)
	for _, k := range AllKeys() {
		names = append(names, k.String())
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}

		return names[i] < names[j]
	})

	return names
}

// Pitch returns the tonic.
func (k Key) Pitch() Pitch { return k.pitch }

// Mode returns the mode.
func (k Key) Mode() Mode { return k.mode }

// Diatonic returns the tonic letter index.
func (k Key) Diatonic() int { return k.pitch.Diatonic() }

// Chromatic returns the tonic semitone.
func (k Key) Chromatic() int { return k.pitch.Chromatic() }

// Index returns the dense key index diatonic*24 + chromatic*2 + mode.
func (k Key) Index() int {
	return (k.Diatonic()*ChromaticSteps+k.Chromatic())*ModeCount + int(k.mode)
}

// Parallel returns the key with the same tonic and the opposite mode.
func (k Key) Parallel() Key { return Key{pitch: k.pitch, mode: k.mode.Opposite()} }

// Transpose moves the tonic by (diatonic, chromatic) steps and sets the mode.
func (k Key) Transpose(diatonic, chromatic int, mode Mode) Key {
	return NewKey(k.Diatonic()+diatonic, k.Chromatic()+chromatic, mode)
}

// String returns the canonical key text: upper case for major, lower case for minor.
func (k Key) String() string {
	name := k.pitch.Name()
	if k.mode == Minor {
		return strings.ToLower(name[:1]) + name[1:]
	}

	return name
}

// Describe returns a long form such as "F# major" or "Eb minor".
func (k Key) Describe() string { return k.pitch.Name() + " " + k.mode.String() }

// MarshalText encodes the key as its canonical name.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a key name as ParseKey does.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
