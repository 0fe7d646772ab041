// Package pitch models pitch spelling, intervals and musical keys over two
// modular coordinates: a diatonic letter index (mod 7) and a chromatic
// semitone index (mod 12).
//
// Overview:
//
//   - Pitch is an immutable (diatonic, chromatic) pair. Equality and hashing
//     depend only on the pair, so "C##" and "D" are different pitches, while
//     "C" and a C with twelve sharps are the same pitch.
//   - Interval is always ascending: both deltas are reduced into [0,7) / [0,12).
//   - Key adds a Mode (major or minor) to a pitch; there are 7*12*2 = 168 keys.
//
// Spelling:
//
//	FromCoordinates(d, c) spells a pair with the fewest accidentals (at most six),
//	preferring sharps when both spellings need exactly six. FromName parses a
//	letter (C D E F G A B) followed by an accidental run of '#' or flats ('b' or '-'),
//	ignoring octave digits ("C#4" == "C#").
//
// Key text encoding:
//
//	Letter case selects the mode: "C#" is C-sharp major, "eb" is E-flat minor.
//
// Errors:
//
//	ErrInvalidPitchName - malformed pitch or key text; the concrete value is an
//	                      *InvalidNameError carrying the input and the reason.
//
// Example:
//
//	c, _ := pitch.FromName("C")
//	e, _ := pitch.FromName("E")
//	iv := pitch.Between(c, e) // (2, 4): a major third
//	b := pitch.FromCoordinates(4, 7).Add(iv)
//	fmt.Println(iv, b.Name()) // (2, 4) B
package pitch
