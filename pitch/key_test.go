package pitch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tonality/pitch"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want pitch.Key
		str  string
	}{
		{"C", pitch.NewKey(0, 0, pitch.Major), "C"},
		{"C#", pitch.NewKey(0, 1, pitch.Major), "C#"},
		{"eb", pitch.NewKey(2, 3, pitch.Minor), "eb"},
		{"a", pitch.NewKey(5, 9, pitch.Minor), "a"},
		{"b", pitch.NewKey(6, 11, pitch.Minor), "b"},
		{"bb", pitch.NewKey(6, 10, pitch.Minor), "bb"},
		{"Bb", pitch.NewKey(6, 10, pitch.Major), "Bb"},
		{" f# ", pitch.NewKey(3, 6, pitch.Minor), "f#"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			k, err := pitch.ParseKey(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, k)
			require.Equal(t, tc.str, k.String())
		})
	}

	_, err := pitch.ParseKey("h#")
	require.True(t, errors.Is(err, pitch.ErrInvalidPitchName))
	_, err = pitch.ParseKey("")
	require.True(t, errors.Is(err, pitch.ErrInvalidPitchName))
	_, err = pitch.ParseKey("42")
	require.True(t, errors.Is(err, pitch.ErrInvalidPitchName))
}

func TestParseKey_OctaveDigits(t *testing.T) {
	for in, want := range map[string]string{"4c": "c", "C4": "C", "3eb": "eb", "F#5": "F#", "2Bb": "Bb"} {
		k, err := pitch.ParseKey(in)
		require.NoError(t, err, in)
		require.Equal(t, pitch.MustParseKey(want), k, in)
	}
}

func TestAllKeys_IndexAndRoundTrip(t *testing.T) {
	keys := pitch.AllKeys()
	require.Len(t, keys, pitch.KeyCount)

	for i, k := range keys {
		require.Equal(t, i, k.Index(), "AllKeys must be in Index order")
		require.Equal(t, k, pitch.KeyFromIndex(i))

		back, err := pitch.ParseKey(k.String())
		require.NoError(t, err)
		require.Equal(t, k, back, "key text %q", k.String())
	}
}

func TestKey_ParallelAndTranspose(t *testing.T) {
	c := pitch.MustParseKey("C")
	require.Equal(t, pitch.MustParseKey("c"), c.Parallel())
	require.Equal(t, c, c.Parallel().Parallel())
	require.Equal(t, pitch.MustParseKey("G"), c.Transpose(4, 7, pitch.Major))
	require.Equal(t, pitch.MustParseKey("a"), c.Transpose(-2, -3, pitch.Minor))
	require.Equal(t, "Eb minor", pitch.MustParseKey("eb").Describe())
}

func TestSortedKeyNames(t *testing.T) {
	names := pitch.SortedKeyNames()
	require.Len(t, names, pitch.KeyCount)
	require.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "a"}, names[:8])
	for i := 1; i < len(names); i++ {
		require.LessOrEqual(t, len(names[i-1]), len(names[i]))
	}
}

func TestParseMode(t *testing.T) {
	m, err := pitch.ParseMode("minor")
	require.NoError(t, err)
	require.Equal(t, pitch.Minor, m)

	m, err = pitch.ParseMode("M")
	require.NoError(t, err)
	require.Equal(t, pitch.Major, m)

	_, err = pitch.ParseMode("dorian")
	require.ErrorIs(t, err, pitch.ErrInvalidMode)
	require.Equal(t, pitch.Major, pitch.Minor.Opposite())
}
