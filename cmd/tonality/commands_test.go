package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tonality/server"
)

// run executes a fresh root command and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()

	return out.String(), err
}

// TestRootCommand checks command wiring without executing anything.
func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "tonality", root.Use)
	assert.NotEmpty(t, root.Short)

	want := []string{"config", "distance", "keys", "neighbors", "path", "serve", "table", "tensor", "verify", "version"}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
		assert.True(t, c.RunE != nil || c.Run != nil, "%s has no run function", c.Name())
	}
	assert.Subset(t, got, want)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tonality version "+version+"\n", out)
}

func TestDistance(t *testing.T) {
	out, err := run(t, "distance", "C", "a")
	require.NoError(t, err)
	assert.Equal(t, "C -> a : 0.7\n", out)

	out, err = run(t, "distance", "C", "E")
	require.NoError(t, err)
	assert.Equal(t, "C -> E : 1.9\n", out)

	out, err = run(t, "distance", "C", "a", "--relative", "2")
	require.NoError(t, err)
	assert.Equal(t, "C -> a : 2\n", out)

	out, err = run(t, "distance", "C", "G", "--disable", "neighbor,relative,parallel,enharmonic,dominant")
	require.NoError(t, err)
	assert.Equal(t, "C -> G : unreachable\n", out)
}

func TestDistance_JSON(t *testing.T) {
	out, err := run(t, "distance", "C", "c", "--json")
	require.NoError(t, err)

	var resp server.DistanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Distance)
	assert.InDelta(t, 1.3, *resp.Distance, 1e-9)
	assert.True(t, resp.Reachable)
	assert.Equal(t, "c", resp.To)
}

func TestDistance_Errors(t *testing.T) {
	_, err := run(t, "distance", "C")
	assert.Error(t, err)

	_, err = run(t, "distance", "H", "C")
	assert.Error(t, err)

	_, err = run(t, "distance", "C", "a", "--parallel", "-1")
	assert.Error(t, err)

	_, err = run(t, "distance", "C", "a", "--disable", "blues")
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	out, err := run(t, "path", "C", "e")
	require.NoError(t, err)
	assert.Equal(t,
		"C -> a : Relative minor (distance : 0.7)\n"+
			"a -> e : Neighbor (sharp) (distance : 1)\n", out)

	out, err = run(t, "path", "C", "e", "--index", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "C -> G : "), out)

	out, err = run(t, "path", "C", "e", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "# path 1 of 2, total 1.7")
	assert.Contains(t, out, "# path 2 of 2, total 1.7")

	out, err = run(t, "path", "C", "e", "--all", "--max-paths", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "# path 1 of more than 1, total 1.7")
	assert.Contains(t, out, "# truncated at 1 paths")

	out, err = run(t, "path", "C", "e", "--all", "--max-paths", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "truncated")

	out, err = run(t, "path", "C", "C")
	require.NoError(t, err)
	assert.Equal(t, "C\n", out)

	_, err = run(t, "path", "C", "e", "--index", "2")
	assert.Error(t, err)
}

func TestPath_JSONUnreachable(t *testing.T) {
	out, err := run(t, "path", "C", "G", "--json", "--disable", "neighbor,relative,parallel,enharmonic,dominant")
	require.NoError(t, err)

	var resp server.PathsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Reachable)
	assert.Nil(t, resp.Distance)
	assert.Empty(t, resp.Paths)
}

func TestTable(t *testing.T) {
	out, err := run(t, "table", "a")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 169)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))

	found := false
	for _, l := range lines[1:] {
		fields := strings.Fields(l)
		if fields[0] == "C" {
			found = true
			assert.Equal(t, []string{"C", "0.7", "a", "C"}, fields)
		}
	}
	assert.True(t, found)
}

func TestNeighbors(t *testing.T) {
	out, err := run(t, "neighbors", "C")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"C", "0", "C"}, strings.Fields(lines[1]))

	out, err = run(t, "neighbors", "C", "--steps", "0", "--json")
	require.NoError(t, err)
	var resp server.NeighborhoodResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Keys, 168)

	_, err = run(t, "neighbors", "C", "-n", "-2")
	assert.Error(t, err)
}

func TestTensor(t *testing.T) {
	out, err := run(t, "tensor")
	require.NoError(t, err)
	for _, cls := range []string{"major→major", "major→minor", "minor→major", "minor→minor"} {
		assert.Contains(t, out, cls)
	}

	out, err = run(t, "tensor", "--json")
	require.NoError(t, err)
	var resp server.TensorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Values, 7)
	assert.InDelta(t, 0.7, *resp.Values[5][9][1], 1e-9)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 28224 key pairs")

	out, err = run(t, "verify", "--enharmonic", "inf")
	require.NoError(t, err)
	assert.Contains(t, out, "enharmonic=off")
}

func TestKeys(t *testing.T) {
	out, err := run(t, "keys")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 168)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tonality.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  relative: 2\n"), 0o600))

	out, err := run(t, "distance", "C", "a", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "C -> a : 2\n", out)

	// Flags win over the file.
	out, err = run(t, "distance", "C", "a", "-c", path, "--relative", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "C -> a : 0.5\n", out)

	out, err = run(t, "config", "-c", path, "--neighbor", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "relative: 2")
	assert.Contains(t, out, "neighbor: 3")

	_, err = run(t, "distance", "C", "a", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
