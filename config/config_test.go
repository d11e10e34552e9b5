package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full match file", func(t *testing.T) {
		path := writeConfig(t, `
name: otd_vs_minimax
games: 4
parallel: 2
time_limit: 80ms
output: out
seed: 7
agents:
  - id: 1
    kind: custom
    heuristic: OTD
    max_depth: 6
  - id: 2
    kind: minimax
`)

		match, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "otd_vs_minimax", match.Name)
		require.Equal(t, 4, match.Games)
		require.Equal(t, 2, match.Parallel)
		require.Equal(t, 80*time.Millisecond, match.TimeLimit)
		require.Equal(t, uint64(7), match.Seed)
		require.Len(t, match.Agents, 2)
		require.Equal(t, "OTD", match.Agents[0].Heuristic)
		require.Equal(t, 6, match.Agents[0].MaxDepth)
		require.Equal(t, "minimax", match.Agents[1].Kind)
	})

	t.Run("missing fields keep their defaults", func(t *testing.T) {
		path := writeConfig(t, "games: 2\n")

		match, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 2, match.Games)
		require.Equal(t, Default().TimeLimit, match.TimeLimit)
		require.Equal(t, Default().Agents, match.Agents)
	})

	t.Run("invalid files are rejected", func(t *testing.T) {
		for name, content := range map[string]string{
			"unknown kind":       "agents: [{id: 1, kind: alien}, {id: 2, kind: random}]\n",
			"unknown heuristic":  "agents: [{id: 1, kind: custom, heuristic: XYZ}, {id: 2, kind: random}]\n",
			"duplicate ids":      "agents: [{id: 1, kind: random}, {id: 1, kind: random}]\n",
			"single agent":       "agents: [{id: 1, kind: random}]\n",
			"depth out of range": "agents: [{id: 1, kind: custom, max_depth: 13}, {id: 2, kind: random}]\n",
			"no games":           "games: 0\n",
			"bad duration":       "time_limit: soon\n",
			"not yaml":           "games: [\n",
		} {
			_, err := Load(writeConfig(t, content))

			require.Error(t, err, name)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, Default().Validate())
	})
}
