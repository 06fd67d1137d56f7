package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/internal/engine"
)

func TestLoad_EmptyPathUsesBuiltins(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultChallenges, got)

	// Callers may not alias the package default.
	got[0] = "changed"
	assert.NotEqual(t, "changed", engine.DefaultChallenges[0])
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "challenges.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
challenges:
  - text: "  Read 20 pages  "
  - text: Solve 3 proofs
`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Read 20 pages", "Solve 3 proofs"}, got)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":     "challenges: []\n",
		"blank":     "challenges:\n  - text: \"  \"\n",
		"duplicate": "challenges:\n  - text: A\n  - text: A\n",
		"unknown":   "challenges:\n  - txt: A\n",
		"tags":      "challenges:\n  - text: A\n    tags: [reading]\n",
		"syntax":    "challenges: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
