package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReplacements(t *testing.T) {
	t.Run("empty path returns no mappings", func(t *testing.T) {
		m, err := LoadReplacements("")
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("parses a mapping table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "teams.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"SKT: T1\nSchalke 04: Schalke 04 Esports\n",
		), 0o600))

		m, err := LoadReplacements(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"SKT":        "T1",
			"Schalke 04": "Schalke 04 Esports",
		}, m)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReplacements(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read mapping file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("key: [unclosed"), 0o600))

		_, err := LoadReplacements(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse mapping file")
	})
}
