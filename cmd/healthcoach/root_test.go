package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "healthcoach v")
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		configFile = "/tmp/custom.yaml"
		defer func() { configFile = "" }()

		assert.Equal(t, "/tmp/custom.yaml", resolveConfigPath())
	})

	t.Run("home env var", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HEALTHCOACH_HOME", home)

		assert.Equal(t, filepath.Join(home, "config.yaml"), resolveConfigPath())
	})
}
