package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConfigWithEditor(t *testing.T, editor string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EDITOR", editor)

	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	err := runConfig(configCmd, nil)
	return buf.String(), err
}

func TestRunConfig_EditorFoundOnPath(t *testing.T) {
	out, err := runConfigWithEditor(t, "true")
	require.NoError(t, err)
	assert.Contains(t, out, "Opening ")
	assert.Contains(t, out, "with true")
	assert.NotContains(t, out, "Could not")

	home, _ := os.UserHomeDir()
	_, statErr := os.Stat(filepath.Join(home, ".config", "hebdo", "config.toml"))
	assert.NoError(t, statErr)
}

func TestRunConfig_EditorFailureIsReturned(t *testing.T) {
	_, err := runConfigWithEditor(t, "false")
	assert.Error(t, err)
}

func TestRunConfig_MissingEditorPrintsPath(t *testing.T) {
	out, err := runConfigWithEditor(t, "hebdo-no-such-editor")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not find editor")
	assert.Contains(t, out, "config.toml")
}
