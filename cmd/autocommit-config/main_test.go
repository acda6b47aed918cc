package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwestphal/autocommit/internal/config"
)

// execute runs the CLI against an isolated settings file and returns stdout
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func testConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestShowPlain(t *testing.T) {
	out, err := execute(t, testConfigPath(t), "show", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "auto_commit.threshold = 5")
	assert.Contains(t, out, "enabled = true")
}

func TestShowRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, testConfigPath(t), "show", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestToggleFlipsSetting(t *testing.T) {
	path := testConfigPath(t)

	out, err := execute(t, path, "toggle", "auto_push.enabled")
	require.NoError(t, err)
	assert.Contains(t, out, "auto_push.enabled = true")

	cfg, _ := config.NewStore(path).Load()
	assert.True(t, cfg.AutoPush.Enabled)

	out, err = execute(t, path, "toggle", "auto_push.enabled")
	require.NoError(t, err)
	assert.Contains(t, out, "auto_push.enabled = false")
}

func TestToggleUnknownPathFails(t *testing.T) {
	_, err := execute(t, testConfigPath(t), "toggle", "no.such.path")
	require.Error(t, err)
}

func TestSetPersistsValue(t *testing.T) {
	path := testConfigPath(t)

	_, err := execute(t, path, "set", "auto_commit.threshold", "10")
	require.NoError(t, err)

	cfg, _ := config.NewStore(path).Load()
	assert.Equal(t, 10, cfg.AutoCommit.Threshold)
}

func TestSetTypeMismatchFails(t *testing.T) {
	path := testConfigPath(t)

	_, err := execute(t, path, "set", "auto_commit.threshold", "sometimes")
	require.Error(t, err)

	// The stored document is untouched
	cfg, _ := config.NewStore(path).Load()
	assert.Equal(t, 5, cfg.AutoCommit.Threshold)
}

func TestResetRestoresDefaults(t *testing.T) {
	path := testConfigPath(t)

	_, err := execute(t, path, "set", "auto_commit.threshold", "42")
	require.NoError(t, err)

	_, err = execute(t, path, "reset")
	require.NoError(t, err)

	cfg, _ := config.NewStore(path).Load()
	assert.Equal(t, config.Default(), cfg)
}
