package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bwestphal/autocommit/internal/config"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.Default(), Table))

	out := buf.String()
	assert.Contains(t, out, "SETTING")
	assert.Contains(t, out, "auto_commit.threshold")
	assert.Contains(t, out, "5")
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.Default(), Plain))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, len(config.Paths()))
	assert.Contains(t, lines, "auto_commit.threshold = 5")
	assert.Contains(t, lines, "enabled = true")
	assert.Contains(t, lines, "auto_commit.exclude_patterns = *.log, *.tmp, .env*")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.Default(), JSON))

	var cfg config.Config
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cfg))
	assert.Equal(t, *config.Default(), cfg)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.Default(), YAML))

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &cfg))
	assert.Equal(t, *config.Default(), cfg)
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, config.Default(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
