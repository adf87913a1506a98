package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_DefaultsWithoutFile(t *testing.T) {
	settings, err := LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", settings.Server.Host)
	assert.Equal(t, "8080", settings.Server.Port)
	assert.Empty(t, settings.Groq.Model)
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "server:\n  port: \"9090\"\ngroq:\n  model: llama-3.3-70b-versatile\n  temperature: 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", settings.Server.Host)
	assert.Equal(t, "9090", settings.Server.Port)
	assert.Equal(t, "llama-3.3-70b-versatile", settings.Groq.Model)
	assert.Equal(t, 0.3, settings.Groq.Temperature)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
