package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalPublish_Defaults(t *testing.T) {
	cfg, err := LoadLocalPublish(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, LocalPublish{
		BuildScript: "build",
		TestScript:  "test",
		Branch:      "main",
		Remote:      "origin",
	}, cfg)
}

func TestLoadLocalPublish_File(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "local-publish": {
    "npm-build": "build:lib",
    "npm-build-storybook": "build-storybook",
    "deploy": "firebase deploy --only hosting",
    "enable-npm-publish": true
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := LoadLocalPublish(dir)
	require.NoError(t, err)

	assert.Equal(t, "build:lib", cfg.BuildScript)
	assert.Equal(t, "test", cfg.TestScript)
	assert.Equal(t, "build-storybook", cfg.StorybookScript)
	assert.Equal(t, "firebase deploy --only hosting", cfg.DeployCommand)
	assert.True(t, cfg.EnableNpmPublish)
	assert.Equal(t, "main", cfg.Branch)
}

func TestLoadLocalPublish_EnvOverride(t *testing.T) {
	t.Setenv("JVDL_LOCAL_PUBLISH_BRANCH", "release")

	cfg, err := LoadLocalPublish(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Branch)
}

func TestLoadLocalPublish_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"local-publish": `), 0o644))

	_, err := LoadLocalPublish(dir)
	assert.Error(t, err)
}

func TestLocalPublish_Validate(t *testing.T) {
	assert.Error(t, LocalPublish{TestScript: "test", Branch: "main", Remote: "origin"}.Validate())
	assert.Error(t, LocalPublish{BuildScript: "build", TestScript: "test", Remote: "origin"}.Validate())
	assert.NoError(t, LocalPublish{BuildScript: "build", TestScript: "test", Branch: "main", Remote: "origin"}.Validate())
}
