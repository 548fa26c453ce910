package standardize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManifest_Valid(t *testing.T) {
	m := DefaultManifest()
	require.NoError(t, m.Validate())
	assert.Len(t, m.Steps, 16)
	assert.Equal(t, ActionInstallDev, m.Steps[0].Action)
	assert.Equal(t, ActionCopyDir, m.Steps[len(m.Steps)-1].Action)
}

func TestLoadManifest_FallsBackToDefault(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultManifest(), m)
}

func TestLoadManifest_File(t *testing.T) {
	dir := t.TempDir()
	content := `steps:
  - action: copy
    source: .nvmrc
  - action: merge-json
    source: templates/package.json
    target: package.json
  - action: container-build
    tag: vr
    file: Dockerfile.cypress
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	require.Len(t, m.Steps, 3)
	assert.Equal(t, ".nvmrc", m.Steps[0].target())
	assert.Equal(t, "package.json", m.Steps[1].target())
	assert.Equal(t, "vr", m.Steps[2].Tag)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":           "steps: []\n",
		"unknown action":  "steps:\n  - action: delete\n    source: x\n",
		"unknown field":   "steps:\n  - action: copy\n    source: x\n    mode: 0644\n",
		"missing source":  "steps:\n  - action: copy\n",
		"escaping target": "steps:\n  - action: copy\n    source: x\n    target: ../outside\n",
		"absolute source": "steps:\n  - action: copy-dir\n    source: /etc\n",
		"no packages":     "steps:\n  - action: install-dev\n",
		"no tag":          "steps:\n  - action: container-build\n    file: Dockerfile\n",
		"not yaml":        "steps: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest([]byte(in))
			assert.Error(t, err)
		})
	}
}
