package projectroot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, Marker), []byte(`{}`), 0o644))
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = Find(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	// A directory named package.json is not a package root.
	require.NoError(t, os.Mkdir(filepath.Join(dir, Marker), 0o755))

	_, err := Find(dir)
	if err == nil {
		t.Skip("a package.json exists above the temp directory")
	}
	assert.ErrorIs(t, err, ErrNotFound)
}
