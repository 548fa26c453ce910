package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

type harness struct {
	root   *cobra.Command
	rec    *shell.Recorder
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newHarness builds a root command that runs external tools against rec.
// stdin, when non-empty, is served from a file as operator input.
func newHarness(t *testing.T, rec *shell.Recorder, stdin string) *harness {
	t.Helper()
	a := &app{newRunner: func(*zap.Logger) shell.CommandRunner { return rec }}
	if stdin != "" {
		path := filepath.Join(t.TempDir(), "stdin")
		require.NoError(t, os.WriteFile(path, []byte(stdin), 0o600))
		f, err := os.Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		a.stdin = f
	}

	h := &harness{root: newRootCmd(a), rec: rec, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.root.SetOut(h.stdout)
	h.root.SetErr(h.stderr)
	return h
}

func (h *harness) run(args ...string) error {
	h.root.SetArgs(args)
	return h.root.Execute()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
