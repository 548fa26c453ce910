package standardize

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayvee-digital-labs/jvdl/internal/runner"
	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

const (
	vrBuild    = "docker build -t cypress-vr-tests -f Dockerfile.cypress ."
	projectPkg = "{\n  \"name\": \"web\",\n  \"scripts\": {\n    \"dev\": \"next dev\"\n  }\n}\n"
	projectTS  = "{\n  \"compilerOptions\": {\n    \"strict\": false,\n    \"types\": [\n      \"node\"\n    ]\n  }\n}\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		".husky/.commit-msg":                "npx --no -- commitlint --edit $1\n",
		".husky/.pre-push":                  "npm test\n",
		"copilot-workspace/instructions.md": "# Copilot\n",
		"cypress/support/e2e.ts":            "import './commands'\n",
		"cypress/support/commands.ts":       "export {}\n",
		".nvmrc":                            "20\n",
		"commitlint.config.js":              "module.exports = { extends: ['@commitlint/config-conventional'] }\n",
		"cypress.config.ts":                 "export default {}\n",
		"package.json":                      `{"scripts":{"test:vr":"RUN_VR=true cypress run"},"config":{"commitizen":{"path":"cz-conventional-changelog"}}}`,
		"tsconfig.json":                     `{"compilerOptions":{"strict":true,"types":["cypress","node"]}}`,
		"Dockerfile.cypress":                "FROM cypress/included:13.6.0\n",
		".prettierrc":                       "{}\n",
		".prettierignore":                   "node_modules\n",
		".vscode/settings.json":             "{}\n",
		".vscode/extensions.json":           "{}\n",
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(rel)), content)
	}
	return dir
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), projectPkg)
	writeFile(t, filepath.Join(dir, "tsconfig.json"), projectTS)
	writeFile(t, filepath.Join(dir, "src", "app.tsx"), "export {}\n")
	return dir
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	require.NoError(t, filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			out[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		out[rel] = string(data)
		return err
	}))
	return out
}

func TestStandardizer_Run(t *testing.T) {
	templates := newTemplates(t)
	project := newProject(t)
	rec := shell.NewRecorder()

	s := New(rec, runner.New(nil, nil), nil, Options{Dir: project, TemplateDir: templates})
	res, err := s.Run(context.Background(), DefaultManifest())
	require.NoError(t, err)
	assert.Nil(t, res.Rollback)
	assert.Equal(t, "pass", res.Summary.Status)

	lines := rec.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "docker --version", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "npm install @commitlint/config-conventional"))
	assert.True(t, strings.HasSuffix(lines[1], "rimraf --save-dev"))
	assert.Equal(t, "npx husky install", lines[2])
	assert.Equal(t, vrBuild, lines[3])

	for _, rel := range []string{
		".husky/commit-msg", ".husky/pre-push", "copilot-workspace/instructions.md",
		"cypress/support/e2e.ts", ".nvmrc", "commitlint.config.js", "cypress.config.ts",
		"Dockerfile.cypress", ".prettierrc", ".prettierignore", ".vscode/settings.json",
	} {
		assert.FileExists(t, filepath.Join(project, filepath.FromSlash(rel)))
	}

	pkg, err := os.ReadFile(filepath.Join(project, "package.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"web","scripts":{"dev":"next dev","test:vr":"RUN_VR=true cypress run"},"config":{"commitizen":{"path":"cz-conventional-changelog"}}}`, string(pkg))

	ts, err := os.ReadFile(filepath.Join(project, "tsconfig.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"compilerOptions":{"strict":true,"types":["cypress","node"]}}`, string(ts))
}

func TestStandardizer_Run_FailureRollsBack(t *testing.T) {
	templates := newTemplates(t)
	project := newProject(t)
	before := snapshot(t, project)
	rec := shell.NewRecorder().Fail(vrBuild, 1)

	s := New(rec, runner.New(nil, nil), nil, Options{Dir: project, TemplateDir: templates})
	res, err := s.Run(context.Background(), DefaultManifest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRolledBack)
	assert.ErrorIs(t, err, shell.ErrExternalCommand)
	require.NotNil(t, res.Rollback)
	assert.Empty(t, res.Rollback.Warnings)
	assert.NoError(t, res.ResetErr)
	assert.Equal(t, "container-build cypress-vr-tests", res.Summary.Failed)

	assert.Equal(t, before, snapshot(t, project))

	lines := rec.Lines()
	assert.Equal(t, []string{vrBuild, "git reset --hard", "npm install"}, lines[len(lines)-3:])
}

func TestStandardizer_Run_SkipReset(t *testing.T) {
	templates := newTemplates(t)
	project := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(templates, "tsconfig.json")))
	rec := shell.NewRecorder()

	s := New(rec, runner.New(nil, nil), nil, Options{Dir: project, TemplateDir: templates, SkipReset: true})
	res, err := s.Run(context.Background(), DefaultManifest())

	require.ErrorIs(t, err, ErrRolledBack)
	assert.Equal(t, "merge-json tsconfig.json", res.Summary.Failed)
	assert.NotContains(t, rec.Lines(), "git reset --hard")
	assert.NotContains(t, rec.Lines(), vrBuild)

	pkg, readErr := os.ReadFile(filepath.Join(project, "package.json"))
	require.NoError(t, readErr)
	assert.Equal(t, projectPkg, string(pkg))
	assert.NoDirExists(t, filepath.Join(project, "cypress"))
}

func TestStandardizer_Dirty(t *testing.T) {
	opts := Options{Dir: newProject(t), TemplateDir: newTemplates(t)}

	rec := shell.NewRecorder().Stub("git status --porcelain", " M src/app.tsx\n")
	assert.True(t, New(rec, runner.New(nil, nil), nil, opts).Dirty(context.Background()))
	assert.Equal(t, []string{"git status --porcelain"}, rec.Lines())

	clean := shell.NewRecorder()
	assert.False(t, New(clean, runner.New(nil, nil), nil, opts).Dirty(context.Background()))

	notRepo := shell.NewRecorder().Fail("git status --porcelain", 128)
	assert.False(t, New(notRepo, runner.New(nil, nil), nil, opts).Dirty(context.Background()))
}

func TestStandardizer_Run_Preconditions(t *testing.T) {
	templates := newTemplates(t)

	t.Run("missing package.json", func(t *testing.T) {
		rec := shell.NewRecorder()
		_, err := New(rec, runner.New(nil, nil), nil, Options{Dir: t.TempDir(), TemplateDir: templates}).
			Run(context.Background(), DefaultManifest())
		assert.ErrorIs(t, err, ErrPrecondition)
		assert.Empty(t, rec.Calls)
	})

	t.Run("missing template directory", func(t *testing.T) {
		rec := shell.NewRecorder()
		_, err := New(rec, runner.New(nil, nil), nil, Options{Dir: newProject(t), TemplateDir: filepath.Join(templates, "nope")}).
			Run(context.Background(), DefaultManifest())
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("container tool unavailable", func(t *testing.T) {
		rec := shell.NewRecorder().Fail("docker --version", 127)
		_, err := New(rec, runner.New(nil, nil), nil, Options{Dir: newProject(t), TemplateDir: templates}).
			Run(context.Background(), DefaultManifest())
		assert.ErrorIs(t, err, ErrPrecondition)
		assert.Equal(t, []string{"docker --version"}, rec.Lines())
	})
}
