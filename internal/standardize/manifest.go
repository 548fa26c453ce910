package standardize

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional manifest name inside a template directory.
const ManifestFile = "standardize.yaml"

// Action names a manifest step.
type Action string

const (
	ActionInstallDev     Action = "install-dev"
	ActionNpx            Action = "npx"
	ActionCopy           Action = "copy"
	ActionCopyDir        Action = "copy-dir"
	ActionMergeJSON      Action = "merge-json"
	ActionContainerBuild Action = "container-build"
)

// Step is one manifest entry. Source is relative to the template
// directory and Target relative to the project; Target defaults to Source.
type Step struct {
	Action   Action   `yaml:"action"`
	Source   string   `yaml:"source,omitempty"`
	Target   string   `yaml:"target,omitempty"`
	Packages []string `yaml:"packages,omitempty"`
	Args     []string `yaml:"args,omitempty"`
	Tag      string   `yaml:"tag,omitempty"`
	File     string   `yaml:"file,omitempty"`
}

// Manifest lists the standardization steps in execution order.
type Manifest struct {
	Steps []Step `yaml:"steps"`
}

// DefaultManifest returns the built-in web-app standard.
func DefaultManifest() Manifest {
	return Manifest{Steps: []Step{
		{Action: ActionInstallDev, Packages: []string{
			"@commitlint/config-conventional",
			"@jayvee-digital-labs/scripts",
			"@simonsmith/cypress-image-snapshot",
			"@testing-library/cypress",
			"commitizen",
			"commitlint",
			"cypress",
			"husky",
			"prettier",
			"rimraf",
		}},
		{Action: ActionNpx, Args: []string{"husky", "install"}},
		{Action: ActionCopy, Source: ".husky/.commit-msg", Target: ".husky/commit-msg"},
		{Action: ActionCopy, Source: ".husky/.pre-push", Target: ".husky/pre-push"},
		{Action: ActionCopyDir, Source: "copilot-workspace"},
		{Action: ActionCopyDir, Source: "cypress"},
		{Action: ActionCopy, Source: ".nvmrc"},
		{Action: ActionCopy, Source: "commitlint.config.js"},
		{Action: ActionCopy, Source: "cypress.config.ts"},
		{Action: ActionMergeJSON, Source: "package.json"},
		{Action: ActionMergeJSON, Source: "tsconfig.json"},
		{Action: ActionCopy, Source: "Dockerfile.cypress"},
		{Action: ActionContainerBuild, Tag: "cypress-vr-tests", File: "Dockerfile.cypress"},
		{Action: ActionCopy, Source: ".prettierrc"},
		{Action: ActionCopy, Source: ".prettierignore"},
		{Action: ActionCopyDir, Source: ".vscode"},
	}}
}

// LoadManifest reads ManifestFile from templateDir, falling back to
// DefaultManifest when the file does not exist.
func LoadManifest(templateDir string) (Manifest, error) {
	path := filepath.Join(templateDir, ManifestFile)
	data, err := os.ReadFile(path) //nolint:gosec // G304: template directory chosen by the operator
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks that every step carries the fields its action needs and
// that no path escapes its root.
func (m Manifest) Validate() error {
	if len(m.Steps) == 0 {
		return errors.New("manifest has no steps")
	}
	for i, s := range m.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionInstallDev:
		if len(s.Packages) == 0 {
			return errors.New("packages required")
		}
	case ActionNpx:
		if len(s.Args) == 0 {
			return errors.New("args required")
		}
	case ActionCopy, ActionCopyDir, ActionMergeJSON:
		if s.Source == "" {
			return errors.New("source required")
		}
		if err := checkRelative(s.Source); err != nil {
			return err
		}
		if err := checkRelative(s.target()); err != nil {
			return err
		}
	case ActionContainerBuild:
		if s.Tag == "" || s.File == "" {
			return errors.New("tag and file required")
		}
		if err := checkRelative(s.File); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

func (s Step) target() string {
	if s.Target != "" {
		return s.Target
	}
	return s.Source
}

func checkRelative(p string) error {
	if !filepath.IsLocal(filepath.FromSlash(p)) {
		return fmt.Errorf("path %q must be relative and stay inside its root", p)
	}
	return nil
}
