package release

import (
	"fmt"
	"os"

	"github.com/jayvee-digital-labs/jvdl/internal/jsondoc"
)

// Manifest is a package.json loaded with its member order intact.
type Manifest struct {
	path string
	doc  *jsondoc.Object
	perm os.FileMode
}

// LoadManifest reads the package.json at path.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: manifest of the project being released
	if err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}
	obj, err := jsondoc.ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Manifest{path: path, doc: obj, perm: info.Mode().Perm()}, nil
}

// Version returns the "version" member.
func (m *Manifest) Version() (string, error) {
	v, ok := m.doc.Get("version")
	if !ok {
		return "", fmt.Errorf("%s has no version", m.path)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: version is not a string", m.path)
	}
	return s, nil
}

// SetRelease records the new version and the commit message it was
// derived from.
func (m *Manifest) SetRelease(version, latestCommit string) {
	m.doc.Set("version", version)
	m.doc.Set("latestCommit", latestCommit)
}

// Save writes the manifest back with two-space indentation.
func (m *Manifest) Save() error {
	out, err := jsondoc.MarshalIndent(m.doc, "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", m.path, err)
	}
	if err := os.WriteFile(m.path, out, m.perm); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	return nil
}
