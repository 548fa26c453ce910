// Package mutator applies file and JSON mutations to a workspace while
// keeping an undo log that can restore the previous state.
package mutator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/jsondoc"
)

const dirPerm fs.FileMode = 0o755

// Mutator owns the undo log for a single tool invocation.
// It is not safe for concurrent use.
type Mutator struct {
	log    []Record
	logger *zap.Logger
}

// New creates a Mutator with an empty log.
func New(logger *zap.Logger) *Mutator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mutator{logger: logger}
}

// Len returns the number of records in the log.
func (m *Mutator) Len() int { return len(m.log) }

// Records returns a copy of the log in insertion order.
func (m *Mutator) Records() []Record {
	out := make([]Record, len(m.log))
	copy(out, m.log)
	return out
}

// CopyFile copies src to dst, creating missing parent directories and
// overwriting an existing destination.
func (m *Mutator) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return &IOError{Op: "copy", Path: src, Err: err}
	}
	if info.IsDir() {
		return &IOError{Op: "copy", Path: src, Err: errors.New("source is a directory")}
	}

	data, err := os.ReadFile(src) //nolint:gosec // G304: template path chosen by the operator
	if err != nil {
		return &IOError{Op: "copy", Path: src, Err: err}
	}

	rec := Record{Kind: KindCopy, Source: src, Destination: dst}
	if prev, err := os.Stat(dst); err == nil {
		if prev.IsDir() {
			return &IOError{Op: "copy", Path: dst, Err: errors.New("destination is a directory")}
		}
		orig, err := os.ReadFile(dst) //nolint:gosec // G304: destination inside the target workspace
		if err != nil {
			return &IOError{Op: "copy", Path: dst, Err: err}
		}
		rec.Original = orig
		rec.Mode = prev.Mode().Perm()
		rec.Existed = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}

	if err := m.ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	if err := writeFile(dst, data, info.Mode().Perm()); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}

	m.append(rec)
	m.logger.Info("copied file", zap.String("src", src), zap.String("dst", dst))
	return nil
}

// CopyDirectory recursively copies every file under src to the same
// relative path under dst. Entries are visited in lexical order.
func (m *Mutator) CopyDirectory(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return &IOError{Op: "copy directory", Path: src, Err: err}
	}
	if !info.IsDir() {
		return &IOError{Op: "copy directory", Path: src, Err: errors.New("source is not a directory")}
	}
	if within(src, dst) {
		return &IOError{Op: "copy directory", Path: dst, Err: errors.New("destination is inside the source directory")}
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return &IOError{Op: "copy directory", Path: path, Err: walkErr}
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return &IOError{Op: "copy directory", Path: path, Err: err}
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return m.ensureDir(target)
		}
		return m.CopyFile(path, target)
	})
}

// MergeJSON deep-merges the document at src into the document at dst and
// writes the result back to dst. See jsondoc.Merge for the merge rules.
func (m *Mutator) MergeJSON(src, dst string) error {
	srcData, err := os.ReadFile(src) //nolint:gosec // G304: template path chosen by the operator
	if err != nil {
		return &IOError{Op: "merge", Path: src, Err: err}
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return &IOError{Op: "merge", Path: dst, Err: err}
	}
	dstData, err := os.ReadFile(dst) //nolint:gosec // G304: destination inside the target workspace
	if err != nil {
		return &IOError{Op: "merge", Path: dst, Err: err}
	}

	srcDoc, err := jsondoc.Parse(srcData)
	if err != nil {
		return &ParseError{Path: src, Err: err}
	}
	dstDoc, err := jsondoc.Parse(dstData)
	if err != nil {
		return &ParseError{Path: dst, Err: err}
	}

	out, err := jsondoc.MarshalIndent(jsondoc.Merge(dstDoc, srcDoc), "  ")
	if err != nil {
		return fmt.Errorf("encoding merged %s: %w", dst, err)
	}
	if err := writeFile(dst, out, dstInfo.Mode().Perm()); err != nil {
		return &IOError{Op: "merge", Path: dst, Err: err}
	}

	m.append(Record{
		Kind:        KindMerge,
		Source:      src,
		Destination: dst,
		Original:    dstData,
		Mode:        dstInfo.Mode().Perm(),
		Existed:     true,
	})
	m.logger.Info("merged JSON", zap.String("src", src), zap.String("dst", dst))
	return nil
}

// Rollback undoes the log in reverse insertion order and empties it.
// Failures are recorded as warnings and do not stop the rollback, so calling
// Rollback on an empty or already consumed log is a no-op.
func (m *Mutator) Rollback() RollbackReport {
	report := RollbackReport{ResetRequired: true}
	if len(m.log) > 0 {
		m.logger.Info("rolling back changes", zap.Int("records", len(m.log)))
	}

	for i := len(m.log) - 1; i >= 0; i-- {
		rec := m.log[i]
		switch rec.Kind {
		case KindCopy:
			if rec.Existed {
				m.restore(&report, rec)
				continue
			}
			if err := os.Remove(rec.Destination); err != nil {
				m.warn(&report, rec.Destination, err)
				continue
			}
			report.Removed = append(report.Removed, rec.Destination)
			m.logger.Info("removed", zap.String("path", rec.Destination))

		case KindMerge:
			m.restore(&report, rec)

		case KindMkdir:
			// os.Remove refuses non-empty directories, which keeps files the
			// mutator did not create.
			if err := os.Remove(rec.Destination); err != nil {
				m.warn(&report, rec.Destination, err)
				continue
			}
			report.Removed = append(report.Removed, rec.Destination)
			m.logger.Info("removed directory", zap.String("path", rec.Destination))
		}
	}

	m.log = nil
	return report
}

func (m *Mutator) restore(report *RollbackReport, rec Record) {
	if err := writeFile(rec.Destination, rec.Original, rec.Mode); err != nil {
		m.warn(report, rec.Destination, err)
		return
	}
	report.Restored = append(report.Restored, rec.Destination)
	m.logger.Info("restored", zap.String("path", rec.Destination))
}

func (m *Mutator) warn(report *RollbackReport, path string, err error) {
	report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %v", path, err))
	m.logger.Warn("rollback step skipped", zap.String("path", path), zap.Error(err))
}

func (m *Mutator) append(rec Record) {
	m.log = append(m.log, rec)
}

// ensureDir creates dir and any missing parents, recording one Mkdir entry
// per directory it created, outermost first.
func (m *Mutator) ensureDir(dir string) error {
	var missing []string
	for d := dir; ; {
		info, err := os.Stat(d)
		if err == nil {
			if !info.IsDir() {
				return &IOError{Op: "mkdir", Path: d, Err: errors.New("not a directory")}
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return &IOError{Op: "mkdir", Path: d, Err: err}
		}
		missing = append(missing, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], dirPerm); err != nil {
			return &IOError{Op: "mkdir", Path: missing[i], Err: err}
		}
		m.append(Record{Kind: KindMkdir, Destination: missing[i]})
	}
	return nil
}

// within reports whether path is dir itself or lies beneath it.
func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && filepath.IsLocal(rel)
}

// writeFile writes data and applies perm even when the file already exists.
func writeFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}
