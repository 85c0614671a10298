// Package report persists run reports as YAML.
package report

import (
	"bytes"
	"os"
	"path/filepath"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// Writer implements ports.ReportWriter.
type Writer struct{}

var _ ports.ReportWriter = (*Writer)(nil)

// NewWriter creates a new report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write encodes report and replaces the file at path with it.
// The file is written to a temporary sibling first, so readers never see a partial report.
func (w *Writer) Write(path string, report *domain.Report) error {
	data, err := Marshal(report)
	if err != nil {
		return domain.NewError(domain.ErrReportWriteFailed, zerr.With(err, "path", path))
	}

	if err := writeFileAtomic(path, data); err != nil {
		return domain.NewError(domain.ErrReportWriteFailed, zerr.With(err, "path", path))
	}
	return nil
}

// Marshal encodes report as YAML.
func Marshal(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
