package printer

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

// YAMLPrinter prints audit information in YAML format. Each call writes a
// separate YAML document.
type YAMLPrinter struct {
	writer io.Writer
}

// NewYAMLPrinter creates a new YAML printer.
func NewYAMLPrinter(w io.Writer) *YAMLPrinter {
	return &YAMLPrinter{writer: w}
}

func (y *YAMLPrinter) PrintList(audits []domain.Audit, stats domain.Stats) error {
	return y.encode(toListOutput(audits, stats))
}

func (y *YAMLPrinter) PrintReport(audit domain.Audit) error {
	return y.encode(toAuditOutput(audit))
}

func (y *YAMLPrinter) PrintSnapshot(snapshot progress.Snapshot) error {
	return y.encode(toSnapshotOutput(snapshot))
}

func (y *YAMLPrinter) encode(v any) error {
	if _, err := io.WriteString(y.writer, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
