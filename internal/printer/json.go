package printer

import (
	"encoding/json"
	"io"

	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

// JSONPrinter prints audit information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// PrintList prints audits and stats as a single JSON document.
func (j *JSONPrinter) PrintList(audits []domain.Audit, stats domain.Stats) error {
	return j.encode(toListOutput(audits, stats), true)
}

// PrintReport prints the full audit report.
func (j *JSONPrinter) PrintReport(audit domain.Audit) error {
	return j.encode(toAuditOutput(audit), true)
}

// PrintSnapshot prints one compact JSON object per line so a stream of
// snapshots can be consumed as newline delimited JSON.
func (j *JSONPrinter) PrintSnapshot(snapshot progress.Snapshot) error {
	return j.encode(toSnapshotOutput(snapshot), false)
}

func (j *JSONPrinter) encode(v any, indent bool) error {
	enc := json.NewEncoder(j.writer)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
