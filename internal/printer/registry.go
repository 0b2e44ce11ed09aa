package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/waabox/auditdeck/internal/domain"
)

// Output format names.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Factory builds a Printer writing to w.
type Factory func(w io.Writer) Printer

// Registry maps output format names to Printer factories.
type Registry struct {
	entries []entry
}

type entry struct {
	format  string
	factory Factory
}

// NewRegistry creates an empty printer registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with every built-in format.
// "text" is accepted as an alias of the table format.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	table := func(w io.Writer) Printer { return NewTablePrinter(w) }
	r.Register(FormatTable, table)
	r.Register("text", table)
	r.Register(FormatJSON, func(w io.Writer) Printer { return NewJSONPrinter(w) })
	r.Register(FormatYAML, func(w io.Writer) Printer { return NewYAMLPrinter(w) })
	r.Register(FormatMarkdown, func(w io.Writer) Printer { return NewMarkdownPrinter(w) })
	return r
}

// Register associates a format name with a factory. Later registrations of
// the same name take precedence.
func (r *Registry) Register(format string, f Factory) {
	r.entries = append([]entry{{format: strings.ToLower(format), factory: f}}, r.entries...)
}

// Formats returns the registered format names in registration order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i].format)
	}
	return out
}

// Detect returns a printer for the given format writing to w.
// Returns an error wrapping domain.ErrNotValid if no format matches.
func (r *Registry) Detect(format string, w io.Writer) (Printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, e := range r.entries {
		if e.format == format {
			return e.factory(w), nil
		}
	}
	return nil, fmt.Errorf("no printer found for format %q: %w", format, domain.ErrNotValid)
}
