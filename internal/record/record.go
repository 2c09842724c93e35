// Package record turns a raw row element into a normalized event record.
// Extraction is total: no field is required here, and anything that fails to
// resolve or parse is simply left absent. The filter is the single place
// that decides which absences disqualify a record.
package record

import (
	"strconv"
	"strings"

	"github.com/mrzor/signpost-summary/internal/symtab"
	"github.com/mrzor/signpost-summary/internal/xctrace"
)

// Record is one normalized signpost event. Label fields use "" for absent;
// the timestamp carries an explicit presence flag.
type Record struct {
	TimeNS  int64
	HasTime bool

	Kind      string
	Name      string
	Subsystem string
	Category  string

	// Thread and Correlation are raw identifiers used only for key
	// equality, never displayed.
	Thread      string
	Correlation string
}

// Extract walks the row's child fields once, in order, resolving each
// against the symbol table.
func Extract(row *xctrace.Node, table *symtab.Table) Record {
	var r Record
	timeSeen := false

	for _, child := range row.Children {
		switch child.Tag {
		case "event-time", "sample-time":
			// First temporal field with content wins; an unparsable
			// value leaves the timestamp absent rather than erroring.
			if timeSeen {
				continue
			}
			text := strings.TrimSpace(child.Text)
			if text == "" {
				continue
			}
			timeSeen = true
			if ns, err := strconv.ParseInt(text, 10, 64); err == nil {
				r.TimeNS = ns
				r.HasTime = true
			}

		case "event-type":
			if v := table.ResolveLabel(symtab.KindEventType, child); v != "" {
				r.Kind = v
			}

		case "signpost-name":
			if v := table.ResolveLabel(symtab.KindSignpostName, child); v != "" {
				r.Name = v
			}

		case "subsystem":
			if v := table.ResolveLabel(symtab.KindSubsystem, child); v != "" {
				r.Subsystem = v
			}

		case "category":
			if v := table.ResolveLabel(symtab.KindCategory, child); v != "" {
				r.Category = v
			}

		case "thread":
			if id := symtab.ResolveIdentifier(child); id != "" {
				r.Thread = id
			}

		case "os-signpost-identifier":
			// Prefer the formatted value (often hex) since refs can be
			// opaque; fall back to text, then to the reference itself.
			if v := child.Attr("fmt"); v != "" {
				r.Correlation = v
			} else if v := strings.TrimSpace(child.Text); v != "" {
				r.Correlation = v
			} else if v := child.Attr("ref"); v != "" {
				r.Correlation = v
			}
		}
	}

	return r
}
