// Package symtab resolves the symbolic references an xctrace export uses to
// avoid repeating labels: the first occurrence of an element carries id+fmt,
// later occurrences reference the id. The export defines symbols strictly
// before first use, so a single forward pass suffices.
package symtab

import (
	"strings"

	"github.com/mrzor/signpost-summary/internal/xctrace"
)

// Kind selects one of the reference tables.
type Kind int

const (
	KindEventType Kind = iota
	KindSignpostName
	KindSubsystem
	KindCategory
	KindThread

	numKinds
)

// KindForTag maps a definition element tag to its table.
func KindForTag(tag string) (Kind, bool) {
	switch tag {
	case "event-type":
		return KindEventType, true
	case "signpost-name":
		return KindSignpostName, true
	case "subsystem":
		return KindSubsystem, true
	case "category":
		return KindCategory, true
	case "thread":
		return KindThread, true
	}
	return 0, false
}

// Table holds the id -> label mappings, one map per kind.
// It is owned by the single processing pass and needs no locking.
type Table struct {
	labels [numKinds]map[string]string
}

// New creates an empty table.
func New() *Table {
	t := &Table{}
	for i := range t.labels {
		t.labels[i] = make(map[string]string)
	}
	return t
}

// Register stores label under id, replacing any earlier label for the same
// id. Empty ids and empty labels are skipped, never stored.
func (t *Table) Register(k Kind, id, label string) {
	if id == "" || label == "" {
		return
	}
	t.labels[k][id] = label
}

// Lookup returns the label registered for id, if any.
func (t *Table) Lookup(k Kind, id string) (string, bool) {
	label, ok := t.labels[k][id]
	return label, ok
}

// Len returns the number of symbols registered for a kind.
func (t *Table) Len(k Kind) int {
	return len(t.labels[k])
}

// ResolveLabel resolves a node to a display label. Precedence: an inline
// fmt attribute, then a table lookup by ref, then the node's trimmed text.
// Returns "" when all three come up empty (including a ref to a symbol not
// registered yet; the filter drops such records downstream).
func (t *Table) ResolveLabel(k Kind, n *xctrace.Node) string {
	if n == nil {
		return ""
	}
	if f := n.Attr("fmt"); f != "" {
		return f
	}
	if ref := n.Attr("ref"); ref != "" {
		label, _ := t.Lookup(k, ref)
		return label
	}
	return strings.TrimSpace(n.Text)
}

// ResolveIdentifier returns a bare identifier for fields used only as
// correlation keys, never displayed: the ref attribute, else the id.
func ResolveIdentifier(n *xctrace.Node) string {
	if n == nil {
		return ""
	}
	if ref := n.Attr("ref"); ref != "" {
		return ref
	}
	return n.Attr("id")
}
