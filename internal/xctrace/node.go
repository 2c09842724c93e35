// Package xctrace reads os-signpost table exports produced by xctrace.
// It yields one element at a time in document order: symbol definition
// elements as they close, then the enclosing row with its children intact.
package xctrace

import "errors"

// ErrInputNotFound is returned by Open when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Node is an immutable view of one element of the export.
// A Node handed out by a Source is only valid until the next call to Next.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Source is a pull-based iterator over an export.
// Next returns io.EOF after the last element.
type Source interface {
	Next() (*Node, error)
	Close() error
}
