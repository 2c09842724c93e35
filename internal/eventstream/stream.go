// Package eventstream drives one pass over a trace export: definition
// elements feed the symbol table, rows flow through extraction, filtering
// and interval correlation. One logical cursor, no lookahead, no revisiting.
package eventstream

import (
	"context"
	"errors"
	"io"

	"github.com/mrzor/signpost-summary/internal/correlator"
	"github.com/mrzor/signpost-summary/internal/filter"
	"github.com/mrzor/signpost-summary/internal/record"
	"github.com/mrzor/signpost-summary/internal/symtab"
	"github.com/mrzor/signpost-summary/internal/xctrace"
)

// Stream wires a node source to the processing pipeline.
type Stream struct {
	source xctrace.Source
	table  *symtab.Table
	filter *filter.Filter
	corr   *correlator.Correlator
}

// New creates a Stream over source.
func New(source xctrace.Source, table *symtab.Table, f *filter.Filter, corr *correlator.Correlator) *Stream {
	return &Stream{
		source: source,
		table:  table,
		filter: f,
		corr:   corr,
	}
}

// Run consumes the source to exhaustion. It returns nil at clean end of
// stream, the source's error on malformed input, or the context's error if
// cancelled between elements.
func (s *Stream) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		node, err := s.source.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		s.handle(node)
	}
}

func (s *Stream) handle(node *xctrace.Node) {
	if kind, ok := symtab.KindForTag(node.Tag); ok {
		s.table.Register(kind, node.Attr("id"), node.Attr("fmt"))
		return
	}
	if node.Tag != "row" {
		return
	}

	// Definitions nested in the row register before the row itself is
	// interpreted, preserving document order for sources that deliver
	// rows as complete subtrees.
	for _, child := range node.Children {
		if kind, ok := symtab.KindForTag(child.Tag); ok {
			s.table.Register(kind, child.Attr("id"), child.Attr("fmt"))
		}
	}

	r := record.Extract(node, s.table)
	class, ok := s.filter.Accept(r)
	if !ok {
		return
	}

	key := correlator.Key{Thread: r.Thread, Correlation: r.Correlation}
	switch class {
	case filter.ClassBegin:
		s.corr.Begin(key, r.TimeNS, r.Name)
	case filter.ClassEnd:
		s.corr.End(key, r.TimeNS)
	}
}
