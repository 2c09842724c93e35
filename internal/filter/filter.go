// Package filter decides which extracted records enter interval matching.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mrzor/signpost-summary/internal/record"
)

// Class is the begin/end classification of a record's event-type label.
type Class int

const (
	ClassNeither Class = iota
	ClassBegin
	ClassEnd
	// ClassBoth marks a label containing both markers. The wire format is
	// not expected to produce one; such records are treated as ambiguous
	// and dropped.
	ClassBoth
)

// Classify performs a case-insensitive substring test on an event-type
// label.
func Classify(kind string) Class {
	k := strings.ToLower(kind)
	isBegin := strings.Contains(k, "begin")
	isEnd := strings.Contains(k, "end")
	switch {
	case isBegin && isEnd:
		return ClassBoth
	case isBegin:
		return ClassBegin
	case isEnd:
		return ClassEnd
	default:
		return ClassNeither
	}
}

// Filter accepts records matching the configured subsystem/category pair
// that carry every field interval matching needs, optionally narrowed by a
// user-supplied predicate expression.
type Filter struct {
	subsystem string
	category  string
	where     *vm.Program
}

// New creates a Filter. where is an optional expression evaluated per
// record; it must yield a boolean. It is compiled once, up front, so a bad
// expression fails at startup instead of mid-stream.
func New(subsystem, category, where string) (*Filter, error) {
	f := &Filter{
		subsystem: subsystem,
		category:  category,
	}

	if where != "" {
		program, err := expr.Compile(where, expr.Env(whereEnv(record.Record{})), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compiling --where expression: %w", err)
		}
		f.where = program
	}

	return f, nil
}

// Accept reports whether r enters interval matching, and as what. The
// returned class is ClassBegin or ClassEnd when ok; point events, ambiguous
// labels, filter mismatches, and incomplete records are all rejected.
func (f *Filter) Accept(r record.Record) (Class, bool) {
	if r.Subsystem != f.subsystem || r.Category != f.category {
		return ClassNeither, false
	}
	if !r.HasTime || r.Kind == "" || r.Name == "" || r.Thread == "" || r.Correlation == "" {
		return ClassNeither, false
	}

	class := Classify(r.Kind)
	if class != ClassBegin && class != ClassEnd {
		return ClassNeither, false
	}

	if f.where != nil {
		out, err := expr.Run(f.where, whereEnv(r))
		if err != nil {
			// Soft tier: a failing predicate drops the record, never
			// the stream.
			return ClassNeither, false
		}
		if keep, ok := out.(bool); !ok || !keep {
			return ClassNeither, false
		}
	}

	return class, true
}

func whereEnv(r record.Record) map[string]interface{} {
	return map[string]interface{}{
		"name":        r.Name,
		"kind":        r.Kind,
		"subsystem":   r.Subsystem,
		"category":    r.Category,
		"thread":      r.Thread,
		"correlation": r.Correlation,
		"time_ns":     r.TimeNS,
	}
}
