package xctrace

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Element tags that carry id/fmt symbol definitions for rows that reference
// them later. Matches the reference tables kept by the symbol resolver.
var definitionTags = map[string]bool{
	"event-type":    true,
	"signpost-name": true,
	"subsystem":     true,
	"category":      true,
	"thread":        true,
}

// IsDefinitionTag reports whether tag names a symbol-definition element.
func IsDefinitionTag(tag string) bool {
	return definitionTags[tag]
}

// xmlSource streams elements out of an xctrace XML export.
// Memory is scoped to the row currently being assembled; elements outside
// rows are discarded as soon as they have been yielded.
type xmlSource struct {
	dec    *xml.Decoder
	closer io.Closer

	// stack of open elements; entries are nil for elements we do not
	// materialize (containers above row level).
	stack []*Node
}

func newXMLSource(r io.Reader, closer io.Closer) *xmlSource {
	return &xmlSource{
		dec:    xml.NewDecoder(r),
		closer: closer,
	}
}

// Next advances the decoder until a definition element or a complete row
// closes, and returns it. Malformed XML is a fatal error.
func (s *xmlSource) Next() (*Node, error) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading trace XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			s.push(t)
		case xml.CharData:
			if top := s.top(); top != nil {
				top.Text += string(t)
			}
		case xml.EndElement:
			if n := s.pop(); n != nil {
				return n, nil
			}
		}
	}
}

func (s *xmlSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *xmlSource) top() *Node {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// push opens an element. Only rows, their descendants, and definition
// elements are materialized; everything else stacks as nil.
func (s *xmlSource) push(t xml.StartElement) {
	tag := t.Name.Local
	if tag != "row" && !definitionTags[tag] && s.top() == nil {
		s.stack = append(s.stack, nil)
		return
	}

	n := &Node{Tag: tag}
	if len(t.Attr) > 0 {
		n.Attrs = make(map[string]string, len(t.Attr))
		for _, a := range t.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}
	s.stack = append(s.stack, n)
}

// pop closes the innermost element and returns it if it should be yielded
// to the caller: definition elements always, rows once fully assembled.
func (s *xmlSource) pop() *Node {
	n := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	if n == nil {
		return nil
	}
	n.Text = strings.TrimRight(n.Text, "\n\t ")

	if parent := s.top(); parent != nil {
		parent.Children = append(parent.Children, n)
	}

	if n.Tag == "row" || definitionTags[n.Tag] {
		return n
	}
	return nil
}
