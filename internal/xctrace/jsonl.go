package xctrace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/fastjson"
)

// jsonlSource reads a pre-flattened export: one JSON object per line, each
// carrying "tag", optional "id"/"ref"/"fmt"/"text", and an optional "fields"
// array of child objects of the same shape. Rows and definitions arrive in
// the same document order the XML export would deliver them.
type jsonlSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	parser  fastjson.Parser
	line    int
}

func newJSONLSource(r io.Reader, closer io.Closer) *jsonlSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &jsonlSource{
		scanner: sc,
		closer:  closer,
	}
}

func (s *jsonlSource) Next() (*Node, error) {
	for s.scanner.Scan() {
		s.line++
		data := bytes.TrimSpace(s.scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		v, err := s.parser.ParseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parsing trace JSON line %d: %w", s.line, err)
		}
		n, err := nodeFromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("trace JSON line %d: %w", s.line, err)
		}
		return n, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace JSON: %w", err)
	}
	return nil, io.EOF
}

func (s *jsonlSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func nodeFromJSON(v *fastjson.Value) (*Node, error) {
	tag := string(v.GetStringBytes("tag"))
	if tag == "" {
		return nil, fmt.Errorf("object has no tag")
	}

	n := &Node{
		Tag:  tag,
		Text: string(v.GetStringBytes("text")),
	}
	for _, attr := range []string{"id", "ref", "fmt"} {
		if val := v.GetStringBytes(attr); len(val) > 0 {
			if n.Attrs == nil {
				n.Attrs = make(map[string]string, 3)
			}
			n.Attrs[attr] = string(val)
		}
	}

	for _, field := range v.GetArray("fields") {
		child, err := nodeFromJSON(field)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
