package xctrace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open opens a trace export and returns a Source for it.
// The format is chosen by extension: ".jsonl" (optionally ".jsonl.gz") is
// read as JSON lines, anything else as xctrace XML. A trailing ".gz" wraps
// the reader in a gzip decompressor.
func Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening trace export: %w", err)
	}

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	if strings.HasSuffix(name, ".jsonl") {
		return newJSONLSource(r, f), nil
	}
	return newXMLSource(r, f), nil
}
