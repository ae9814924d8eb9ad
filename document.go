package recval

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Document abstracts over the ways a target document reaches the validator:
// an in-memory value, raw bytes, a reader, or a file path. The source is
// resolved once, before the load phase begins; no I/O happens during
// traversal.
type Document interface {
	value() (any, error)
}

// FromValue wraps an already decoded JSON tree (map[string]any, []any,
// string, json.Number or float64, bool, nil).
func FromValue(v any) Document { return valueDoc{v: v} }

// FromBytes wraps raw JSON bytes.
func FromBytes(b []byte) Document { return bytesDoc{b: b} }

// FromReader wraps a JSON stream. The reader is consumed when the document is
// resolved.
func FromReader(r io.Reader) Document { return readerDoc{r: r} }

// FromPath wraps a JSON file path.
func FromPath(path string) Document { return pathDoc{path: path} }

type valueDoc struct{ v any }

func (d valueDoc) value() (any, error) { return d.v, nil }

type bytesDoc struct{ b []byte }

func (d bytesDoc) value() (any, error) { return decodeAny(d.b) }

type readerDoc struct{ r io.Reader }

func (d readerDoc) value() (any, error) {
	b, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("recval: reading document: %w", err)
	}
	return decodeAny(b)
}

type pathDoc struct{ path string }

func (d pathDoc) value() (any, error) {
	b, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("recval: reading document: %w", err)
	}
	return decodeAny(b)
}

// decodeAny builds the any tree with numbers kept as json.Number so scalar
// checks see the exact source text.
func decodeAny(b []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("recval: decoding document: %w", err)
	}
	return v, nil
}
