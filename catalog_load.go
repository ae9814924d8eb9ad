package recval

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseCatalogJSON decodes a catalog from a JSON array of records.
func ParseCatalogJSON(data []byte) (*Catalog, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("recval: decoding catalog: %w", err)
	}
	return NewCatalog(records)
}

// ParseCatalogYAML decodes a catalog from YAML. Multi-document input is
// supported; each document is either a record list or a single record, and
// the documents are concatenated in order.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var records []Record
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("recval: decoding catalog: %w", err)
		}
		node := &doc
		if node.Kind == yaml.DocumentNode {
			if len(node.Content) == 0 {
				continue
			}
			node = node.Content[0]
		}
		switch node.Kind {
		case yaml.SequenceNode:
			var part []Record
			if err := node.Decode(&part); err != nil {
				return nil, fmt.Errorf("recval: decoding catalog: %w", err)
			}
			records = append(records, part...)
		case yaml.MappingNode:
			var rec Record
			if err := node.Decode(&rec); err != nil {
				return nil, fmt.Errorf("recval: decoding catalog: %w", err)
			}
			records = append(records, rec)
		default:
			// Empty and explicit-null documents are harmless; anything else
			// is a malformed catalog.
			if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
				continue
			}
			return nil, fmt.Errorf("recval: decoding catalog: document must be a record or a record list")
		}
	}
	return NewCatalog(records)
}

// LoadCatalog reads a catalog file, choosing the decoder by extension
// (.yaml/.yml for YAML, anything else JSON).
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recval: reading catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseCatalogYAML(data)
	default:
		return ParseCatalogJSON(data)
	}
}
