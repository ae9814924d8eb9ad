package recval

import (
	"fmt"

	eng "github.com/recval/recval/internal/engine"
)

// Shape is the declared shape of a record: one object instance or a
// homogeneous array of instances.
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeArray  Shape = "array"
)

// Field declares one record field: a type string plus an optional rule.
// The type is a scalar kind name (String, Integer, BigInteger, Double,
// Boolean, OffsetDateTime), a scalar array ("String[]"), another record's
// full name ("demo.lead"), or a record array ("demo.lead[]").
type Field struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Record is one named schema definition in a catalog.
type Record struct {
	FullName string   `json:"fullNamePath" yaml:"fullNamePath"`
	Shape    Shape    `json:"type" yaml:"type"`
	Fields   []Field  `json:"fields" yaml:"fields"`
	Required []string `json:"requiredFieldNames,omitempty" yaml:"requiredFieldNames,omitempty"`
}

// Catalog is an immutable, order-preserving set of records indexed by
// position. Construction precomputes the full-name index and the derived
// type-name sets; nothing is mutated afterwards, so a Catalog is safe for
// concurrent use.
type Catalog struct {
	records []Record
	index   map[string]int
	runner  *eng.Runner
}

// NewCatalog builds a Catalog from record definitions. It rejects empty or
// duplicate full names, invalid shapes, duplicate field names within a
// record, and record-reference cycles.
func NewCatalog(records []Record) (*Catalog, error) {
	index := make(map[string]int, len(records))
	defs := make([]eng.RecordDef, len(records))
	for i, rec := range records {
		if rec.FullName == "" {
			return nil, fmt.Errorf("recval: record %d has no full name", i)
		}
		if prev, ok := index[rec.FullName]; ok {
			return nil, fmt.Errorf("recval: duplicate record name %q (records %d and %d)", rec.FullName, prev, i)
		}
		index[rec.FullName] = i

		shape, err := rec.Shape.engineShape()
		if err != nil {
			return nil, fmt.Errorf("recval: record %q: %w", rec.FullName, err)
		}
		fields := make(map[string]eng.FieldDef, len(rec.Fields))
		for _, f := range rec.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("recval: record %q has a field with no name", rec.FullName)
			}
			if _, ok := fields[f.Name]; ok {
				return nil, fmt.Errorf("recval: record %q declares field %q twice", rec.FullName, f.Name)
			}
			fields[f.Name] = eng.FieldDef{Type: f.Type, Rule: f.Rule}
		}
		defs[i] = eng.RecordDef{
			FullName: rec.FullName,
			Shape:    shape,
			Fields:   fields,
			Required: rec.Required,
		}
	}

	runner := eng.New(defs)
	if err := runner.CheckCycles(); err != nil {
		return nil, fmt.Errorf("recval: %w", err)
	}
	return &Catalog{records: records, index: index, runner: runner}, nil
}

func (s Shape) engineShape() (eng.Shape, error) {
	switch s {
	case ShapeObject:
		return eng.ShapeObject, nil
	case ShapeArray:
		return eng.ShapeArray, nil
	default:
		return eng.ShapeInvalid, fmt.Errorf("shape must be %q or %q, got %q", ShapeObject, ShapeArray, string(s))
	}
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Record returns the record at position id.
func (c *Catalog) Record(id int) (Record, bool) {
	if id < 0 || id >= len(c.records) {
		return Record{}, false
	}
	return c.records[id], true
}

// IndexOf resolves a record full name to its position.
func (c *Catalog) IndexOf(fullName string) (int, bool) {
	id, ok := c.index[fullName]
	return id, ok
}

// FullName returns the full name of the record at position id, or "" when the
// id is out of range.
func (c *Catalog) FullName(id int) string {
	if id < 0 || id >= len(c.records) {
		return ""
	}
	return c.records[id].FullName
}

// FieldTypeRule looks up the declared type and rule of a field by name.
func (c *Catalog) FieldTypeRule(id int, field string) (typ, rule string, ok bool) {
	rec, ok := c.Record(id)
	if !ok {
		return "", "", false
	}
	for _, f := range rec.Fields {
		if f.Name == field {
			return f.Type, f.Rule, true
		}
	}
	return "", "", false
}

// RequiredFieldNames returns the ordered required field names of a record,
// each either a literal or a $REGEX$-tagged pattern.
func (c *Catalog) RequiredFieldNames(id int) []string {
	rec, ok := c.Record(id)
	if !ok {
		return nil
	}
	out := make([]string, len(rec.Required))
	copy(out, rec.Required)
	return out
}
