package engine

// ScalarKind enumerates the fixed primitive value kinds a field may declare.
type ScalarKind int

const (
	KindString ScalarKind = iota
	KindInteger
	KindBigInteger
	KindDouble
	KindBoolean
	KindOffsetDateTime
)

// scalarKindNames maps declared type strings to kinds. The names are the wire
// names used by catalog definition files.
var scalarKindNames = map[string]ScalarKind{
	"String":         KindString,
	"Integer":        KindInteger,
	"BigInteger":     KindBigInteger,
	"Double":         KindDouble,
	"Boolean":        KindBoolean,
	"OffsetDateTime": KindOffsetDateTime,
}

// String returns the wire name of the kind.
func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindBigInteger:
		return "BigInteger"
	case KindDouble:
		return "Double"
	case KindBoolean:
		return "Boolean"
	case KindOffsetDateTime:
		return "OffsetDateTime"
	default:
		return "ScalarKind(unknown)"
	}
}

// CategoryKind tags the closed set of declared-type categories.
type CategoryKind int

const (
	// CatUnrecognized marks a declared type that matches nothing known.
	// It is the zero value so an unclassified Category fails loudly.
	CatUnrecognized CategoryKind = iota
	// CatScalar is a single scalar value of some ScalarKind.
	CatScalar
	// CatScalarArray is an array of scalars of one ScalarKind.
	CatScalarArray
	// CatRecord references another catalog record by index.
	CatRecord
	// CatRecordArray is an array of record references.
	CatRecordArray
	// CatPass is a reserved no-op category: the drain treats it as an
	// always-passing check. No classifier path currently produces it.
	CatPass
	// CatFieldUnknown marks a document field with no entry in the record.
	// Assigned by the field lookup, never by Classify.
	CatFieldUnknown
)

// Category is the classification of a declared type string.
type Category struct {
	Kind   CategoryKind
	Scalar ScalarKind // valid for CatScalar and CatScalarArray
	Record int        // valid for CatRecord and CatRecordArray
}

// Classifier resolves declared type strings against the fixed scalar kinds and
// the catalog's record full names. It is built once per Runner and is
// read-only afterwards, so it is safe for concurrent use.
type Classifier struct {
	scalars      map[string]ScalarKind
	scalarArrays map[string]ScalarKind
	records      map[string]int
	recordArrays map[string]int
}

// NewClassifier precomputes the four derived name sets from the record
// definitions: scalar kinds, scalar arrays ("Kind[]"), record full names, and
// record arrays ("full.name[]").
func NewClassifier(defs []RecordDef) *Classifier {
	c := &Classifier{
		scalars:      scalarKindNames,
		scalarArrays: make(map[string]ScalarKind, len(scalarKindNames)),
		records:      make(map[string]int, len(defs)),
		recordArrays: make(map[string]int, len(defs)),
	}
	for name, kind := range scalarKindNames {
		c.scalarArrays[name+"[]"] = kind
	}
	for i, def := range defs {
		c.records[def.FullName] = i
		c.recordArrays[def.FullName+"[]"] = i
	}
	return c
}

// Classify maps a declared type string to its Category. Pure lookup; any
// string outside the four sets is CatUnrecognized.
func (c *Classifier) Classify(typ string) Category {
	if kind, ok := c.scalars[typ]; ok {
		return Category{Kind: CatScalar, Scalar: kind}
	}
	if kind, ok := c.scalarArrays[typ]; ok {
		return Category{Kind: CatScalarArray, Scalar: kind}
	}
	if id, ok := c.records[typ]; ok {
		return Category{Kind: CatRecord, Record: id}
	}
	if id, ok := c.recordArrays[typ]; ok {
		return Category{Kind: CatRecordArray, Record: id}
	}
	return Category{Kind: CatUnrecognized}
}

// RecordIndex resolves a record full name to its index.
func (c *Classifier) RecordIndex(fullName string) (int, bool) {
	id, ok := c.records[fullName]
	return id, ok
}

// referencedRecord reports the record index a declared type refers to, either
// directly or through the "[]" array suffix. Used by the cycle check.
func (c *Classifier) referencedRecord(typ string) (int, bool) {
	if id, ok := c.records[typ]; ok {
		return id, true
	}
	if id, ok := c.recordArrays[typ]; ok {
		return id, true
	}
	return 0, false
}
