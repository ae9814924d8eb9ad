// Package engine implements the iterative traversal that validates a JSON
// value against a catalog of record definitions. Record references are
// unfolded through an explicit LIFO worklist, so traversal of arbitrarily
// deep record graphs uses a constant number of call frames.
package engine

import (
	"fmt"
	"sort"
	"strconv"
)

// Shape is the declared shape of a record: one object instance or a
// homogeneous array of instances.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeObject
	ShapeArray
)

// FieldDef is a single field declaration: a type string plus an optional rule.
type FieldDef struct {
	Type string
	Rule string
}

// RecordDef is the engine's read-only view of one catalog record.
type RecordDef struct {
	FullName string
	Shape    Shape
	Fields   map[string]FieldDef
	Required []string
}

// Options tunes one validation call.
type Options struct {
	// FailFast stops the drain at the first recorded violation.
	FailFast bool
	// MaxIssues caps the number of recorded violations; 0 means no cap.
	MaxIssues int
	// Report, when set, receives every issue as it is recorded. The warn
	// flag separates non-failing diagnostics from violations.
	Report func(iss Issue, warn bool)
}

// Outcome aggregates one validation call.
type Outcome struct {
	// Valid is true iff no structural load and no field check failed.
	Valid bool
	// Checked counts the work items processed. Purely informational.
	Checked int
	// Issues are the recorded violations.
	Issues []Issue
	// Warnings are non-failing diagnostics (e.g. skipped unsupported rules).
	Warnings []Issue
}

// Runner validates documents against a fixed set of record definitions. The
// definitions and the derived classifier are immutable after New, so one
// Runner may serve concurrent calls; every call owns its worklist.
type Runner struct {
	defs []RecordDef
	cls  *Classifier
}

// New builds a Runner over the record definitions.
func New(defs []RecordDef) *Runner {
	return &Runner{defs: defs, cls: NewClassifier(defs)}
}

// Classify exposes the type classifier built from the definitions.
func (r *Runner) Classify(typ string) Category { return r.cls.Classify(typ) }

// CheckCycles rejects record-reference cycles. A cyclic catalog is almost
// certainly a definition mistake, and the traversal's termination argument
// assumes an acyclic reference graph.
func (r *Runner) CheckCycles() error {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(r.defs))
	var visit func(id int) error
	visit = func(id int) error {
		switch state[id] {
		case done:
			return nil
		case inProgress:
			return fmt.Errorf("record reference cycle through %q", r.defs[id].FullName)
		}
		state[id] = inProgress
		for _, def := range r.defs[id].Fields {
			if ref, ok := r.cls.referencedRecord(def.Type); ok {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}
	for id := range r.defs {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Validate runs the two-phase traversal: load the root record's fields into
// the worklist, then drain it. No state persists across calls.
func (r *Runner) Validate(rootName string, doc any, opt Options) Outcome {
	s := &run{r: r, opt: opt}
	s.out.Valid = true
	id, ok := r.cls.RecordIndex(rootName)
	if !ok {
		s.fatal(Issue{Path: "", Code: CodeStructure, Message: fmt.Sprintf("root record %q not found in catalog", rootName)})
		return s.out
	}
	if s.loadRoot(id, doc) {
		s.drain()
	}
	return s.out
}

// workItem is one pending field check. Items are consumed exactly once;
// processing may enqueue new items but never mutates an existing one.
type workItem struct {
	cat   Category
	name  string
	typ   string // declared type string, for diagnostics
	path  string // JSON Pointer, for diagnostics
	value any
	rule  string
}

// run holds the per-call state: the worklist, the outcome and the stop flag.
type run struct {
	r     *Runner
	opt   Options
	stack []workItem
	out   Outcome
	stop  bool
}

// loadRoot asserts the root record's shape against the target value and
// pushes the initial work items. Any mismatch here is fatal.
func (s *run) loadRoot(id int, doc any) bool {
	def := &s.r.defs[id]
	switch def.Shape {
	case ShapeObject:
		obj, ok := doc.(map[string]any)
		if !ok {
			s.fatal(Issue{Path: "", Code: CodeStructure, Message: fmt.Sprintf("record %q declares an object but the target is not a JSON object", def.FullName)})
			return false
		}
		s.pushInstance(id, obj, "")
	case ShapeArray:
		arr, ok := doc.([]any)
		if !ok {
			s.fatal(Issue{Path: "", Code: CodeStructure, Message: fmt.Sprintf("record %q declares an array but the target is not a JSON array", def.FullName)})
			return false
		}
		for i, elem := range arr {
			if s.stop {
				break
			}
			obj, ok := elem.(map[string]any)
			if !ok {
				s.fatal(Issue{Path: indexPointer("", i), Code: CodeStructure, Message: fmt.Sprintf("record %q expects an array of objects", def.FullName)})
				return false
			}
			s.pushInstance(id, obj, indexPointer("", i))
		}
	default:
		s.fatal(Issue{Path: "", Code: CodeStructure, Message: fmt.Sprintf("record %q: shape must be object or array", def.FullName)})
		return false
	}
	return !s.stop
}

// pushInstance enqueues one work item per field of an object instance and
// then verifies the instance's required field names. Fields are pushed in
// sorted name order so diagnostics are deterministic; the worklist is LIFO,
// which affects only diagnostic ordering.
func (s *run) pushInstance(id int, obj map[string]any, path string) {
	def := &s.r.defs[id]
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		item := workItem{name: name, path: childPointer(path, name), value: obj[name]}
		if field, ok := def.Fields[name]; ok {
			item.cat = s.r.cls.Classify(field.Type)
			item.typ = field.Type
			item.rule = field.Rule
		} else {
			item.cat = Category{Kind: CatFieldUnknown}
		}
		s.stack = append(s.stack, item)
	}
	for _, miss := range MissingRequired(def.Required, names) {
		s.report(Issue{Path: path, Code: CodeRequired, Message: fmt.Sprintf("required field %q not found in %s", miss, def.FullName)})
	}
}

// drain pops work items until the worklist is empty, routing each by its
// category. Field-level failures are recorded and processing continues.
func (s *run) drain() {
	for len(s.stack) > 0 && !s.stop {
		it := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.out.Checked++

		switch it.cat.Kind {
		case CatScalar:
			s.checkScalar(it.cat.Scalar, it.value, it.path, it.rule)
		case CatScalarArray:
			arr, ok := it.value.([]any)
			if !ok {
				s.report(Issue{Path: it.path, Code: CodeInvalidType, Message: fmt.Sprintf("field %q declares %s but the value is not an array", it.name, it.typ)})
				continue
			}
			for i, elem := range arr {
				if s.stop {
					break
				}
				s.checkScalar(it.cat.Scalar, elem, indexPointer(it.path, i), it.rule)
			}
		case CatRecord:
			s.unfoldRecord(it.cat.Record, it)
		case CatRecordArray:
			arr, ok := it.value.([]any)
			if !ok {
				s.report(Issue{Path: it.path, Code: CodeInvalidType, Message: fmt.Sprintf("field %q declares %s but the value is not an array", it.name, it.typ)})
				continue
			}
			for i, elem := range arr {
				if s.stop {
					break
				}
				s.unfoldElement(it.cat.Record, elem, indexPointer(it.path, i))
			}
		case CatPass:
			// Reserved no-op: the field counts as checked.
		case CatFieldUnknown:
			s.report(Issue{Path: it.path, Code: CodeUnknownField, Message: fmt.Sprintf("field %q is not declared in the record", it.name)})
		default:
			s.report(Issue{Path: it.path, Code: CodeUnrecognizedType, Message: fmt.Sprintf("field %q declares unrecognized type %q", it.name, it.typ)})
		}
	}
}

// checkScalar coerces the value to text, then runs the type check and the
// rule check independently; both may record an issue for the same field.
func (s *run) checkScalar(kind ScalarKind, v any, path, rule string) {
	text, ok := ScalarText(v)
	if !ok {
		s.report(Issue{Path: path, Code: CodeInvalidType, Message: fmt.Sprintf("value cannot be %s: not a scalar", kind)})
		return
	}
	if iss := CheckScalar(kind, text); iss != nil {
		iss.Path = path
		s.report(*iss)
	}
	if s.stop {
		return
	}
	if iss, warning := CheckRule(rule, text); iss != nil {
		iss.Path = path
		s.report(*iss)
	} else if warning != nil {
		warning.Path = path
		s.warn(*warning)
	}
}

// unfoldRecord enumerates the value of a record-reference field against the
// referenced record's shape. Shape mismatches below the root are recorded and
// the subtree is skipped; the drain continues.
func (s *run) unfoldRecord(id int, it workItem) {
	def := &s.r.defs[id]
	switch def.Shape {
	case ShapeObject:
		obj, ok := it.value.(map[string]any)
		if !ok {
			s.report(Issue{Path: it.path, Code: CodeStructure, Message: fmt.Sprintf("record %q expects an object", def.FullName)})
			return
		}
		s.pushInstance(id, obj, it.path)
	case ShapeArray:
		arr, ok := it.value.([]any)
		if !ok {
			s.report(Issue{Path: it.path, Code: CodeStructure, Message: fmt.Sprintf("record %q expects an array", def.FullName)})
			return
		}
		for i, elem := range arr {
			if s.stop {
				break
			}
			s.pushObject(id, elem, indexPointer(it.path, i))
		}
	default:
		s.fatal(Issue{Path: it.path, Code: CodeStructure, Message: fmt.Sprintf("record %q: shape must be object or array", def.FullName)})
	}
}

// unfoldElement handles one element of a record-array field. When the
// referenced record itself declares shape array, the element is a nested
// array of objects and two levels unfold before leaf checks run.
func (s *run) unfoldElement(id int, elem any, path string) {
	def := &s.r.defs[id]
	switch def.Shape {
	case ShapeObject:
		s.pushObject(id, elem, path)
	case ShapeArray:
		inner, ok := elem.([]any)
		if !ok {
			s.report(Issue{Path: path, Code: CodeStructure, Message: fmt.Sprintf("record %q expects a nested array", def.FullName)})
			return
		}
		for i, e := range inner {
			if s.stop {
				break
			}
			s.pushObject(id, e, indexPointer(path, i))
		}
	default:
		s.fatal(Issue{Path: path, Code: CodeStructure, Message: fmt.Sprintf("record %q: shape must be object or array", def.FullName)})
	}
}

// pushObject requires v to be a JSON object and enqueues it as one instance.
func (s *run) pushObject(id int, v any, path string) {
	obj, ok := v.(map[string]any)
	if !ok {
		s.report(Issue{Path: path, Code: CodeStructure, Message: fmt.Sprintf("record %q expects an object", s.r.defs[id].FullName)})
		return
	}
	s.pushInstance(id, obj, path)
}

// report records a violation, marks the outcome invalid and applies the
// fail-fast and cap policies. Once the stop flag is set nothing more is
// recorded, so loops that report per element or per required name cannot
// overshoot the cap.
func (s *run) report(iss Issue) {
	if s.stop {
		return
	}
	s.out.Valid = false
	s.out.Issues = append(s.out.Issues, iss)
	if s.opt.Report != nil {
		s.opt.Report(iss, false)
	}
	if s.opt.FailFast || (s.opt.MaxIssues > 0 && len(s.out.Issues) >= s.opt.MaxIssues) {
		s.stop = true
	}
}

// warn records a non-failing diagnostic.
func (s *run) warn(iss Issue) {
	s.out.Warnings = append(s.out.Warnings, iss)
	if s.opt.Report != nil {
		s.opt.Report(iss, true)
	}
}

// fatal records a structural error and aborts the call.
func (s *run) fatal(iss Issue) {
	s.report(iss)
	s.stop = true
}

// indexPointer extends a JSON Pointer with an array index token.
func indexPointer(base string, i int) string {
	return base + "/" + strconv.Itoa(i)
}
