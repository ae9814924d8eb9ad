package recval

import (
	"context"

	eng "github.com/recval/recval/internal/engine"
)

// Opt tunes one validation call. Like parse options elsewhere in the API,
// the last value passed wins.
type Opt struct {
	// FailFast stops at the first violation instead of collecting all.
	FailFast bool
	// MaxIssues caps the number of collected violations; 0 means no cap.
	MaxIssues int
	// Sink, when set, receives every issue (violations and warnings) as it
	// is recorded during the call.
	Sink func(Issue)
}

// Result aggregates one validation call.
type Result struct {
	// Valid is true iff the structural load and every field, rule and
	// required-name check passed.
	Valid bool
	// Issues are the violations, in the order they were found.
	Issues Issues
	// Warnings are non-failing diagnostics, e.g. skipped unsupported rules.
	Warnings Issues
	// Checked counts the work items the traversal processed.
	Checked int
}

// Err returns the collected violations as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Issues
}

// Validator checks documents against a Catalog. It holds no mutable state, so
// a single instance may serve concurrent calls.
type Validator struct {
	cat *Catalog
}

// New returns a Validator over the catalog.
func New(cat *Catalog) *Validator { return &Validator{cat: cat} }

// Catalog returns the catalog the validator was built over.
func (v *Validator) Catalog() *Catalog { return v.cat }

// Validate resolves the document source, then validates it against the record
// named rootName. Field-level failures accumulate in the Result; structural
// errors (unknown root, shape mismatch at the root) abort the call with a
// single structure issue. The returned error is non-nil only when the
// document source itself cannot be resolved.
func (v *Validator) Validate(ctx context.Context, rootName string, doc Document, opts ...Opt) (Result, error) {
	_ = ctx

	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	target, err := doc.value()
	if err != nil {
		return Result{}, AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Severity: SeverityError})
	}

	eopt := eng.Options{FailFast: opt.FailFast, MaxIssues: opt.MaxIssues}
	if opt.Sink != nil {
		eopt.Report = func(iss eng.Issue, warn bool) {
			sev := SeverityError
			if warn {
				sev = SeverityWarning
			}
			opt.Sink(Issue{Path: iss.Path, Code: iss.Code, Message: iss.Message, Severity: sev})
		}
	}

	out := v.cat.runner.Validate(rootName, target, eopt)
	return Result{
		Valid:    out.Valid,
		Issues:   fromEngineIssues(out.Issues, SeverityError),
		Warnings: fromEngineIssues(out.Warnings, SeverityWarning),
		Checked:  out.Checked,
	}, nil
}

// Valid is the boolean convenience form of Validate. Source resolution
// failures count as invalid.
func (v *Validator) Valid(ctx context.Context, rootName string, doc Document, opts ...Opt) bool {
	res, err := v.Validate(ctx, rootName, doc, opts...)
	return err == nil && res.Valid
}
