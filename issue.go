package recval

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/recval/recval/internal/engine"
)

// Issue codes (exported consts for IDE completion and stable matching).
const (
	CodeStructure        = eng.CodeStructure
	CodeInvalidType      = eng.CodeInvalidType
	CodePattern          = eng.CodePattern
	CodeEqual            = eng.CodeEqual
	CodeNotEqual         = eng.CodeNotEqual
	CodeRequired         = eng.CodeRequired
	CodeUnknownField     = eng.CodeUnknownField
	CodeUnrecognizedType = eng.CodeUnrecognizedType
	CodeUnsupportedRule  = eng.CodeUnsupportedRule
	CodeParseError       = eng.CodeParseError
)

// Severity separates violations from non-failing diagnostics.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation entry.
type Issue struct {
	Path     string   `json:"path"` // JSON Pointer (for example: /items/2/price)
	Code     string   `json:"code"` // one of the codes listed above
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, pointerOrRoot(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func fromEngineIssues(in []eng.Issue, sev Severity) Issues {
	if len(in) == 0 {
		return nil
	}
	out := make(Issues, len(in))
	for i, e := range in {
		out[i] = Issue{Path: e.Path, Code: e.Code, Message: e.Message, Severity: sev}
	}
	return out
}
