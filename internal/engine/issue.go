package engine

import "strings"

// Issue codes shared with the public package. The root package re-exports
// these so callers never import internal/engine directly.
const (
	CodeStructure        = "structure"
	CodeInvalidType      = "invalid_type"
	CodePattern          = "pattern"
	CodeEqual            = "equal"
	CodeNotEqual         = "not_equal"
	CodeRequired         = "required"
	CodeUnknownField     = "unknown_field"
	CodeUnrecognizedType = "unrecognized_type"
	CodeUnsupportedRule  = "unsupported_rule"
	CodeParseError       = "parse_error"
)

// Issue is the engine-side diagnostic record. The root package converts these
// into its public Issue type at the API boundary.
type Issue struct {
	Path    string // JSON Pointer into the target document
	Code    string
	Message string
}

// childPointer extends a JSON Pointer with an object member token.
func childPointer(base, name string) string {
	return base + "/" + escapeToken(name)
}

// escapeToken applies JSON Pointer escaping (RFC 6901): ~ -> ~0, / -> ~1.
func escapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
