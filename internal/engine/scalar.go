package engine

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rule prefixes recognized on field rules and on required field names.
const (
	PrefixRegex    = "$REGEX$"
	PrefixEqual    = "$EQUAL$"
	PrefixNotEqual = "$NOT_EQUAL$"
)

// ScalarText renders a decoded JSON scalar as text. Values are always checked
// in their textual form, whatever the source JSON type was. Objects, arrays
// and null are not scalars and report false.
func ScalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	default:
		return "", false
	}
}

// CheckScalar verifies that value parses as the given kind. It returns nil on
// success, otherwise an Issue without a path (the caller owns location).
func CheckScalar(kind ScalarKind, value string) *Issue {
	switch kind {
	case KindString:
		return nil
	case KindInteger:
		if _, err := strconv.ParseInt(value, 10, 32); err != nil {
			return typeIssue(kind, value)
		}
	case KindBigInteger:
		// Precision beyond 64 bits is not supported despite the name; the
		// value must fit a signed 64-bit integer.
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return typeIssue(kind, value)
		}
	case KindDouble:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return typeIssue(kind, value)
		}
	case KindBoolean:
		if !strings.EqualFold(value, "true") && !strings.EqualFold(value, "false") {
			return typeIssue(kind, value)
		}
	case KindOffsetDateTime:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return typeIssue(kind, value)
		}
	}
	return nil
}

func typeIssue(kind ScalarKind, value string) *Issue {
	return &Issue{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("value %q cannot be %s", value, kind),
	}
}

// CheckRule applies an optional rule constraint to the textual value. The
// first return is a violation, the second a warning for unsupported rule
// prefixes (the rule is then skipped and treated as pass). Both are nil when
// the rule holds or is empty.
func CheckRule(rule, value string) (*Issue, *Issue) {
	switch {
	case rule == "":
		return nil, nil
	case strings.HasPrefix(rule, PrefixRegex):
		pattern := rule[len(PrefixRegex):]
		ok, err := matchFull(pattern, value)
		if err != nil {
			return &Issue{Code: CodePattern, Message: fmt.Sprintf("invalid rule pattern %q: %v", pattern, err)}, nil
		}
		if !ok {
			return &Issue{Code: CodePattern, Message: fmt.Sprintf("value %q does not match %q", value, pattern)}, nil
		}
	case strings.HasPrefix(rule, PrefixEqual):
		want := rule[len(PrefixEqual):]
		if value != want {
			return &Issue{Code: CodeEqual, Message: fmt.Sprintf("value %q should be %q", value, want)}, nil
		}
	case strings.HasPrefix(rule, PrefixNotEqual):
		avoid := rule[len(PrefixNotEqual):]
		if value == avoid {
			return &Issue{Code: CodeNotEqual, Message: fmt.Sprintf("value %q should not be %q", value, avoid)}, nil
		}
	default:
		return nil, &Issue{Code: CodeUnsupportedRule, Message: fmt.Sprintf("unsupported rule %q; only %s, %s and %s are supported", rule, PrefixRegex, PrefixEqual, PrefixNotEqual)}
	}
	return nil, nil
}

// matchFull requires the whole value to match the pattern, not a substring.
func matchFull(pattern, value string) (bool, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}
