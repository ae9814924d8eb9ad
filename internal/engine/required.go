package engine

import "strings"

// MissingRequired returns every required name not satisfied by the actual
// field names of one object instance. A literal name needs an exact match; a
// name tagged with $REGEX$ needs at least one actual name fully matching the
// pattern. The check does not stop at the first miss.
func MissingRequired(required, actual []string) []string {
	var missing []string
	for _, req := range required {
		if !requiredSatisfied(req, actual) {
			missing = append(missing, req)
		}
	}
	return missing
}

func requiredSatisfied(req string, actual []string) bool {
	if pattern, ok := strings.CutPrefix(req, PrefixRegex); ok {
		for _, name := range actual {
			// An invalid pattern matches nothing and the name is
			// reported missing under its raw tagged form.
			if ok, err := matchFull(pattern, name); err == nil && ok {
				return true
			}
		}
		return false
	}
	for _, name := range actual {
		if name == req {
			return true
		}
	}
	return false
}
