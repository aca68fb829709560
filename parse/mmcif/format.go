package mmcif

import (
	"fmt"
	"strings"
)

// Per the CIF 1.1 syntax, the characters below force a value out of the
// bare-token form:
//
//	_        leads a data name
//	[ ]      reserved delimiters
//	' "      delimit non-simple values
//	; at the start of a line delimits multi-line values
//
// FormatValue picks the cheapest delimiting that a compliant reader can
// tokenize back to the original text.

// FormatValue renders a single value as the literal token it must occupy
// in serialized CIF text. A nil value is the null token ".".
func FormatValue(v any) string {
	if v == nil {
		return "."
	}
	val := fmt.Sprint(v)
	if val == "" {
		return `""`
	}

	hasNL := strings.Contains(val, "\n")
	switch {
	case strings.Contains(val, "'"):
		// The reserved-looking spelling and the plain spelling both take
		// double quotes.
		val = `"` + val + `"`
	case strings.Contains(val, `"`):
		val = "'" + val + "'"
	default:
		if strings.HasPrefix(val, "_") || strings.HasPrefix(val, "[") ||
			(strings.Contains(val, " ") && !hasNL) {
			val = `"` + val + `"`
		}
	}

	if hasNL {
		// Multi-line text always becomes a semicolon-delimited block;
		// any quoting applied above is undone first.
		if val[0] == '\'' || val[0] == '"' {
			val = val[1 : len(val)-1]
		}
		return "\n;" + val + "\n;\n"
	}
	if val[0] == '\'' || val[0] == '"' {
		inner := val[1 : len(val)-1]
		if strings.Contains(inner, "'") && strings.Contains(inner, `"`) {
			// No single delimiter pair wraps text holding both quote
			// kinds, so it gets the block form despite having no
			// line break.
			return "\n;" + inner + "\n;\n"
		}
	}
	return val
}
