package emit

import (
	"fmt"
	"strings"
)

// expected expression shapes per library, used only for corrective hints.
var rawHints = map[Library]string{
	LibraryZod:     "z.string()",
	LibraryValibot: "v.string()",
	LibraryArkType: `type("string")`,
	LibraryEffect:  "Schema.String",
}

// CheckRawExpression verifies that a custom scalar/format override is a
// syntactically plausible expression for the selected library. This is a
// structural check, not an evaluation: it exists to catch the common
// misconfiguration of supplying a literal string value where source code was
// expected, and to say so with a corrective suggestion. It is the one point
// where configuration validation is validator-aware.
func CheckRawExpression(lib Library, name, src string) error {
	hint, ok := rawHints[lib]
	if !ok {
		return fmt.Errorf("unknown validator library %q (supported: %s)", lib, strings.Join(Libraries(), ", "))
	}
	expr := strings.TrimSpace(src)
	if expr == "" {
		return fmt.Errorf("custom scalar %q: empty override for %s; expected an expression such as %s", name, lib, hint)
	}
	if isQuotedLiteral(expr) {
		return fmt.Errorf("custom scalar %q: override %s is a string literal, not a %s expression; did you mean %s?", name, expr, lib, hint)
	}
	if !strings.ContainsAny(expr, ".([") {
		return fmt.Errorf("custom scalar %q: override %q does not look like a %s expression; expected something like %s", name, expr, lib, hint)
	}
	return nil
}

// isQuotedLiteral reports whether the whole expression is a single quoted
// string (it may still contain code-looking text inside the quotes).
func isQuotedLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	open := s[0]
	if open != '"' && open != '\'' && open != '`' {
		return false
	}
	if s[len(s)-1] != open {
		return false
	}
	// Reject only when the quotes wrap the entire value, i.e. the opening
	// quote is not closed before the end.
	inner := s[1 : len(s)-1]
	escaped := false
	for i := 0; i < len(inner); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch inner[i] {
		case '\\':
			escaped = true
		case open:
			return false
		}
	}
	return true
}
