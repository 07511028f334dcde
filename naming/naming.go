// Package naming holds the pure string transforms shared by parsers and
// emitters: identifier casing, schema-variable derivation, and safe property
// quoting for emitted object literals.
package naming

import (
	"strings"
	"unicode"
)

// ToPascalCase splits on '-' and '_' boundaries and capitalizes the character
// following each boundary, plus the first character.
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if r == '-' || r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first character lowercased.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return ""
	}
	r := []rune(p)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ToSchemaName derives the schema-variable name for a type name:
// {camelCase(name)}Schema.
func ToSchemaName(typeName string) string {
	return ToCamelCase(typeName) + "Schema"
}

// IsIdentifier reports whether s matches [A-Za-z_$][A-Za-z0-9_$]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// PropertyKey renders a property name for an emitted object literal: bare when
// it is a valid identifier, quoted exactly once otherwise. Callers must pass
// the raw property name, never an already-quoted one.
func PropertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return quoteString(name)
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteString renders s as a double-quoted source-code string literal.
func QuoteString(s string) string { return quoteString(s) }
