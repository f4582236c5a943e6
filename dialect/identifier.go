package dialect

import (
	"regexp"
	"strings"
)

var legalIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// RequiresQuotes reports whether an identifier must be quoted: keywords,
// names with upper case letters and names with characters other than
// letters, digits, '_' and '$'.
func RequiresQuotes(ident string) bool {
	return IsKeyword(ident) || !legalIdentifier.MatchString(ident)
}

// QuoteIdentifier quotes ident with double quotes when required.
func QuoteIdentifier(ident string) string {
	if !RequiresQuotes(ident) {
		return ident
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// QuoteIdentifiers quotes each part of a dotted name such as table.column.
func QuoteIdentifiers(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = QuoteIdentifier(part)
	}
	return strings.Join(quoted, ".")
}
