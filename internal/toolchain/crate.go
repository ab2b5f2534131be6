package toolchain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackCrateName is used when a title yields no usable characters.
const FallbackCrateName = "booktest"

// reservedSuffix is appended to names cargo refuses as a package name.
const reservedSuffix = "_book"

// reservedNames are Rust keywords (strict and reserved) plus the built-in test
// crate. cargo init rejects all of them.
var reservedNames = map[string]struct{}{
	"abstract": {}, "as": {}, "async": {}, "await": {}, "become": {}, "box": {},
	"break": {}, "const": {}, "continue": {}, "crate": {}, "do": {}, "dyn": {},
	"else": {}, "enum": {}, "extern": {}, "false": {}, "final": {}, "fn": {},
	"for": {}, "gen": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"macro": {}, "match": {}, "mod": {}, "move": {}, "mut": {}, "override": {},
	"priv": {}, "pub": {}, "ref": {}, "return": {}, "self": {}, "static": {},
	"struct": {}, "super": {}, "trait": {}, "true": {}, "try": {}, "type": {},
	"typeof": {}, "unsafe": {}, "unsized": {}, "use": {}, "virtual": {},
	"where": {}, "while": {}, "yield": {},
	"test": {},
}

// CrateName derives a valid crate identifier from a book title: accents are
// stripped, letters lowercased, and every other character outside [a-z0-9_]
// becomes an underscore. A leading digit is prefixed with an underscore, and a
// name cargo reserves (a Rust keyword or "test") gets a "_book" suffix.
func CrateName(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var b strings.Builder
	meaningful := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			meaningful = true
		default:
			b.WriteByte('_')
		}
	}
	if !meaningful {
		return FallbackCrateName
	}
	name := b.String()
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if _, reserved := reservedNames[name]; reserved {
		name += reservedSuffix
	}
	return name
}
