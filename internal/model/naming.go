package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Capitalize upper-cases the first rune of a schema name. Names are
// NFC-normalized first so that composed and decomposed spellings of the
// same identifier collapse to one descriptor name.
func Capitalize(name string) string {
	name = norm.NFC.String(name)
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SanitizeName replaces characters that are legal in schema names but
// not in target-language identifiers.
func SanitizeName(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// EnumVariantPrefix derives the lowercase scoped prefix for enum
// variants from the upper-case runes of the prefixed type name, e.g.
// "TOrderStatus" yields "tos".
func EnumVariantPrefix(typeName, typePrefix string) string {
	var b strings.Builder
	for _, r := range typePrefix + typeName {
		if unicode.IsUpper(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
