package record

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldKey returns the comparison form of an identity or secondary key.
// Keys match case-insensitively, and composed and decomposed spellings of
// the same name compare equal.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
