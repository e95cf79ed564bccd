package util

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	arabicIndicZero = '\u0660'
	arabicIndicNine = '\u0669'
)

// latinDigit maps an Arabic-Indic digit to its Latin equivalent and leaves
// every other rune untouched.
func latinDigit(r rune) rune {
	if r >= arabicIndicZero && r <= arabicIndicNine {
		return '0' + (r - arabicIndicZero)
	}
	return r
}

var arabicIndicDigits = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: arabicIndicZero, Hi: arabicIndicNine, Stride: 1}},
})

// NormalizeDigits rewrites Arabic-Indic digits (٠ through ٩) as 0 through 9.
// Users typing with an Arabic keyboard produce these in phone numbers.
// Everything else, invalid UTF-8 included, is copied through byte for byte.
func NormalizeDigits(input string) string {
	out, _, err := transform.String(runes.If(arabicIndicDigits, runes.Map(latinDigit), nil), input)
	if err != nil {
		return input
	}
	return out
}

// HasNonLatinDigits reports whether input still holds an Arabic-Indic digit
func HasNonLatinDigits(input string) bool {
	for _, r := range input {
		if r >= arabicIndicZero && r <= arabicIndicNine {
			return true
		}
	}
	return false
}
