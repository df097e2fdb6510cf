// Package textutil holds small display-text helpers.
package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended to shortened text.
const Ellipsis = "..."

// Shorten bounds text to max display characters.
//
// Length is measured in runes after NFC normalization, so a precomposed and a
// decomposed "é" count the same. Text that fits is returned unchanged. Longer
// text is cut to a prefix of text holding at most max normalized runes,
// always between normalization segments so a base letter keeps its combining
// marks; trailing spaces are dropped and Ellipsis is appended. A max of 0 or
// less yields just Ellipsis for any non-empty text.
func Shorten(text string, max int) string {
	if utf8.RuneCountInString(norm.NFC.String(text)) <= max {
		return text
	}

	count := 0
	for i := 0; i < len(text); {
		n := norm.NFC.NextBoundaryInString(text[i:], true)
		if n <= 0 {
			n = len(text) - i
		}
		width := utf8.RuneCountInString(norm.NFC.String(text[i : i+n]))
		if count+width > max {
			return strings.TrimRight(text[:i], " ") + Ellipsis
		}
		count += width
		i += n
	}
	return text
}
