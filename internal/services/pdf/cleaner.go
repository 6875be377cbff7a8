package pdf

import (
	"strings"
	"unicode"
)

// Clean normalizes extracted text into a single line.
//
// Each line is trimmed. Lines that end up empty, or that are nothing but
// digits (standalone page numbers), are dropped. What's left is joined with
// spaces and every whitespace run is collapsed to one space.
//
// Note: a standalone year or amount on its own line is dropped too.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}

// isDigits reports whether s is non-empty and made only of digits:
// decimal digits in any script, plus superscript, subscript and circled
// digit forms (², ₃, ④) that show up as footnote or page labels.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.Is(digitForms, r) {
			return false
		}
	}
	return true
}

// digitForms holds the single-digit characters outside category Nd:
// superscripts, subscripts, circled, parenthesized and full-stop digits.
// Multi-digit forms like ⑩ and fractions like ½ are not included.
var digitForms = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}
