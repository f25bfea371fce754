package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Extra code points spec §4.2 adds on top of plain ID_Start/ID_Continue.
// Each is written as a literal glyph with its Unicode name beside it:
// several of these characters are visually indistinguishable from one
// another (or from ASCII punctuation) in most editor fonts, so the name is
// what records which code point is meant.
const (
	scriptCapitalP         = '℘' // SCRIPT CAPITAL P
	estimatedSymbol        = '℮' // ESTIMATED SYMBOL
	katakanaVoicedMark     = '゛' // KATAKANA-HIRAGANA VOICED SOUND MARK
	katakanaSemiVoicedMark = '゜' // KATAKANA-HIRAGANA SEMI-VOICED SOUND MARK
	middleDot              = '·' // MIDDLE DOT
	greekAnoTeleia         = '·' // GREEK ANO TELEIA
	newTaiLueDigitOne      = '᧚' // NEW TAI LUE THAM DIGIT ONE
)

// ethiopicDigitsOneToNine covers U+1369-U+1371, generated rather than
// hand-typed to avoid transcribing nine near-identical glyphs individually.
var ethiopicDigitsOneToNine = func() []rune {
	rs := make([]rune, 0, 9)
	for r := rune(0x1369); r <= 0x1371; r++ {
		rs = append(rs, r)
	}
	return rs
}()

var (
	extraIdentStart = rangetable.New(append([]rune{
		'_', scriptCapitalP, estimatedSymbol, katakanaVoicedMark, katakanaSemiVoicedMark,
	})...)

	extraIdentContinueOnly = rangetable.New(append([]rune{
		middleDot, greekAnoTeleia, newTaiLueDigitOne,
	}, ethiopicDigitsOneToNine...)...)

	identStartTable = rangetable.Merge(unicode.L, unicode.Nl, extraIdentStart)

	identContinueTable = rangetable.Merge(
		unicode.L, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
		extraIdentStart, extraIdentContinueOnly,
	)
)

// isIdentStart reports whether r may begin an identifier (spec §4.2).
func isIdentStart(r rune) bool {
	return unicode.Is(identStartTable, r)
}

// isIdentContinue reports whether r may continue an identifier begun
// elsewhere (spec §4.2).
func isIdentContinue(r rune) bool {
	return unicode.Is(identContinueTable, r)
}
